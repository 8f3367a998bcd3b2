package models

import (
	"database/sql/driver"
	"encoding/json"
	"log/slog"
)

// StringList is a JSON-encoded TEXT column holding a list of strings.
//
// Reads are permissive: a NULL or malformed payload degrades to an empty
// list with a warning instead of failing the whole row, so one corrupted
// optional column never blocks reading an otherwise valid record.
type StringList []string

func (list *StringList) Scan(value any) error {
	var raw []byte
	switch typed := value.(type) {
	case nil:
		*list = StringList{}
		return nil
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		slog.Warn("unexpected list column type, substituting empty list", "type", typed)
		*list = StringList{}
		return nil
	}

	if len(raw) == 0 {
		*list = StringList{}
		return nil
	}

	parsed := make([]string, 0)
	if err := json.Unmarshal(raw, &parsed); err != nil {
		slog.Warn("malformed list column, substituting empty list", "payload", string(raw), "error", err)
		*list = StringList{}
		return nil
	}

	*list = parsed
	return nil
}

func (list StringList) Value() (driver.Value, error) {
	if list == nil {
		list = StringList{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}
