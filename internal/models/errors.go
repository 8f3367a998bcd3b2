package models

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fieldError FieldError) String() string {
	return fmt.Sprintf("%s: %s", fieldError.Field, fieldError.Message)
}

// ValidationError carries every field violation found in a candidate record.
// It is raised before any storage I/O and is never retried.
type ValidationError struct {
	Fields []FieldError
}

func (validationError *ValidationError) Error() string {
	messages := make([]string, 0, len(validationError.Fields))
	for _, fieldError := range validationError.Fields {
		messages = append(messages, fieldError.String())
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func newValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}
