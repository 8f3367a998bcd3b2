package models

import "github.com/google/uuid"

// NewID returns a time-ordered, lexicographically sortable 128-bit identifier.
// UUIDv7 keeps creation order and string order consistent, which the
// repositories rely on for stable pagination of freshly created rows.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source is exhausted; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
