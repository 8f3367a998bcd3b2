package models

import (
	"strings"
	"time"
)

// CalendarOverlay marks a labelled date span on the calendar, for example a
// vacation or a medication trial. Spans flagged ExcludeFromStats are meant
// to be filtered out of statistics by the caller.
type CalendarOverlay struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	StartDate        string    `gorm:"not null" json:"start_date"`
	EndDate          string    `gorm:"not null" json:"end_date"`
	Label            string    `gorm:"not null" json:"label"`
	Notes            *string   `json:"notes"`
	ExcludeFromStats bool      `gorm:"not null;default:false" json:"exclude_from_stats"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (overlay CalendarOverlay) Validate() error {
	fields := make([]FieldError, 0)
	if overlay.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	startValid := true
	if _, err := time.Parse(DayLayout, overlay.StartDate); err != nil {
		fields = append(fields, FieldError{Field: "start_date", Message: "must be formatted YYYY-MM-DD"})
		startValid = false
	}
	if _, err := time.Parse(DayLayout, overlay.EndDate); err != nil {
		fields = append(fields, FieldError{Field: "end_date", Message: "must be formatted YYYY-MM-DD"})
	} else if startValid && overlay.EndDate < overlay.StartDate {
		fields = append(fields, FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	if strings.TrimSpace(overlay.Label) == "" {
		fields = append(fields, FieldError{Field: "label", Message: "must not be empty"})
	}
	return newValidationError(fields)
}

// OverlayDraft holds the caller-supplied fields of a new overlay.
type OverlayDraft struct {
	StartDate        string
	EndDate          string
	Label            string
	Notes            *string
	ExcludeFromStats bool
}

// OverlayUpdate names the fields a partial update may touch.
type OverlayUpdate struct {
	StartDate        *string
	EndDate          *string
	Label            *string
	Notes            *string
	ExcludeFromStats *bool
}

func (update OverlayUpdate) Empty() bool {
	return update.StartDate == nil && update.EndDate == nil &&
		update.Label == nil && update.Notes == nil && update.ExcludeFromStats == nil
}

func (update OverlayUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.StartDate != nil {
		if _, err := time.Parse(DayLayout, *update.StartDate); err != nil {
			fields = append(fields, FieldError{Field: "start_date", Message: "must be formatted YYYY-MM-DD"})
		}
	}
	if update.EndDate != nil {
		if _, err := time.Parse(DayLayout, *update.EndDate); err != nil {
			fields = append(fields, FieldError{Field: "end_date", Message: "must be formatted YYYY-MM-DD"})
		}
	}
	if update.StartDate != nil && update.EndDate != nil && *update.EndDate < *update.StartDate {
		fields = append(fields, FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	if update.Label != nil && strings.TrimSpace(*update.Label) == "" {
		fields = append(fields, FieldError{Field: "label", Message: "must not be empty"})
	}
	return newValidationError(fields)
}
