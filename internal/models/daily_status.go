package models

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day key used across storage and the
// aggregation layer.
const DayLayout = "2006-01-02"

const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

// DailyStatusLog is a manual per-day self-assessment. At most one row
// exists per calendar date.
type DailyStatusLog struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Date       string    `gorm:"not null;uniqueIndex" json:"date"`
	Status     string    `gorm:"not null" json:"status"`
	StatusType *string   `json:"status_type"`
	Notes      *string   `json:"notes"`
	Prompted   bool      `gorm:"not null;default:false" json:"prompted"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// ValidStatus reports whether value is one of the known day statuses.
func ValidStatus(value string) bool {
	return value == StatusGreen || value == StatusYellow || value == StatusRed
}

// Validate checks the log against now; future dates are rejected.
func (entry DailyStatusLog) Validate(now time.Time) error {
	fields := make([]FieldError, 0)
	if entry.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	day, err := time.Parse(DayLayout, entry.Date)
	if err != nil {
		fields = append(fields, FieldError{Field: "date", Message: "must be formatted YYYY-MM-DD"})
	} else if today := now.Format(DayLayout); day.Format(DayLayout) > today {
		fields = append(fields, FieldError{Field: "date", Message: fmt.Sprintf("must not be after %s", today)})
	}
	if !ValidStatus(entry.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "must be green, yellow or red"})
	}
	if entry.StatusType != nil && entry.Status != StatusYellow {
		fields = append(fields, FieldError{Field: "status_type", Message: "only allowed when status is yellow"})
	}
	return newValidationError(fields)
}

// DailyStatusDraft holds the caller-supplied fields of a new status log.
type DailyStatusDraft struct {
	Date       string
	Status     string
	StatusType *string
	Notes      *string
	Prompted   bool
}

// DailyStatusUpdate names the fields a partial update may touch.
type DailyStatusUpdate struct {
	Status     *string
	StatusType *string
	Notes      *string
	Prompted   *bool
}

func (update DailyStatusUpdate) Empty() bool {
	return update.Status == nil && update.StatusType == nil &&
		update.Notes == nil && update.Prompted == nil
}

func (update DailyStatusUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.Status != nil && !ValidStatus(*update.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "must be green, yellow or red"})
	}
	if update.StatusType != nil {
		if update.Status == nil || *update.Status != StatusYellow {
			fields = append(fields, FieldError{Field: "status_type", Message: "only allowed when status is set to yellow"})
		}
	}
	return newValidationError(fields)
}
