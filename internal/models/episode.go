package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxIntensity bounds every pain/severity scale in the app.
	MaxIntensity = 10

	// MaxNoteLength bounds free-text note bodies.
	MaxNoteLength = 5000
)

// Episode is a single pain episode. An episode is Open while EndTime is
// unset and Closed once it is; the only transition is setting EndTime.
type Episode struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	StartTime        time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	Locations        StringList `gorm:"type:text" json:"locations"`
	Qualities        StringList `gorm:"type:text" json:"qualities"`
	Symptoms         StringList `gorm:"type:text" json:"symptoms"`
	Triggers         StringList `gorm:"type:text" json:"triggers"`
	Notes            *string    `json:"notes"`
	PeakIntensity    *int       `json:"peak_intensity"`
	AverageIntensity *float64   `json:"average_intensity"`
	Location         *string    `json:"location"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

// Open reports whether the episode has not been closed yet.
func (episode Episode) Open() bool {
	return episode.EndTime == nil
}

// Normalize replaces nil collections with empty ones so that a created
// episode compares equal to the same episode read back from storage.
func (episode *Episode) Normalize() {
	if episode.Locations == nil {
		episode.Locations = StringList{}
	}
	if episode.Qualities == nil {
		episode.Qualities = StringList{}
	}
	if episode.Symptoms == nil {
		episode.Symptoms = StringList{}
	}
	if episode.Triggers == nil {
		episode.Triggers = StringList{}
	}
}

func (episode Episode) Validate() error {
	fields := make([]FieldError, 0)
	if episode.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if episode.StartTime.IsZero() {
		fields = append(fields, FieldError{Field: "start_time", Message: "must be set"})
	}
	if episode.EndTime != nil && !episode.EndTime.After(episode.StartTime) {
		fields = append(fields, FieldError{Field: "end_time", Message: "must be after start_time"})
	}
	if episode.PeakIntensity != nil {
		if message, ok := intensityViolation(*episode.PeakIntensity); !ok {
			fields = append(fields, FieldError{Field: "peak_intensity", Message: message})
		}
	}
	if episode.AverageIntensity != nil {
		if *episode.AverageIntensity < 0 || *episode.AverageIntensity > MaxIntensity {
			fields = append(fields, FieldError{Field: "average_intensity", Message: intensityRangeMessage})
		}
		if episode.PeakIntensity != nil && *episode.AverageIntensity > float64(*episode.PeakIntensity) {
			fields = append(fields, FieldError{Field: "average_intensity", Message: averageExceedsPeakMessage})
		}
	}
	return newValidationError(fields)
}

var intensityRangeMessage = fmt.Sprintf("must be between 0 and %d", MaxIntensity)

const averageExceedsPeakMessage = "must not exceed peak_intensity"

// ValidateAverageAgainstPeak checks the cross-field intensity constraint
// over the values that would be in effect after a partial update has been
// merged with the stored row.
func ValidateAverageAgainstPeak(average *float64, peak *int) error {
	if average != nil && peak != nil && *average > float64(*peak) {
		return newValidationError([]FieldError{{Field: "average_intensity", Message: averageExceedsPeakMessage}})
	}
	return nil
}

func intensityViolation(value int) (string, bool) {
	if value < 0 || value > MaxIntensity {
		return intensityRangeMessage, false
	}
	return "", true
}

// ValidateIntensity checks a standalone 0-10 scale value, used when a
// partial update touches an intensity field without the rest of the row.
func ValidateIntensity(field string, value int) error {
	if message, ok := intensityViolation(value); !ok {
		return newValidationError([]FieldError{{Field: field, Message: message}})
	}
	return nil
}

// EpisodeDraft holds the caller-supplied fields of a new episode. The
// repository stamps id and timestamps on top of it.
type EpisodeDraft struct {
	StartTime        time.Time
	EndTime          *time.Time
	Locations        []string
	Qualities        []string
	Symptoms         []string
	Triggers         []string
	Notes            *string
	PeakIntensity    *int
	AverageIntensity *float64
	Location         *string
}

// EpisodeUpdate names the fields a partial update may touch; nil fields
// are left untouched in storage.
type EpisodeUpdate struct {
	StartTime        *time.Time
	EndTime          *time.Time
	Locations        *[]string
	Qualities        *[]string
	Symptoms         *[]string
	Triggers         *[]string
	Notes            *string
	PeakIntensity    *int
	AverageIntensity *float64
	Location         *string
}

// Empty reports whether the update names no fields at all.
func (update EpisodeUpdate) Empty() bool {
	return update.StartTime == nil && update.EndTime == nil &&
		update.Locations == nil && update.Qualities == nil &&
		update.Symptoms == nil && update.Triggers == nil &&
		update.Notes == nil && update.PeakIntensity == nil &&
		update.AverageIntensity == nil && update.Location == nil
}

// Validate revalidates the semantically constrained fields present in the
// update. Cross-record constraints (end after start) are checked by the
// service against the stored row.
func (update EpisodeUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.StartTime != nil && update.StartTime.IsZero() {
		fields = append(fields, FieldError{Field: "start_time", Message: "must be set"})
	}
	if update.PeakIntensity != nil {
		if message, ok := intensityViolation(*update.PeakIntensity); !ok {
			fields = append(fields, FieldError{Field: "peak_intensity", Message: message})
		}
	}
	if update.AverageIntensity != nil && (*update.AverageIntensity < 0 || *update.AverageIntensity > MaxIntensity) {
		fields = append(fields, FieldError{Field: "average_intensity", Message: intensityRangeMessage})
	}
	return newValidationError(fields)
}

// ReadingDraft holds the caller-supplied fields of a new intensity reading.
type ReadingDraft struct {
	EpisodeID string
	Timestamp time.Time
	Intensity int
}

// SymptomLogDraft holds the caller-supplied fields of a new symptom log.
type SymptomLogDraft struct {
	EpisodeID      string
	Symptom        string
	OnsetTime      time.Time
	ResolutionTime *time.Time
	Severity       *int
}

// SymptomLogUpdate names the fields a partial update may touch.
type SymptomLogUpdate struct {
	ResolutionTime *time.Time
	Severity       *int
}

// Empty reports whether the update names no fields at all.
func (update SymptomLogUpdate) Empty() bool {
	return update.ResolutionTime == nil && update.Severity == nil
}

func (update SymptomLogUpdate) Validate() error {
	if update.Severity != nil {
		return ValidateIntensity("severity", *update.Severity)
	}
	return nil
}

// PainLocationDraft holds the caller-supplied fields of a new location log.
type PainLocationDraft struct {
	EpisodeID     string
	Timestamp     time.Time
	PainLocations []string
}

// NoteDraft holds the caller-supplied fields of a new episode note.
type NoteDraft struct {
	EpisodeID string
	Timestamp time.Time
	Note      string
}

// IntensityReading is a point-in-time pain measurement inside an episode.
type IntensityReading struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EpisodeID string    `gorm:"not null;index" json:"episode_id"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	Intensity int       `gorm:"not null" json:"intensity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (reading IntensityReading) Validate() error {
	fields := make([]FieldError, 0)
	if reading.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if reading.EpisodeID == "" {
		fields = append(fields, FieldError{Field: "episode_id", Message: "must be set"})
	}
	if reading.Timestamp.IsZero() {
		fields = append(fields, FieldError{Field: "timestamp", Message: "must be set"})
	}
	if message, ok := intensityViolation(reading.Intensity); !ok {
		fields = append(fields, FieldError{Field: "intensity", Message: message})
	}
	return newValidationError(fields)
}

// SymptomLog tracks one symptom within an episode from onset to resolution.
type SymptomLog struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	EpisodeID      string     `gorm:"not null;index" json:"episode_id"`
	Symptom        string     `gorm:"not null" json:"symptom"`
	OnsetTime      time.Time  `gorm:"not null" json:"onset_time"`
	ResolutionTime *time.Time `json:"resolution_time"`
	Severity       *int       `json:"severity"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (symptomLog SymptomLog) Validate() error {
	fields := make([]FieldError, 0)
	if symptomLog.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if symptomLog.EpisodeID == "" {
		fields = append(fields, FieldError{Field: "episode_id", Message: "must be set"})
	}
	if strings.TrimSpace(symptomLog.Symptom) == "" {
		fields = append(fields, FieldError{Field: "symptom", Message: "must not be empty"})
	}
	if symptomLog.OnsetTime.IsZero() {
		fields = append(fields, FieldError{Field: "onset_time", Message: "must be set"})
	}
	if symptomLog.ResolutionTime != nil && !symptomLog.ResolutionTime.After(symptomLog.OnsetTime) {
		fields = append(fields, FieldError{Field: "resolution_time", Message: "must be after onset_time"})
	}
	if symptomLog.Severity != nil {
		if message, ok := intensityViolation(*symptomLog.Severity); !ok {
			fields = append(fields, FieldError{Field: "severity", Message: message})
		}
	}
	return newValidationError(fields)
}

// PainLocationLog records where the pain sat at a moment inside an episode.
type PainLocationLog struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	EpisodeID     string     `gorm:"not null;index" json:"episode_id"`
	Timestamp     time.Time  `gorm:"not null" json:"timestamp"`
	PainLocations StringList `gorm:"type:text" json:"pain_locations"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (locationLog PainLocationLog) Validate() error {
	fields := make([]FieldError, 0)
	if locationLog.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if locationLog.EpisodeID == "" {
		fields = append(fields, FieldError{Field: "episode_id", Message: "must be set"})
	}
	if locationLog.Timestamp.IsZero() {
		fields = append(fields, FieldError{Field: "timestamp", Message: "must be set"})
	}
	if len(locationLog.PainLocations) == 0 {
		fields = append(fields, FieldError{Field: "pain_locations", Message: "must contain at least one location"})
	}
	return newValidationError(fields)
}

// EpisodeNote is a timestamped free-text annotation on an episode.
type EpisodeNote struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EpisodeID string    `gorm:"not null;index" json:"episode_id"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	Note      string    `gorm:"not null" json:"note"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (episodeNote EpisodeNote) Validate() error {
	fields := make([]FieldError, 0)
	if episodeNote.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if episodeNote.EpisodeID == "" {
		fields = append(fields, FieldError{Field: "episode_id", Message: "must be set"})
	}
	if episodeNote.Timestamp.IsZero() {
		fields = append(fields, FieldError{Field: "timestamp", Message: "must be set"})
	}
	if length := len(episodeNote.Note); length == 0 || length > MaxNoteLength {
		fields = append(fields, FieldError{Field: "note", Message: fmt.Sprintf("must be between 1 and %d characters", MaxNoteLength)})
	}
	return newValidationError(fields)
}
