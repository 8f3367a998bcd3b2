package models

import (
	"regexp"
	"strings"
	"time"
)

const (
	MedicationPreventative = "preventative"
	MedicationRescue       = "rescue"
	MedicationOther        = "other"
)

const (
	DoseTaken   = "taken"
	DoseSkipped = "skipped"
)

var scheduleTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Medication is a tracked drug, preventative or rescue.
type Medication struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Type              string    `gorm:"not null" json:"type"`
	DosageAmount      float64   `gorm:"not null" json:"dosage_amount"`
	DosageUnit        string    `gorm:"not null" json:"dosage_unit"`
	ScheduleFrequency *string   `json:"schedule_frequency"`
	Active            bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// ValidMedicationType reports whether value is a known medication type.
func ValidMedicationType(value string) bool {
	return value == MedicationPreventative || value == MedicationRescue || value == MedicationOther
}

func (medication Medication) Validate() error {
	fields := make([]FieldError, 0)
	if medication.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if strings.TrimSpace(medication.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "must not be empty"})
	}
	if !ValidMedicationType(medication.Type) {
		fields = append(fields, FieldError{Field: "type", Message: "must be preventative, rescue or other"})
	}
	if medication.DosageAmount <= 0 {
		fields = append(fields, FieldError{Field: "dosage_amount", Message: "must be positive"})
	}
	if strings.TrimSpace(medication.DosageUnit) == "" {
		fields = append(fields, FieldError{Field: "dosage_unit", Message: "must not be empty"})
	}
	return newValidationError(fields)
}

// MedicationDraft holds the caller-supplied fields of a new medication.
type MedicationDraft struct {
	Name              string
	Type              string
	DosageAmount      float64
	DosageUnit        string
	ScheduleFrequency *string
	Active            bool
}

// MedicationUpdate names the fields a partial update may touch.
type MedicationUpdate struct {
	Name              *string
	Type              *string
	DosageAmount      *float64
	DosageUnit        *string
	ScheduleFrequency *string
	Active            *bool
}

func (update MedicationUpdate) Empty() bool {
	return update.Name == nil && update.Type == nil && update.DosageAmount == nil &&
		update.DosageUnit == nil && update.ScheduleFrequency == nil && update.Active == nil
}

func (update MedicationUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "must not be empty"})
	}
	if update.Type != nil && !ValidMedicationType(*update.Type) {
		fields = append(fields, FieldError{Field: "type", Message: "must be preventative, rescue or other"})
	}
	if update.DosageAmount != nil && *update.DosageAmount <= 0 {
		fields = append(fields, FieldError{Field: "dosage_amount", Message: "must be positive"})
	}
	if update.DosageUnit != nil && strings.TrimSpace(*update.DosageUnit) == "" {
		fields = append(fields, FieldError{Field: "dosage_unit", Message: "must not be empty"})
	}
	return newValidationError(fields)
}

// MedicationSchedule is a planned daily intake slot for a medication.
type MedicationSchedule struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	MedicationID string    `gorm:"not null;index" json:"medication_id"`
	Time         string    `gorm:"not null" json:"time"`
	Dosage       float64   `gorm:"not null" json:"dosage"`
	Enabled      bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (schedule MedicationSchedule) Validate() error {
	fields := make([]FieldError, 0)
	if schedule.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if schedule.MedicationID == "" {
		fields = append(fields, FieldError{Field: "medication_id", Message: "must be set"})
	}
	if !scheduleTimePattern.MatchString(schedule.Time) {
		fields = append(fields, FieldError{Field: "time", Message: "must be formatted HH:mm"})
	}
	if schedule.Dosage <= 0 {
		fields = append(fields, FieldError{Field: "dosage", Message: "must be positive"})
	}
	return newValidationError(fields)
}

// ScheduleDraft holds the caller-supplied fields of a new schedule slot.
type ScheduleDraft struct {
	MedicationID string
	Time         string
	Dosage       float64
	Enabled      bool
}

// ScheduleUpdate names the fields a partial update may touch.
type ScheduleUpdate struct {
	Time    *string
	Dosage  *float64
	Enabled *bool
}

func (update ScheduleUpdate) Empty() bool {
	return update.Time == nil && update.Dosage == nil && update.Enabled == nil
}

func (update ScheduleUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.Time != nil && !scheduleTimePattern.MatchString(*update.Time) {
		fields = append(fields, FieldError{Field: "time", Message: "must be formatted HH:mm"})
	}
	if update.Dosage != nil && *update.Dosage <= 0 {
		fields = append(fields, FieldError{Field: "dosage", Message: "must be positive"})
	}
	return newValidationError(fields)
}

// MedicationDose is one taken or skipped intake.
type MedicationDose struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	MedicationID string    `gorm:"not null;index" json:"medication_id"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Status       string    `gorm:"not null" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// ValidDoseStatus reports whether value is a known dose status.
func ValidDoseStatus(value string) bool {
	return value == DoseTaken || value == DoseSkipped
}

func (dose MedicationDose) Validate() error {
	fields := make([]FieldError, 0)
	if dose.ID == "" {
		fields = append(fields, FieldError{Field: "id", Message: "must be set"})
	}
	if dose.MedicationID == "" {
		fields = append(fields, FieldError{Field: "medication_id", Message: "must be set"})
	}
	if dose.Timestamp.IsZero() {
		fields = append(fields, FieldError{Field: "timestamp", Message: "must be set"})
	}
	if !ValidDoseStatus(dose.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "must be taken or skipped"})
	}
	if dose.Quantity < 0 {
		fields = append(fields, FieldError{Field: "quantity", Message: "must not be negative"})
	} else if dose.Quantity == 0 && dose.Status != DoseSkipped {
		fields = append(fields, FieldError{Field: "quantity", Message: "must be positive unless the dose was skipped"})
	}
	return newValidationError(fields)
}

// DoseDraft holds the caller-supplied fields of a new dose record.
type DoseDraft struct {
	MedicationID string
	Timestamp    time.Time
	Quantity     float64
	Status       string
}

// DoseUpdate names the fields a partial update may touch.
type DoseUpdate struct {
	Timestamp *time.Time
	Quantity  *float64
	Status    *string
}

func (update DoseUpdate) Empty() bool {
	return update.Timestamp == nil && update.Quantity == nil && update.Status == nil
}

func (update DoseUpdate) Validate() error {
	fields := make([]FieldError, 0)
	if update.Status != nil && !ValidDoseStatus(*update.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "must be taken or skipped"})
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		fields = append(fields, FieldError{Field: "quantity", Message: "must not be negative"})
	}
	return newValidationError(fields)
}
