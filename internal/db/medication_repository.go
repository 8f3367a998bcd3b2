package db

import (
	"context"
	"time"

	"github.com/ashmidera/migralog/internal/models"
	"gorm.io/gorm"
)

type MedicationRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewMedicationRepository(database *gorm.DB, retry *RetryExecutor) *MedicationRepository {
	return &MedicationRepository{database: database, retry: retry}
}

func (repo *MedicationRepository) Create(ctx context.Context, draft models.MedicationDraft) (models.Medication, error) {
	now := time.Now()
	medication := models.Medication{
		ID:                models.NewID(),
		Name:              draft.Name,
		Type:              draft.Type,
		DosageAmount:      draft.DosageAmount,
		DosageUnit:        draft.DosageUnit,
		ScheduleFrequency: draft.ScheduleFrequency,
		Active:            draft.Active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := medication.Validate(); err != nil {
		return models.Medication{}, err
	}
	err := repo.retry.Do(ctx, "medications.create", func() error {
		return repo.database.WithContext(ctx).Create(&medication).Error
	})
	if err != nil {
		return models.Medication{}, err
	}
	return medication, nil
}

func (repo *MedicationRepository) Update(ctx context.Context, medicationID string, update models.MedicationUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Type != nil {
		set.add("type", *update.Type)
	}
	if update.DosageAmount != nil {
		set.add("dosage_amount", *update.DosageAmount)
	}
	if update.DosageUnit != nil {
		set.add("dosage_unit", *update.DosageUnit)
	}
	if update.ScheduleFrequency != nil {
		set.add("schedule_frequency", *update.ScheduleFrequency)
	}
	if update.Active != nil {
		set.add("active", *update.Active)
	}
	values := set.stamped(time.Now())
	return repo.retry.Do(ctx, "medications.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.Medication{}).Where("id = ?", medicationID).Updates(values).Error
	})
}

func (repo *MedicationRepository) FindByID(ctx context.Context, medicationID string) (models.Medication, bool, error) {
	var medication models.Medication
	found := false
	err := repo.retry.Do(ctx, "medications.find_by_id", func() error {
		result := repo.database.WithContext(ctx).Where("id = ?", medicationID).Limit(1).Find(&medication)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.Medication{}, false, err
	}
	return medication, found, nil
}

func (repo *MedicationRepository) List(ctx context.Context, activeOnly bool) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	err := repo.retry.Do(ctx, "medications.list", func() error {
		query := repo.database.WithContext(ctx).Order("name ASC, id ASC")
		if activeOnly {
			query = query.Where("active = ?", true)
		}
		return query.Find(&medications).Error
	})
	if err != nil {
		return nil, err
	}
	return medications, nil
}

// Delete removes the medication and its schedules and doses in one
// transaction; dose history has no meaning without its medication.
func (repo *MedicationRepository) Delete(ctx context.Context, medicationID string) error {
	return repo.retry.Do(ctx, "medications.delete", func() error {
		return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("medication_id = ?", medicationID).Delete(&models.MedicationSchedule{}).Error; err != nil {
				return err
			}
			if err := tx.Where("medication_id = ?", medicationID).Delete(&models.MedicationDose{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", medicationID).Delete(&models.Medication{}).Error
		})
	})
}

// MedicationScheduleRepository stores planned daily intake slots.
type MedicationScheduleRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewMedicationScheduleRepository(database *gorm.DB, retry *RetryExecutor) *MedicationScheduleRepository {
	return &MedicationScheduleRepository{database: database, retry: retry}
}

func (repo *MedicationScheduleRepository) Create(ctx context.Context, draft models.ScheduleDraft) (models.MedicationSchedule, error) {
	now := time.Now()
	schedule := models.MedicationSchedule{
		ID:           models.NewID(),
		MedicationID: draft.MedicationID,
		Time:         draft.Time,
		Dosage:       draft.Dosage,
		Enabled:      draft.Enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := schedule.Validate(); err != nil {
		return models.MedicationSchedule{}, err
	}
	err := repo.retry.Do(ctx, "medication_schedules.create", func() error {
		return repo.database.WithContext(ctx).Create(&schedule).Error
	})
	if err != nil {
		return models.MedicationSchedule{}, err
	}
	return schedule, nil
}

func (repo *MedicationScheduleRepository) Update(ctx context.Context, scheduleID string, update models.ScheduleUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.Time != nil {
		set.add("time", *update.Time)
	}
	if update.Dosage != nil {
		set.add("dosage", *update.Dosage)
	}
	if update.Enabled != nil {
		set.add("enabled", *update.Enabled)
	}
	values := set.stamped(time.Now())
	return repo.retry.Do(ctx, "medication_schedules.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.MedicationSchedule{}).Where("id = ?", scheduleID).Updates(values).Error
	})
}

func (repo *MedicationScheduleRepository) ListByMedication(ctx context.Context, medicationID string) ([]models.MedicationSchedule, error) {
	schedules := make([]models.MedicationSchedule, 0)
	err := repo.retry.Do(ctx, "medication_schedules.list_by_medication", func() error {
		return repo.database.WithContext(ctx).
			Where("medication_id = ?", medicationID).
			Order("time ASC, id ASC").
			Find(&schedules).Error
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *MedicationScheduleRepository) ListEnabled(ctx context.Context) ([]models.MedicationSchedule, error) {
	schedules := make([]models.MedicationSchedule, 0)
	err := repo.retry.Do(ctx, "medication_schedules.list_enabled", func() error {
		return repo.database.WithContext(ctx).
			Where("enabled = ?", true).
			Order("time ASC, id ASC").
			Find(&schedules).Error
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *MedicationScheduleRepository) Delete(ctx context.Context, scheduleID string) error {
	return repo.retry.Do(ctx, "medication_schedules.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", scheduleID).Delete(&models.MedicationSchedule{}).Error
	})
}

// MedicationDoseRepository stores taken/skipped intakes.
type MedicationDoseRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewMedicationDoseRepository(database *gorm.DB, retry *RetryExecutor) *MedicationDoseRepository {
	return &MedicationDoseRepository{database: database, retry: retry}
}

func (repo *MedicationDoseRepository) Create(ctx context.Context, draft models.DoseDraft) (models.MedicationDose, error) {
	dose := models.MedicationDose{
		ID:           models.NewID(),
		MedicationID: draft.MedicationID,
		Timestamp:    draft.Timestamp,
		Quantity:     draft.Quantity,
		Status:       draft.Status,
		CreatedAt:    time.Now(),
	}
	if err := dose.Validate(); err != nil {
		return models.MedicationDose{}, err
	}
	err := repo.retry.Do(ctx, "medication_doses.create", func() error {
		return repo.database.WithContext(ctx).Create(&dose).Error
	})
	if err != nil {
		return models.MedicationDose{}, err
	}
	return dose, nil
}

func (repo *MedicationDoseRepository) Update(ctx context.Context, doseID string, update models.DoseUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.Timestamp != nil {
		set.add("timestamp", *update.Timestamp)
	}
	if update.Quantity != nil {
		set.add("quantity", *update.Quantity)
	}
	if update.Status != nil {
		set.add("status", *update.Status)
	}
	values := set.plain()
	return repo.retry.Do(ctx, "medication_doses.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.MedicationDose{}).Where("id = ?", doseID).Updates(values).Error
	})
}

// ListByRange returns doses with rangeStart <= timestamp < rangeEnd.
func (repo *MedicationDoseRepository) ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.MedicationDose, error) {
	doses := make([]models.MedicationDose, 0)
	err := repo.retry.Do(ctx, "medication_doses.list_by_range", func() error {
		return repo.database.WithContext(ctx).
			Where("timestamp >= ? AND timestamp < ?", rangeStart, rangeEnd).
			Order("timestamp ASC, id ASC").
			Find(&doses).Error
	})
	if err != nil {
		return nil, err
	}
	return doses, nil
}

func (repo *MedicationDoseRepository) ListByMedication(ctx context.Context, medicationID string) ([]models.MedicationDose, error) {
	doses := make([]models.MedicationDose, 0)
	err := repo.retry.Do(ctx, "medication_doses.list_by_medication", func() error {
		return repo.database.WithContext(ctx).
			Where("medication_id = ?", medicationID).
			Order("timestamp ASC, id ASC").
			Find(&doses).Error
	})
	if err != nil {
		return nil, err
	}
	return doses, nil
}

func (repo *MedicationDoseRepository) Delete(ctx context.Context, doseID string) error {
	return repo.retry.Do(ctx, "medication_doses.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", doseID).Delete(&models.MedicationDose{}).Error
	})
}
