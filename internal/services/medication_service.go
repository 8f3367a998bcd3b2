package services

import (
	"context"
	"errors"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

var ErrMedicationNotFound = errors.New("medication not found")

type MedicationStore interface {
	Create(ctx context.Context, draft models.MedicationDraft) (models.Medication, error)
	Update(ctx context.Context, medicationID string, update models.MedicationUpdate) error
	FindByID(ctx context.Context, medicationID string) (models.Medication, bool, error)
	List(ctx context.Context, activeOnly bool) ([]models.Medication, error)
	Delete(ctx context.Context, medicationID string) error
}

type ScheduleStore interface {
	Create(ctx context.Context, draft models.ScheduleDraft) (models.MedicationSchedule, error)
	Update(ctx context.Context, scheduleID string, update models.ScheduleUpdate) error
	ListByMedication(ctx context.Context, medicationID string) ([]models.MedicationSchedule, error)
	ListEnabled(ctx context.Context) ([]models.MedicationSchedule, error)
	Delete(ctx context.Context, scheduleID string) error
}

type DoseStore interface {
	Create(ctx context.Context, draft models.DoseDraft) (models.MedicationDose, error)
	Update(ctx context.Context, doseID string, update models.DoseUpdate) error
	ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.MedicationDose, error)
	ListByMedication(ctx context.Context, medicationID string) ([]models.MedicationDose, error)
	Delete(ctx context.Context, doseID string) error
}

// MedicationService manages the medication cabinet, intake schedules and
// dose history, and derives compliance/usage stats from them.
type MedicationService struct {
	medications MedicationStore
	schedules   ScheduleStore
	doses       DoseStore
}

func NewMedicationService(medications MedicationStore, schedules ScheduleStore, doses DoseStore) *MedicationService {
	return &MedicationService{
		medications: medications,
		schedules:   schedules,
		doses:       doses,
	}
}

func (service *MedicationService) AddMedication(ctx context.Context, draft models.MedicationDraft) (models.Medication, error) {
	return service.medications.Create(ctx, draft)
}

func (service *MedicationService) GetMedication(ctx context.Context, medicationID string) (models.Medication, error) {
	medication, found, err := service.medications.FindByID(ctx, medicationID)
	if err != nil {
		return models.Medication{}, err
	}
	if !found {
		return models.Medication{}, ErrMedicationNotFound
	}
	return medication, nil
}

func (service *MedicationService) UpdateMedication(ctx context.Context, medicationID string, update models.MedicationUpdate) error {
	if _, err := service.GetMedication(ctx, medicationID); err != nil {
		return err
	}
	return service.medications.Update(ctx, medicationID, update)
}

func (service *MedicationService) ListMedications(ctx context.Context, activeOnly bool) ([]models.Medication, error) {
	return service.medications.List(ctx, activeOnly)
}

func (service *MedicationService) DeleteMedication(ctx context.Context, medicationID string) error {
	if _, err := service.GetMedication(ctx, medicationID); err != nil {
		return err
	}
	return service.medications.Delete(ctx, medicationID)
}

func (service *MedicationService) AddSchedule(ctx context.Context, draft models.ScheduleDraft) (models.MedicationSchedule, error) {
	if _, err := service.GetMedication(ctx, draft.MedicationID); err != nil {
		return models.MedicationSchedule{}, err
	}
	return service.schedules.Create(ctx, draft)
}

func (service *MedicationService) UpdateSchedule(ctx context.Context, scheduleID string, update models.ScheduleUpdate) error {
	return service.schedules.Update(ctx, scheduleID, update)
}

func (service *MedicationService) ListSchedules(ctx context.Context, medicationID string) ([]models.MedicationSchedule, error) {
	return service.schedules.ListByMedication(ctx, medicationID)
}

func (service *MedicationService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return service.schedules.Delete(ctx, scheduleID)
}

func (service *MedicationService) RecordDose(ctx context.Context, draft models.DoseDraft) (models.MedicationDose, error) {
	if _, err := service.GetMedication(ctx, draft.MedicationID); err != nil {
		return models.MedicationDose{}, err
	}
	return service.doses.Create(ctx, draft)
}

func (service *MedicationService) UpdateDose(ctx context.Context, doseID string, update models.DoseUpdate) error {
	return service.doses.Update(ctx, doseID, update)
}

func (service *MedicationService) ListDoses(ctx context.Context, medicationID string) ([]models.MedicationDose, error) {
	return service.doses.ListByMedication(ctx, medicationID)
}

func (service *MedicationService) DeleteDose(ctx context.Context, doseID string) error {
	return service.doses.Delete(ctx, doseID)
}

// ComplianceForRange computes preventative compliance over the inclusive
// day range containing rangeStart..rangeEnd.
func (service *MedicationService) ComplianceForRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time, location *time.Location) (int, error) {
	medications, err := service.medications.List(ctx, true)
	if err != nil {
		return 0, err
	}
	schedules, err := service.schedules.ListEnabled(ctx)
	if err != nil {
		return 0, err
	}
	doses, err := service.dosesForDayRange(ctx, rangeStart, rangeEnd, location)
	if err != nil {
		return 0, err
	}
	return PreventativeCompliance(medications, schedules, doses, rangeStart, rangeEnd, location), nil
}

// UsageForRange reports per-medication dose totals and distinct dose days.
func (service *MedicationService) UsageForRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time, location *time.Location) ([]MedicationUsage, error) {
	doses, err := service.dosesForDayRange(ctx, rangeStart, rangeEnd, location)
	if err != nil {
		return nil, err
	}
	return MedicationUsageStats(doses, rangeStart, rangeEnd, location), nil
}

func (service *MedicationService) dosesForDayRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time, location *time.Location) ([]models.MedicationDose, error) {
	dayStart := DateAtLocation(rangeStart, location)
	dayEndExclusive := DateAtLocation(rangeEnd, location).AddDate(0, 0, 1)
	return service.doses.ListByRange(ctx, dayStart, dayEndExclusive)
}
