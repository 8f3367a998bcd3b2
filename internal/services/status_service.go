package services

import (
	"context"
	"errors"

	"github.com/ashmidera/migralog/internal/models"
)

var ErrStatusNotFound = errors.New("daily status not found")

type DailyStatusStore interface {
	Create(ctx context.Context, draft models.DailyStatusDraft) (models.DailyStatusLog, error)
	Update(ctx context.Context, entryID string, update models.DailyStatusUpdate) error
	FindByDate(ctx context.Context, date string) (models.DailyStatusLog, bool, error)
	ListByDateRange(ctx context.Context, fromDate string, toDate string) ([]models.DailyStatusLog, error)
	List(ctx context.Context, limit int, offset int) ([]models.DailyStatusLog, error)
	Delete(ctx context.Context, entryID string) error
	DeleteAll(ctx context.Context) error
}

// StatusService manages the one-row-per-day self-assessment log.
type StatusService struct {
	statuses DailyStatusStore
}

func NewStatusService(statuses DailyStatusStore) *StatusService {
	return &StatusService{statuses: statuses}
}

// RecordStatus upserts the status for a date: the unique date row is
// updated in place when it already exists, created otherwise.
func (service *StatusService) RecordStatus(ctx context.Context, draft models.DailyStatusDraft) (models.DailyStatusLog, error) {
	existing, found, err := service.statuses.FindByDate(ctx, draft.Date)
	if err != nil {
		return models.DailyStatusLog{}, err
	}
	if !found {
		return service.statuses.Create(ctx, draft)
	}

	update := models.DailyStatusUpdate{
		Status:   &draft.Status,
		Prompted: &draft.Prompted,
	}
	if draft.StatusType != nil {
		update.StatusType = draft.StatusType
	}
	if draft.Notes != nil {
		update.Notes = draft.Notes
	}
	if err := service.statuses.Update(ctx, existing.ID, update); err != nil {
		return models.DailyStatusLog{}, err
	}

	updated, found, err := service.statuses.FindByDate(ctx, draft.Date)
	if err != nil {
		return models.DailyStatusLog{}, err
	}
	if !found {
		return models.DailyStatusLog{}, ErrStatusNotFound
	}
	return updated, nil
}

func (service *StatusService) StatusForDate(ctx context.Context, date string) (models.DailyStatusLog, error) {
	entry, found, err := service.statuses.FindByDate(ctx, date)
	if err != nil {
		return models.DailyStatusLog{}, err
	}
	if !found {
		return models.DailyStatusLog{}, ErrStatusNotFound
	}
	return entry, nil
}

func (service *StatusService) StatusesForRange(ctx context.Context, fromDate string, toDate string) ([]models.DailyStatusLog, error) {
	return service.statuses.ListByDateRange(ctx, fromDate, toDate)
}

func (service *StatusService) ListStatuses(ctx context.Context, limit int, offset int) ([]models.DailyStatusLog, error) {
	return service.statuses.List(ctx, limit, offset)
}

func (service *StatusService) DeleteStatus(ctx context.Context, entryID string) error {
	return service.statuses.Delete(ctx, entryID)
}

func (service *StatusService) DeleteAllStatuses(ctx context.Context) error {
	return service.statuses.DeleteAll(ctx)
}
