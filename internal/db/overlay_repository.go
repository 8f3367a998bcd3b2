package db

import (
	"context"
	"time"

	"github.com/ashmidera/migralog/internal/models"
	"gorm.io/gorm"
)

type OverlayRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewOverlayRepository(database *gorm.DB, retry *RetryExecutor) *OverlayRepository {
	return &OverlayRepository{database: database, retry: retry}
}

func (repo *OverlayRepository) Create(ctx context.Context, draft models.OverlayDraft) (models.CalendarOverlay, error) {
	now := time.Now()
	overlay := models.CalendarOverlay{
		ID:               models.NewID(),
		StartDate:        draft.StartDate,
		EndDate:          draft.EndDate,
		Label:            draft.Label,
		Notes:            draft.Notes,
		ExcludeFromStats: draft.ExcludeFromStats,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := overlay.Validate(); err != nil {
		return models.CalendarOverlay{}, err
	}
	err := repo.retry.Do(ctx, "calendar_overlays.create", func() error {
		return repo.database.WithContext(ctx).Create(&overlay).Error
	})
	if err != nil {
		return models.CalendarOverlay{}, err
	}
	return overlay, nil
}

func (repo *OverlayRepository) Update(ctx context.Context, overlayID string, update models.OverlayUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.StartDate != nil {
		set.add("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		set.add("end_date", *update.EndDate)
	}
	if update.Label != nil {
		set.add("label", *update.Label)
	}
	if update.Notes != nil {
		set.add("notes", *update.Notes)
	}
	if update.ExcludeFromStats != nil {
		set.add("exclude_from_stats", *update.ExcludeFromStats)
	}
	values := set.stamped(time.Now())
	return repo.retry.Do(ctx, "calendar_overlays.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.CalendarOverlay{}).Where("id = ?", overlayID).Updates(values).Error
	})
}

func (repo *OverlayRepository) FindByID(ctx context.Context, overlayID string) (models.CalendarOverlay, bool, error) {
	var overlay models.CalendarOverlay
	found := false
	err := repo.retry.Do(ctx, "calendar_overlays.find_by_id", func() error {
		result := repo.database.WithContext(ctx).Where("id = ?", overlayID).Limit(1).Find(&overlay)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.CalendarOverlay{}, false, err
	}
	return overlay, found, nil
}

func (repo *OverlayRepository) List(ctx context.Context) ([]models.CalendarOverlay, error) {
	overlays := make([]models.CalendarOverlay, 0)
	err := repo.retry.Do(ctx, "calendar_overlays.list", func() error {
		return repo.database.WithContext(ctx).Order("start_date ASC, id ASC").Find(&overlays).Error
	})
	if err != nil {
		return nil, err
	}
	return overlays, nil
}

// ListOverlapping returns overlays intersecting [fromDate, toDate].
func (repo *OverlayRepository) ListOverlapping(ctx context.Context, fromDate string, toDate string) ([]models.CalendarOverlay, error) {
	overlays := make([]models.CalendarOverlay, 0)
	err := repo.retry.Do(ctx, "calendar_overlays.list_overlapping", func() error {
		return repo.database.WithContext(ctx).
			Where("start_date <= ? AND end_date >= ?", toDate, fromDate).
			Order("start_date ASC, id ASC").
			Find(&overlays).Error
	})
	if err != nil {
		return nil, err
	}
	return overlays, nil
}

func (repo *OverlayRepository) Delete(ctx context.Context, overlayID string) error {
	return repo.retry.Do(ctx, "calendar_overlays.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", overlayID).Delete(&models.CalendarOverlay{}).Error
	})
}
