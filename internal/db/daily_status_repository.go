package db

import (
	"context"
	"time"

	"github.com/ashmidera/migralog/internal/models"
	"gorm.io/gorm"
)

type DailyStatusRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewDailyStatusRepository(database *gorm.DB, retry *RetryExecutor) *DailyStatusRepository {
	return &DailyStatusRepository{database: database, retry: retry}
}

func (repo *DailyStatusRepository) Create(ctx context.Context, draft models.DailyStatusDraft) (models.DailyStatusLog, error) {
	now := time.Now()
	entry := models.DailyStatusLog{
		ID:         models.NewID(),
		Date:       draft.Date,
		Status:     draft.Status,
		StatusType: draft.StatusType,
		Notes:      draft.Notes,
		Prompted:   draft.Prompted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := entry.Validate(now); err != nil {
		return models.DailyStatusLog{}, err
	}
	err := repo.retry.Do(ctx, "daily_status_logs.create", func() error {
		return repo.database.WithContext(ctx).Create(&entry).Error
	})
	if err != nil {
		return models.DailyStatusLog{}, err
	}
	return entry, nil
}

func (repo *DailyStatusRepository) Update(ctx context.Context, entryID string, update models.DailyStatusUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.Status != nil {
		set.add("status", *update.Status)
	}
	if update.StatusType != nil {
		set.add("status_type", *update.StatusType)
	}
	if update.Notes != nil {
		set.add("notes", *update.Notes)
	}
	if update.Prompted != nil {
		set.add("prompted", *update.Prompted)
	}
	// A status leaving yellow may not keep its subtype.
	if update.Status != nil && *update.Status != models.StatusYellow && update.StatusType == nil {
		set.add("status_type", nil)
	}
	values := set.stamped(time.Now())
	return repo.retry.Do(ctx, "daily_status_logs.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.DailyStatusLog{}).Where("id = ?", entryID).Updates(values).Error
	})
}

func (repo *DailyStatusRepository) FindByDate(ctx context.Context, date string) (models.DailyStatusLog, bool, error) {
	var entry models.DailyStatusLog
	found := false
	err := repo.retry.Do(ctx, "daily_status_logs.find_by_date", func() error {
		result := repo.database.WithContext(ctx).Where("date = ?", date).Limit(1).Find(&entry)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.DailyStatusLog{}, false, err
	}
	return entry, found, nil
}

// ListByDateRange returns logs with fromDate <= date <= toDate. ISO dates
// compare lexicographically, so the range is a plain string comparison.
func (repo *DailyStatusRepository) ListByDateRange(ctx context.Context, fromDate string, toDate string) ([]models.DailyStatusLog, error) {
	entries := make([]models.DailyStatusLog, 0)
	err := repo.retry.Do(ctx, "daily_status_logs.list_by_date_range", func() error {
		return repo.database.WithContext(ctx).
			Where("date >= ? AND date <= ?", fromDate, toDate).
			Order("date ASC").
			Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DailyStatusRepository) List(ctx context.Context, limit int, offset int) ([]models.DailyStatusLog, error) {
	entries := make([]models.DailyStatusLog, 0)
	err := repo.retry.Do(ctx, "daily_status_logs.list", func() error {
		query := repo.database.WithContext(ctx).Order("date DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		if offset > 0 {
			query = query.Offset(offset)
		}
		return query.Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DailyStatusRepository) Delete(ctx context.Context, entryID string) error {
	return repo.retry.Do(ctx, "daily_status_logs.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", entryID).Delete(&models.DailyStatusLog{}).Error
	})
}

func (repo *DailyStatusRepository) DeleteAll(ctx context.Context) error {
	return repo.retry.Do(ctx, "daily_status_logs.delete_all", func() error {
		return repo.database.WithContext(ctx).Exec(`DELETE FROM daily_status_logs`).Error
	})
}
