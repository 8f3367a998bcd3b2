package db

import (
	"context"
	"time"

	"github.com/ashmidera/migralog/internal/models"
	"gorm.io/gorm"
)

type EpisodeRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewEpisodeRepository(database *gorm.DB, retry *RetryExecutor) *EpisodeRepository {
	return &EpisodeRepository{database: database, retry: retry}
}

// Create validates the draft and inserts it with a fresh sortable id and
// creation timestamps. Validation failure never reaches storage.
func (repo *EpisodeRepository) Create(ctx context.Context, draft models.EpisodeDraft) (models.Episode, error) {
	now := time.Now()
	episode := models.Episode{
		ID:               models.NewID(),
		StartTime:        draft.StartTime,
		EndTime:          draft.EndTime,
		Locations:        models.StringList(draft.Locations),
		Qualities:        models.StringList(draft.Qualities),
		Symptoms:         models.StringList(draft.Symptoms),
		Triggers:         models.StringList(draft.Triggers),
		Notes:            draft.Notes,
		PeakIntensity:    draft.PeakIntensity,
		AverageIntensity: draft.AverageIntensity,
		Location:         draft.Location,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	episode.Normalize()
	if err := episode.Validate(); err != nil {
		return models.Episode{}, err
	}

	err := repo.retry.Do(ctx, "episodes.create", func() error {
		return repo.database.WithContext(ctx).Create(&episode).Error
	})
	if err != nil {
		return models.Episode{}, err
	}
	return episode, nil
}

// Update applies only the fields named in update and restamps updated_at.
func (repo *EpisodeRepository) Update(ctx context.Context, episodeID string, update models.EpisodeUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}

	set := updateSet{}
	if update.StartTime != nil {
		set.add("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		set.add("end_time", *update.EndTime)
	}
	if update.Locations != nil {
		set.add("locations", models.StringList(*update.Locations))
	}
	if update.Qualities != nil {
		set.add("qualities", models.StringList(*update.Qualities))
	}
	if update.Symptoms != nil {
		set.add("symptoms", models.StringList(*update.Symptoms))
	}
	if update.Triggers != nil {
		set.add("triggers", models.StringList(*update.Triggers))
	}
	if update.Notes != nil {
		set.add("notes", *update.Notes)
	}
	if update.PeakIntensity != nil {
		set.add("peak_intensity", *update.PeakIntensity)
	}
	if update.AverageIntensity != nil {
		set.add("average_intensity", *update.AverageIntensity)
	}
	if update.Location != nil {
		set.add("location", *update.Location)
	}

	values := set.stamped(time.Now())
	return repo.retry.Do(ctx, "episodes.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.Episode{}).Where("id = ?", episodeID).Updates(values).Error
	})
}

func (repo *EpisodeRepository) FindByID(ctx context.Context, episodeID string) (models.Episode, bool, error) {
	var episode models.Episode
	found := false
	err := repo.retry.Do(ctx, "episodes.find_by_id", func() error {
		result := repo.database.WithContext(ctx).Where("id = ?", episodeID).Limit(1).Find(&episode)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.Episode{}, false, err
	}
	return episode, found, nil
}

// FindByTimestamp returns the episode whose [start_time, end_time ?? now)
// interval contains t, preferring the most recent start. Used to attribute
// doses and events to an in-progress or past episode.
func (repo *EpisodeRepository) FindByTimestamp(ctx context.Context, t time.Time) (models.Episode, bool, error) {
	var episode models.Episode
	found := false
	now := time.Now()
	err := repo.retry.Do(ctx, "episodes.find_by_timestamp", func() error {
		result := repo.database.WithContext(ctx).
			Where("start_time <= ? AND (end_time > ? OR (end_time IS NULL AND ? < ?))", t, t, t, now).
			Order("start_time DESC").
			Limit(1).
			Find(&episode)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.Episode{}, false, err
	}
	return episode, found, nil
}

func (repo *EpisodeRepository) List(ctx context.Context, limit int, offset int) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0)
	err := repo.retry.Do(ctx, "episodes.list", func() error {
		query := repo.database.WithContext(ctx).Order("start_time DESC, id DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		if offset > 0 {
			query = query.Offset(offset)
		}
		return query.Find(&episodes).Error
	})
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// ListByRange returns episodes whose effective interval overlaps
// [rangeStart, rangeEnd]; an open episode overlaps everything from its
// start onward.
func (repo *EpisodeRepository) ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0)
	err := repo.retry.Do(ctx, "episodes.list_by_range", func() error {
		return repo.database.WithContext(ctx).
			Where("start_time <= ? AND (end_time IS NULL OR end_time >= ?)", rangeEnd, rangeStart).
			Order("start_time ASC, id ASC").
			Find(&episodes).Error
	})
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// Delete removes one episode and its dependent records in one transaction.
func (repo *EpisodeRepository) Delete(ctx context.Context, episodeID string) error {
	return repo.retry.Do(ctx, "episodes.delete", func() error {
		return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("episode_id = ?", episodeID).Delete(&models.IntensityReading{}).Error; err != nil {
				return err
			}
			if err := tx.Where("episode_id = ?", episodeID).Delete(&models.SymptomLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("episode_id = ?", episodeID).Delete(&models.PainLocationLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("episode_id = ?", episodeID).Delete(&models.EpisodeNote{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", episodeID).Delete(&models.Episode{}).Error
		})
	})
}

// DeleteAll clears every episode together with all dependent readings,
// symptom logs, location logs and notes.
func (repo *EpisodeRepository) DeleteAll(ctx context.Context) error {
	return repo.retry.Do(ctx, "episodes.delete_all", func() error {
		return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, statement := range []string{
				`DELETE FROM intensity_readings`,
				`DELETE FROM symptom_logs`,
				`DELETE FROM pain_location_logs`,
				`DELETE FROM episode_notes`,
				`DELETE FROM episodes`,
			} {
				if err := tx.Exec(statement).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}
