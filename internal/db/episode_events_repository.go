package db

import (
	"context"
	"time"

	"github.com/ashmidera/migralog/internal/models"
	"gorm.io/gorm"
)

// IntensityReadingRepository stores point-in-time pain measurements.
type IntensityReadingRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewIntensityReadingRepository(database *gorm.DB, retry *RetryExecutor) *IntensityReadingRepository {
	return &IntensityReadingRepository{database: database, retry: retry}
}

func (repo *IntensityReadingRepository) Create(ctx context.Context, draft models.ReadingDraft) (models.IntensityReading, error) {
	reading := models.IntensityReading{
		ID:        models.NewID(),
		EpisodeID: draft.EpisodeID,
		Timestamp: draft.Timestamp,
		Intensity: draft.Intensity,
		CreatedAt: time.Now(),
	}
	if err := reading.Validate(); err != nil {
		return models.IntensityReading{}, err
	}
	err := repo.retry.Do(ctx, "intensity_readings.create", func() error {
		return repo.database.WithContext(ctx).Create(&reading).Error
	})
	if err != nil {
		return models.IntensityReading{}, err
	}
	return reading, nil
}

func (repo *IntensityReadingRepository) ListByEpisode(ctx context.Context, episodeID string) ([]models.IntensityReading, error) {
	readings := make([]models.IntensityReading, 0)
	err := repo.retry.Do(ctx, "intensity_readings.list_by_episode", func() error {
		return repo.database.WithContext(ctx).
			Where("episode_id = ?", episodeID).
			Order("timestamp ASC, id ASC").
			Find(&readings).Error
	})
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (repo *IntensityReadingRepository) Delete(ctx context.Context, readingID string) error {
	return repo.retry.Do(ctx, "intensity_readings.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", readingID).Delete(&models.IntensityReading{}).Error
	})
}

// SymptomLogRepository stores per-symptom onset/resolution records.
type SymptomLogRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewSymptomLogRepository(database *gorm.DB, retry *RetryExecutor) *SymptomLogRepository {
	return &SymptomLogRepository{database: database, retry: retry}
}

func (repo *SymptomLogRepository) Create(ctx context.Context, draft models.SymptomLogDraft) (models.SymptomLog, error) {
	symptomLog := models.SymptomLog{
		ID:             models.NewID(),
		EpisodeID:      draft.EpisodeID,
		Symptom:        draft.Symptom,
		OnsetTime:      draft.OnsetTime,
		ResolutionTime: draft.ResolutionTime,
		Severity:       draft.Severity,
		CreatedAt:      time.Now(),
	}
	if err := symptomLog.Validate(); err != nil {
		return models.SymptomLog{}, err
	}
	err := repo.retry.Do(ctx, "symptom_logs.create", func() error {
		return repo.database.WithContext(ctx).Create(&symptomLog).Error
	})
	if err != nil {
		return models.SymptomLog{}, err
	}
	return symptomLog, nil
}

func (repo *SymptomLogRepository) Update(ctx context.Context, symptomLogID string, update models.SymptomLogUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	set := updateSet{}
	if update.ResolutionTime != nil {
		set.add("resolution_time", *update.ResolutionTime)
	}
	if update.Severity != nil {
		set.add("severity", *update.Severity)
	}
	values := set.plain()
	return repo.retry.Do(ctx, "symptom_logs.update", func() error {
		return repo.database.WithContext(ctx).Model(&models.SymptomLog{}).Where("id = ?", symptomLogID).Updates(values).Error
	})
}

func (repo *SymptomLogRepository) ListByEpisode(ctx context.Context, episodeID string) ([]models.SymptomLog, error) {
	symptomLogs := make([]models.SymptomLog, 0)
	err := repo.retry.Do(ctx, "symptom_logs.list_by_episode", func() error {
		return repo.database.WithContext(ctx).
			Where("episode_id = ?", episodeID).
			Order("onset_time ASC, id ASC").
			Find(&symptomLogs).Error
	})
	if err != nil {
		return nil, err
	}
	return symptomLogs, nil
}

func (repo *SymptomLogRepository) Delete(ctx context.Context, symptomLogID string) error {
	return repo.retry.Do(ctx, "symptom_logs.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", symptomLogID).Delete(&models.SymptomLog{}).Error
	})
}

// PainLocationLogRepository stores where the pain sat over time.
type PainLocationLogRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewPainLocationLogRepository(database *gorm.DB, retry *RetryExecutor) *PainLocationLogRepository {
	return &PainLocationLogRepository{database: database, retry: retry}
}

func (repo *PainLocationLogRepository) Create(ctx context.Context, draft models.PainLocationDraft) (models.PainLocationLog, error) {
	locationLog := models.PainLocationLog{
		ID:            models.NewID(),
		EpisodeID:     draft.EpisodeID,
		Timestamp:     draft.Timestamp,
		PainLocations: models.StringList(draft.PainLocations),
		CreatedAt:     time.Now(),
	}
	if err := locationLog.Validate(); err != nil {
		return models.PainLocationLog{}, err
	}
	err := repo.retry.Do(ctx, "pain_location_logs.create", func() error {
		return repo.database.WithContext(ctx).Create(&locationLog).Error
	})
	if err != nil {
		return models.PainLocationLog{}, err
	}
	return locationLog, nil
}

func (repo *PainLocationLogRepository) ListByEpisode(ctx context.Context, episodeID string) ([]models.PainLocationLog, error) {
	locationLogs := make([]models.PainLocationLog, 0)
	err := repo.retry.Do(ctx, "pain_location_logs.list_by_episode", func() error {
		return repo.database.WithContext(ctx).
			Where("episode_id = ?", episodeID).
			Order("timestamp ASC, id ASC").
			Find(&locationLogs).Error
	})
	if err != nil {
		return nil, err
	}
	return locationLogs, nil
}

func (repo *PainLocationLogRepository) Delete(ctx context.Context, locationLogID string) error {
	return repo.retry.Do(ctx, "pain_location_logs.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", locationLogID).Delete(&models.PainLocationLog{}).Error
	})
}

// EpisodeNoteRepository stores timestamped annotations on an episode.
type EpisodeNoteRepository struct {
	database *gorm.DB
	retry    *RetryExecutor
}

func NewEpisodeNoteRepository(database *gorm.DB, retry *RetryExecutor) *EpisodeNoteRepository {
	return &EpisodeNoteRepository{database: database, retry: retry}
}

func (repo *EpisodeNoteRepository) Create(ctx context.Context, draft models.NoteDraft) (models.EpisodeNote, error) {
	episodeNote := models.EpisodeNote{
		ID:        models.NewID(),
		EpisodeID: draft.EpisodeID,
		Timestamp: draft.Timestamp,
		Note:      draft.Note,
		CreatedAt: time.Now(),
	}
	if err := episodeNote.Validate(); err != nil {
		return models.EpisodeNote{}, err
	}
	err := repo.retry.Do(ctx, "episode_notes.create", func() error {
		return repo.database.WithContext(ctx).Create(&episodeNote).Error
	})
	if err != nil {
		return models.EpisodeNote{}, err
	}
	return episodeNote, nil
}

func (repo *EpisodeNoteRepository) ListByEpisode(ctx context.Context, episodeID string) ([]models.EpisodeNote, error) {
	episodeNotes := make([]models.EpisodeNote, 0)
	err := repo.retry.Do(ctx, "episode_notes.list_by_episode", func() error {
		return repo.database.WithContext(ctx).
			Where("episode_id = ?", episodeID).
			Order("timestamp ASC, id ASC").
			Find(&episodeNotes).Error
	})
	if err != nil {
		return nil, err
	}
	return episodeNotes, nil
}

func (repo *EpisodeNoteRepository) Delete(ctx context.Context, episodeNoteID string) error {
	return repo.retry.Do(ctx, "episode_notes.delete", func() error {
		return repo.database.WithContext(ctx).Where("id = ?", episodeNoteID).Delete(&models.EpisodeNote{}).Error
	})
}
