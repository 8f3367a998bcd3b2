package services

import (
	"context"
	"errors"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

var (
	ErrEpisodeNotFound    = errors.New("episode not found")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrSymptomLogNotFound = errors.New("symptom log not found")
)

type EpisodeStore interface {
	Create(ctx context.Context, draft models.EpisodeDraft) (models.Episode, error)
	Update(ctx context.Context, episodeID string, update models.EpisodeUpdate) error
	FindByID(ctx context.Context, episodeID string) (models.Episode, bool, error)
	FindByTimestamp(ctx context.Context, t time.Time) (models.Episode, bool, error)
	List(ctx context.Context, limit int, offset int) ([]models.Episode, error)
	ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.Episode, error)
	Delete(ctx context.Context, episodeID string) error
	DeleteAll(ctx context.Context) error
}

type ReadingStore interface {
	Create(ctx context.Context, draft models.ReadingDraft) (models.IntensityReading, error)
	ListByEpisode(ctx context.Context, episodeID string) ([]models.IntensityReading, error)
}

type SymptomLogStore interface {
	Create(ctx context.Context, draft models.SymptomLogDraft) (models.SymptomLog, error)
	Update(ctx context.Context, symptomLogID string, update models.SymptomLogUpdate) error
	ListByEpisode(ctx context.Context, episodeID string) ([]models.SymptomLog, error)
}

type PainLocationStore interface {
	Create(ctx context.Context, draft models.PainLocationDraft) (models.PainLocationLog, error)
	ListByEpisode(ctx context.Context, episodeID string) ([]models.PainLocationLog, error)
}

type NoteStore interface {
	Create(ctx context.Context, draft models.NoteDraft) (models.EpisodeNote, error)
	ListByEpisode(ctx context.Context, episodeID string) ([]models.EpisodeNote, error)
}

// EpisodeService owns the episode lifecycle: Open on creation, Closed once
// an end time is set, and every in-episode event hangs off an existing
// episode id.
type EpisodeService struct {
	episodes EpisodeStore
	readings ReadingStore
	symptoms SymptomLogStore
	pains    PainLocationStore
	notes    NoteStore
}

func NewEpisodeService(episodes EpisodeStore, readings ReadingStore, symptoms SymptomLogStore, pains PainLocationStore, notes NoteStore) *EpisodeService {
	return &EpisodeService{
		episodes: episodes,
		readings: readings,
		symptoms: symptoms,
		pains:    pains,
		notes:    notes,
	}
}

func (service *EpisodeService) StartEpisode(ctx context.Context, draft models.EpisodeDraft) (models.Episode, error) {
	return service.episodes.Create(ctx, draft)
}

func (service *EpisodeService) GetEpisode(ctx context.Context, episodeID string) (models.Episode, error) {
	episode, found, err := service.episodes.FindByID(ctx, episodeID)
	if err != nil {
		return models.Episode{}, err
	}
	if !found {
		return models.Episode{}, ErrEpisodeNotFound
	}
	return episode, nil
}

// UpdateEpisode applies a partial update. Cross-field constraints are
// checked against the merged result of the update and the stored row, so
// a closed episode can never end before it starts and the average
// intensity can never exceed the peak.
func (service *EpisodeService) UpdateEpisode(ctx context.Context, episodeID string, update models.EpisodeUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if update.StartTime != nil || update.EndTime != nil || update.PeakIntensity != nil || update.AverageIntensity != nil {
		episode, err := service.GetEpisode(ctx, episodeID)
		if err != nil {
			return err
		}
		startTime := episode.StartTime
		if update.StartTime != nil {
			startTime = *update.StartTime
		}
		endTime := episode.EndTime
		if update.EndTime != nil {
			endTime = update.EndTime
		}
		if endTime != nil && !endTime.After(startTime) {
			return ErrEndBeforeStart
		}
		peak := episode.PeakIntensity
		if update.PeakIntensity != nil {
			peak = update.PeakIntensity
		}
		average := episode.AverageIntensity
		if update.AverageIntensity != nil {
			average = update.AverageIntensity
		}
		if err := models.ValidateAverageAgainstPeak(average, peak); err != nil {
			return err
		}
	}
	return service.episodes.Update(ctx, episodeID, update)
}

// CloseEpisode transitions an episode to Closed by stamping its end time.
func (service *EpisodeService) CloseEpisode(ctx context.Context, episodeID string, endTime time.Time) error {
	return service.UpdateEpisode(ctx, episodeID, models.EpisodeUpdate{EndTime: &endTime})
}

// EpisodeAt returns the episode whose interval contains t, used to
// attribute doses and events to an in-progress or past episode.
func (service *EpisodeService) EpisodeAt(ctx context.Context, t time.Time) (models.Episode, bool, error) {
	return service.episodes.FindByTimestamp(ctx, t)
}

func (service *EpisodeService) ListEpisodes(ctx context.Context, limit int, offset int) ([]models.Episode, error) {
	return service.episodes.List(ctx, limit, offset)
}

func (service *EpisodeService) DeleteEpisode(ctx context.Context, episodeID string) error {
	if _, err := service.GetEpisode(ctx, episodeID); err != nil {
		return err
	}
	return service.episodes.Delete(ctx, episodeID)
}

// DeleteAllEpisodes clears episode history including dependent readings
// and logs; the cascade is handled by the store in one transaction.
func (service *EpisodeService) DeleteAllEpisodes(ctx context.Context) error {
	return service.episodes.DeleteAll(ctx)
}

func (service *EpisodeService) RecordReading(ctx context.Context, draft models.ReadingDraft) (models.IntensityReading, error) {
	if _, err := service.GetEpisode(ctx, draft.EpisodeID); err != nil {
		return models.IntensityReading{}, err
	}
	return service.readings.Create(ctx, draft)
}

func (service *EpisodeService) ListReadings(ctx context.Context, episodeID string) ([]models.IntensityReading, error) {
	return service.readings.ListByEpisode(ctx, episodeID)
}

func (service *EpisodeService) RecordSymptom(ctx context.Context, draft models.SymptomLogDraft) (models.SymptomLog, error) {
	if _, err := service.GetEpisode(ctx, draft.EpisodeID); err != nil {
		return models.SymptomLog{}, err
	}
	return service.symptoms.Create(ctx, draft)
}

// ResolveSymptom stamps the resolution time on a recorded symptom.
func (service *EpisodeService) ResolveSymptom(ctx context.Context, episodeID string, symptomLogID string, resolutionTime time.Time) error {
	symptomLogs, err := service.symptoms.ListByEpisode(ctx, episodeID)
	if err != nil {
		return err
	}
	for _, symptomLog := range symptomLogs {
		if symptomLog.ID != symptomLogID {
			continue
		}
		if !resolutionTime.After(symptomLog.OnsetTime) {
			return ErrEndBeforeStart
		}
		return service.symptoms.Update(ctx, symptomLogID, models.SymptomLogUpdate{ResolutionTime: &resolutionTime})
	}
	return ErrSymptomLogNotFound
}

func (service *EpisodeService) ListSymptoms(ctx context.Context, episodeID string) ([]models.SymptomLog, error) {
	return service.symptoms.ListByEpisode(ctx, episodeID)
}

func (service *EpisodeService) RecordPainLocations(ctx context.Context, draft models.PainLocationDraft) (models.PainLocationLog, error) {
	if _, err := service.GetEpisode(ctx, draft.EpisodeID); err != nil {
		return models.PainLocationLog{}, err
	}
	return service.pains.Create(ctx, draft)
}

func (service *EpisodeService) ListPainLocations(ctx context.Context, episodeID string) ([]models.PainLocationLog, error) {
	return service.pains.ListByEpisode(ctx, episodeID)
}

func (service *EpisodeService) RecordNote(ctx context.Context, draft models.NoteDraft) (models.EpisodeNote, error) {
	if _, err := service.GetEpisode(ctx, draft.EpisodeID); err != nil {
		return models.EpisodeNote{}, err
	}
	return service.notes.Create(ctx, draft)
}

func (service *EpisodeService) ListNotes(ctx context.Context, episodeID string) ([]models.EpisodeNote, error) {
	return service.notes.ListByEpisode(ctx, episodeID)
}
