package services

import (
	"context"
	"errors"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

var ErrOverlayNotFound = errors.New("calendar overlay not found")

type EpisodeRangeReader interface {
	ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.Episode, error)
}

type StatusRangeReader interface {
	ListByDateRange(ctx context.Context, fromDate string, toDate string) ([]models.DailyStatusLog, error)
}

type OverlayStore interface {
	Create(ctx context.Context, draft models.OverlayDraft) (models.CalendarOverlay, error)
	Update(ctx context.Context, overlayID string, update models.OverlayUpdate) error
	FindByID(ctx context.Context, overlayID string) (models.CalendarOverlay, bool, error)
	List(ctx context.Context) ([]models.CalendarOverlay, error)
	ListOverlapping(ctx context.Context, fromDate string, toDate string) ([]models.CalendarOverlay, error)
	Delete(ctx context.Context, overlayID string) error
}

type MedicationReader interface {
	List(ctx context.Context, activeOnly bool) ([]models.Medication, error)
}

type ScheduleReader interface {
	ListEnabled(ctx context.Context) ([]models.MedicationSchedule, error)
}

type DoseRangeReader interface {
	ListByRange(ctx context.Context, rangeStart time.Time, rangeEnd time.Time) ([]models.MedicationDose, error)
}

// CalendarSummary is the combined per-range report backing the calendar
// screen: day categorization with episode precedence applied, episode
// burden and duration stats, preventative compliance and medication
// usage, plus any overlays intersecting the range.
type CalendarSummary struct {
	From           string                   `json:"from"`
	To             string                   `json:"to"`
	DayTotals      DayCategoryTotals        `json:"day_totals"`
	EpisodeDays    int                      `json:"episode_days"`
	EpisodeCount   int                      `json:"episode_count"`
	Durations      DurationStats            `json:"durations"`
	Compliance     int                      `json:"compliance_percent"`
	MedicationUse  []MedicationUsage        `json:"medication_usage"`
	Overlays       []models.CalendarOverlay `json:"overlays"`
	EffectiveDaily []models.DailyStatusLog  `json:"effective_daily_statuses"`
}

// CalendarService reads through the stores and composes the pure
// aggregation functions into a range summary. Precedence (episode days
// beat manual statuses) is applied here, not in the counters.
type CalendarService struct {
	episodes    EpisodeRangeReader
	statuses    StatusRangeReader
	overlays    OverlayStore
	medications MedicationReader
	schedules   ScheduleReader
	doses       DoseRangeReader
}

func NewCalendarService(episodes EpisodeRangeReader, statuses StatusRangeReader, overlays OverlayStore, medications MedicationReader, schedules ScheduleReader, doses DoseRangeReader) *CalendarService {
	return &CalendarService{
		episodes:    episodes,
		statuses:    statuses,
		overlays:    overlays,
		medications: medications,
		schedules:   schedules,
		doses:       doses,
	}
}

// BuildSummary assembles the calendar summary for the inclusive day range
// containing [from, to]. Open episodes are evaluated against now.
func (service *CalendarService) BuildSummary(ctx context.Context, from time.Time, to time.Time, now time.Time, location *time.Location) (CalendarSummary, error) {
	if location == nil {
		location = time.UTC
	}
	fromDay := DateAtLocation(from, location)
	toDay := DateAtLocation(to, location)
	toExclusive := toDay.AddDate(0, 0, 1)
	fromKey := fromDay.Format(models.DayLayout)
	toKey := toDay.Format(models.DayLayout)

	episodes, err := service.episodes.ListByRange(ctx, fromDay, toExclusive)
	if err != nil {
		return CalendarSummary{}, err
	}
	statusLogs, err := service.statuses.ListByDateRange(ctx, fromKey, toKey)
	if err != nil {
		return CalendarSummary{}, err
	}
	overlays, err := service.overlays.ListOverlapping(ctx, fromKey, toKey)
	if err != nil {
		return CalendarSummary{}, err
	}
	medications, err := service.medications.List(ctx, true)
	if err != nil {
		return CalendarSummary{}, err
	}
	schedules, err := service.schedules.ListEnabled(ctx)
	if err != nil {
		return CalendarSummary{}, err
	}
	doses, err := service.doses.ListByRange(ctx, fromDay, toExclusive)
	if err != nil {
		return CalendarSummary{}, err
	}

	effective := OverrideStatusesWithEpisodes(statusLogs, episodes, fromDay, toDay, now, location)
	return CalendarSummary{
		From:           fromKey,
		To:             toKey,
		DayTotals:      CategorizeDays(effective, fromDay, toDay, location),
		EpisodeDays:    EpisodeDayCount(episodes, fromDay, toDay, now, location),
		EpisodeCount:   len(episodes),
		Durations:      DurationMetrics(episodes),
		Compliance:     PreventativeCompliance(medications, schedules, doses, fromDay, toDay, location),
		MedicationUse:  MedicationUsageStats(doses, fromDay, toDay, location),
		Overlays:       overlays,
		EffectiveDaily: effective,
	}, nil
}

func (service *CalendarService) AddOverlay(ctx context.Context, draft models.OverlayDraft) (models.CalendarOverlay, error) {
	return service.overlays.Create(ctx, draft)
}

func (service *CalendarService) GetOverlay(ctx context.Context, overlayID string) (models.CalendarOverlay, error) {
	overlay, found, err := service.overlays.FindByID(ctx, overlayID)
	if err != nil {
		return models.CalendarOverlay{}, err
	}
	if !found {
		return models.CalendarOverlay{}, ErrOverlayNotFound
	}
	return overlay, nil
}

func (service *CalendarService) UpdateOverlay(ctx context.Context, overlayID string, update models.OverlayUpdate) error {
	if _, err := service.GetOverlay(ctx, overlayID); err != nil {
		return err
	}
	return service.overlays.Update(ctx, overlayID, update)
}

func (service *CalendarService) ListOverlays(ctx context.Context) ([]models.CalendarOverlay, error) {
	return service.overlays.List(ctx)
}

func (service *CalendarService) DeleteOverlay(ctx context.Context, overlayID string) error {
	if _, err := service.GetOverlay(ctx, overlayID); err != nil {
		return err
	}
	return service.overlays.Delete(ctx, overlayID)
}
