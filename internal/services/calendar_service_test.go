package services

import (
	"context"
	"testing"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

type stubEpisodeRangeReader struct{ episodes []models.Episode }

func (reader stubEpisodeRangeReader) ListByRange(context.Context, time.Time, time.Time) ([]models.Episode, error) {
	return reader.episodes, nil
}

type stubStatusRangeReader struct{ logs []models.DailyStatusLog }

func (reader stubStatusRangeReader) ListByDateRange(context.Context, string, string) ([]models.DailyStatusLog, error) {
	return reader.logs, nil
}

type stubOverlayStore struct{ overlays []models.CalendarOverlay }

func (store stubOverlayStore) Create(_ context.Context, draft models.OverlayDraft) (models.CalendarOverlay, error) {
	return models.CalendarOverlay{ID: models.NewID(), StartDate: draft.StartDate, EndDate: draft.EndDate, Label: draft.Label}, nil
}

func (store stubOverlayStore) Update(context.Context, string, models.OverlayUpdate) error { return nil }

func (store stubOverlayStore) FindByID(_ context.Context, overlayID string) (models.CalendarOverlay, bool, error) {
	for _, overlay := range store.overlays {
		if overlay.ID == overlayID {
			return overlay, true, nil
		}
	}
	return models.CalendarOverlay{}, false, nil
}

func (store stubOverlayStore) List(context.Context) ([]models.CalendarOverlay, error) {
	return store.overlays, nil
}

func (store stubOverlayStore) ListOverlapping(context.Context, string, string) ([]models.CalendarOverlay, error) {
	return store.overlays, nil
}

func (store stubOverlayStore) Delete(context.Context, string) error { return nil }

type stubMedicationReader struct{ medications []models.Medication }

func (reader stubMedicationReader) List(context.Context, bool) ([]models.Medication, error) {
	return reader.medications, nil
}

type stubScheduleReader struct{ schedules []models.MedicationSchedule }

func (reader stubScheduleReader) ListEnabled(context.Context) ([]models.MedicationSchedule, error) {
	return reader.schedules, nil
}

type stubDoseRangeReader struct{ doses []models.MedicationDose }

func (reader stubDoseRangeReader) ListByRange(context.Context, time.Time, time.Time) ([]models.MedicationDose, error) {
	return reader.doses, nil
}

func TestBuildSummaryComposesEverything(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	episodeEnd := time.Date(2025, 11, 2, 2, 0, 0, 0, time.UTC)
	episodes := []models.Episode{{
		ID:        "ep1",
		StartTime: time.Date(2025, 11, 1, 22, 0, 0, 0, time.UTC),
		EndTime:   &episodeEnd,
	}}
	logs := []models.DailyStatusLog{
		{Date: "2025-11-01", Status: models.StatusGreen}, // overridden by the episode
		{Date: "2025-11-03", Status: models.StatusGreen},
		{Date: "2025-11-04", Status: models.StatusYellow},
	}
	overlays := []models.CalendarOverlay{{ID: "ov1", StartDate: "2025-11-05", EndDate: "2025-11-07", Label: "travel"}}
	medications := []models.Medication{{ID: "prev", Name: "prev", Type: models.MedicationPreventative}}
	schedules := []models.MedicationSchedule{{MedicationID: "prev", Time: "08:00", Enabled: true}}
	doses := make([]models.MedicationDose, 0, 10)
	for i := 0; i < 5; i++ {
		doses = append(doses, models.MedicationDose{
			MedicationID: "prev",
			Timestamp:    from.AddDate(0, 0, i).Add(8 * time.Hour),
			Quantity:     1,
			Status:       models.DoseTaken,
		})
	}

	service := NewCalendarService(
		stubEpisodeRangeReader{episodes},
		stubStatusRangeReader{logs},
		stubOverlayStore{overlays},
		stubMedicationReader{medications},
		stubScheduleReader{schedules},
		stubDoseRangeReader{doses},
	)

	summary, err := service.BuildSummary(context.Background(), from, to, now, time.UTC)
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}

	if summary.From != "2025-11-01" || summary.To != "2025-11-10" {
		t.Fatalf("range keys = %s..%s", summary.From, summary.To)
	}
	// Episode days (1st, 2nd) become unclear regardless of manual green.
	want := DayCategoryTotals{Clear: 1, Unclear: 3, Untracked: 6}
	if summary.DayTotals != want {
		t.Fatalf("day totals = %+v, want %+v", summary.DayTotals, want)
	}
	if summary.EpisodeDays != 2 {
		t.Fatalf("episode days = %d, want 2", summary.EpisodeDays)
	}
	if summary.EpisodeCount != 1 {
		t.Fatalf("episode count = %d, want 1", summary.EpisodeCount)
	}
	if summary.Durations.Average == nil || *summary.Durations.Average != 4*time.Hour {
		t.Fatalf("average duration = %v, want 4h", summary.Durations.Average)
	}
	if summary.Compliance != 50 {
		t.Fatalf("compliance = %d, want 50 (5 of 10 slots)", summary.Compliance)
	}
	if len(summary.MedicationUse) != 1 || summary.MedicationUse[0].TotalDoses != 5 {
		t.Fatalf("medication usage = %+v", summary.MedicationUse)
	}
	if len(summary.Overlays) != 1 || summary.Overlays[0].Label != "travel" {
		t.Fatalf("overlays = %+v", summary.Overlays)
	}
	if len(summary.EffectiveDaily) != 4 {
		t.Fatalf("effective daily entries = %d, want 4", len(summary.EffectiveDaily))
	}
}

func TestBuildSummaryEmptyStores(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	service := NewCalendarService(
		stubEpisodeRangeReader{},
		stubStatusRangeReader{},
		stubOverlayStore{},
		stubMedicationReader{},
		stubScheduleReader{},
		stubDoseRangeReader{},
	)
	summary, err := service.BuildSummary(context.Background(), from, to, to, time.UTC)
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}
	if summary.DayTotals != (DayCategoryTotals{Untracked: 3}) {
		t.Fatalf("day totals = %+v, want 3 untracked", summary.DayTotals)
	}
	if summary.Compliance != 0 || summary.EpisodeDays != 0 {
		t.Fatalf("empty summary not zeroed: %+v", summary)
	}
}
