package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

func openTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "migralog_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	retry := NewRetryExecutor(RetryConfig{
		MaxRetries:        1,
		InitialDelay:      time.Millisecond,
		MaxDelay:          2 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}, nil, nil)
	return NewRepositories(database, retry)
}

func intPtr(value int) *int       { return &value }
func strPtr(value string) *string { return &value }

func TestEpisodeRoundTrip(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	notes := "stress day"
	created, err := repos.Episodes.Create(ctx, models.EpisodeDraft{
		StartTime:     time.Date(2025, 11, 1, 22, 0, 0, 0, time.UTC),
		Locations:     []string{"left temple"},
		Qualities:     []string{"throbbing"},
		Notes:         &notes,
		PeakIntensity: intPtr(7),
	})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created episode has no id")
	}
	if !created.Open() {
		t.Fatal("new episode should be open")
	}

	loaded, found, err := repos.Episodes.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find episode: %v", err)
	}
	if !found {
		t.Fatal("created episode not found")
	}
	if !loaded.StartTime.Equal(created.StartTime) {
		t.Fatalf("start time changed across round trip: %v vs %v", loaded.StartTime, created.StartTime)
	}
	if !reflect.DeepEqual(loaded.Locations, created.Locations) {
		t.Fatalf("locations changed across round trip: %v vs %v", loaded.Locations, created.Locations)
	}
	if !reflect.DeepEqual(loaded.Qualities, created.Qualities) {
		t.Fatalf("qualities changed across round trip: %v vs %v", loaded.Qualities, created.Qualities)
	}
	if loaded.Symptoms == nil || len(loaded.Symptoms) != 0 {
		t.Fatalf("omitted list should read back empty, got %#v", loaded.Symptoms)
	}
	if loaded.Notes == nil || *loaded.Notes != notes {
		t.Fatalf("notes changed across round trip: %v", loaded.Notes)
	}
	if loaded.PeakIntensity == nil || *loaded.PeakIntensity != 7 {
		t.Fatalf("peak intensity changed across round trip: %v", loaded.PeakIntensity)
	}
	if loaded.EndTime != nil {
		t.Fatalf("open episode read back with end time %v", loaded.EndTime)
	}
}

func TestEpisodeCreateValidationNeverTouchesStorage(t *testing.T) {
	// A repository over a nil handle panics on any storage access, so a
	// clean validation error proves the gate runs first.
	repo := NewEpisodeRepository(nil, NewRetryExecutor(RetryConfig{}, nil, nil))
	_, err := repo.Create(context.Background(), models.EpisodeDraft{
		StartTime:     time.Now(),
		PeakIntensity: intPtr(11),
	})
	if !models.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEpisodeUpdateAndClose(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	start := time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC)
	created, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: start})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}

	end := start.Add(5 * time.Hour)
	triggers := []string{"red wine"}
	err = repos.Episodes.Update(ctx, created.ID, models.EpisodeUpdate{
		EndTime:  &end,
		Triggers: &triggers,
	})
	if err != nil {
		t.Fatalf("update episode: %v", err)
	}

	loaded, _, err := repos.Episodes.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload episode: %v", err)
	}
	if loaded.EndTime == nil || !loaded.EndTime.Equal(end) {
		t.Fatalf("end time not persisted: %v", loaded.EndTime)
	}
	if loaded.Open() {
		t.Fatal("episode with end time should be closed")
	}
	if !reflect.DeepEqual([]string(loaded.Triggers), triggers) {
		t.Fatalf("triggers not persisted: %v", loaded.Triggers)
	}
	if !loaded.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not restamped: %v vs %v", loaded.UpdatedAt, created.UpdatedAt)
	}
}

func TestFindByTimestampPrefersLatestStart(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	early := time.Date(2025, 11, 3, 6, 0, 0, 0, time.UTC)
	late := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	if _, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: early}); err != nil {
		t.Fatalf("create first episode: %v", err)
	}
	second, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: late})
	if err != nil {
		t.Fatalf("create second episode: %v", err)
	}

	found, ok, err := repos.Episodes.FindByTimestamp(ctx, late.Add(time.Hour))
	if err != nil {
		t.Fatalf("find by timestamp: %v", err)
	}
	if !ok {
		t.Fatal("expected a covering episode")
	}
	if found.ID != second.ID {
		t.Fatalf("expected latest-starting episode %s, got %s", second.ID, found.ID)
	}

	_, ok, err = repos.Episodes.FindByTimestamp(ctx, early.Add(-time.Minute))
	if err != nil {
		t.Fatalf("find before all episodes: %v", err)
	}
	if ok {
		t.Fatal("timestamp before every episode should not match")
	}
}

func TestFindByTimestampOpenEpisodeEndsAtNow(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	created, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: time.Now().Add(-2 * time.Hour)})
	if err != nil {
		t.Fatalf("create open episode: %v", err)
	}

	found, ok, err := repos.Episodes.FindByTimestamp(ctx, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("find inside open episode: %v", err)
	}
	if !ok || found.ID != created.ID {
		t.Fatalf("open episode should cover a past timestamp after its start, got ok=%v id=%s", ok, found.ID)
	}

	_, ok, err = repos.Episodes.FindByTimestamp(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("find in the future: %v", err)
	}
	if ok {
		t.Fatal("open episode matched a timestamp in the future")
	}
}

func TestEpisodeDeleteCascades(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	episode, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}
	if _, err := repos.IntensityReadings.Create(ctx, models.ReadingDraft{
		EpisodeID: episode.ID,
		Timestamp: time.Now(),
		Intensity: 6,
	}); err != nil {
		t.Fatalf("create reading: %v", err)
	}
	if _, err := repos.EpisodeNotes.Create(ctx, models.NoteDraft{
		EpisodeID: episode.ID,
		Timestamp: time.Now(),
		Note:      "took medication",
	}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := repos.Episodes.Delete(ctx, episode.ID); err != nil {
		t.Fatalf("delete episode: %v", err)
	}

	readings, err := repos.IntensityReadings.ListByEpisode(ctx, episode.ID)
	if err != nil {
		t.Fatalf("list readings: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("readings survived episode deletion: %d", len(readings))
	}
	notes, err := repos.EpisodeNotes.ListByEpisode(ctx, episode.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("notes survived episode deletion: %d", len(notes))
	}
}

func TestDailyStatusUniquePerDate(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	first, err := repos.DailyStatuses.Create(ctx, models.DailyStatusDraft{
		Date:   "2025-11-04",
		Status: models.StatusGreen,
	})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	_, err = repos.DailyStatuses.Create(ctx, models.DailyStatusDraft{
		Date:   "2025-11-04",
		Status: models.StatusRed,
	})
	if err == nil {
		t.Fatal("second status for the same date should violate the unique index")
	}
	if Classify(err) != FaultFatal {
		t.Fatalf("unique violation classified %v, want fatal", Classify(err))
	}

	loaded, found, err := repos.DailyStatuses.FindByDate(ctx, "2025-11-04")
	if err != nil || !found {
		t.Fatalf("find status: %v found=%v", err, found)
	}
	if loaded.ID != first.ID || loaded.Status != models.StatusGreen {
		t.Fatalf("original row disturbed: %+v", loaded)
	}
}

func TestDailyStatusUpdateClearsStatusType(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	created, err := repos.DailyStatuses.Create(ctx, models.DailyStatusDraft{
		Date:       "2025-11-05",
		Status:     models.StatusYellow,
		StatusType: strPtr("aura"),
	})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	green := models.StatusGreen
	if err := repos.DailyStatuses.Update(ctx, created.ID, models.DailyStatusUpdate{Status: &green}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	loaded, _, err := repos.DailyStatuses.FindByDate(ctx, "2025-11-05")
	if err != nil {
		t.Fatalf("reload status: %v", err)
	}
	if loaded.Status != models.StatusGreen {
		t.Fatalf("status not updated: %q", loaded.Status)
	}
	if loaded.StatusType != nil {
		t.Fatalf("status_type should clear when leaving yellow, got %q", *loaded.StatusType)
	}
}

func TestDailyStatusRejectsFutureDate(t *testing.T) {
	repo := NewDailyStatusRepository(nil, NewRetryExecutor(RetryConfig{}, nil, nil))
	future := time.Now().AddDate(0, 0, 2).Format(models.DayLayout)
	_, err := repo.Create(context.Background(), models.DailyStatusDraft{
		Date:   future,
		Status: models.StatusGreen,
	})
	if !models.IsValidationError(err) {
		t.Fatalf("expected validation error for future date, got %v", err)
	}
}

func TestOverlayListOverlapping(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	vacation, err := repos.Overlays.Create(ctx, models.OverlayDraft{
		StartDate: "2025-11-10",
		EndDate:   "2025-11-20",
		Label:     "vacation",
	})
	if err != nil {
		t.Fatalf("create overlay: %v", err)
	}
	if _, err := repos.Overlays.Create(ctx, models.OverlayDraft{
		StartDate: "2025-12-01",
		EndDate:   "2025-12-05",
		Label:     "trial",
	}); err != nil {
		t.Fatalf("create second overlay: %v", err)
	}

	overlapping, err := repos.Overlays.ListOverlapping(ctx, "2025-11-15", "2025-11-25")
	if err != nil {
		t.Fatalf("list overlapping: %v", err)
	}
	if len(overlapping) != 1 || overlapping[0].ID != vacation.ID {
		t.Fatalf("expected only the vacation overlay, got %+v", overlapping)
	}
}

func TestMedicationDeleteCascades(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	medication, err := repos.Medications.Create(ctx, models.MedicationDraft{
		Name:         "propranolol",
		Type:         models.MedicationPreventative,
		DosageAmount: 40,
		DosageUnit:   "mg",
		Active:       true,
	})
	if err != nil {
		t.Fatalf("create medication: %v", err)
	}
	if _, err := repos.Schedules.Create(ctx, models.ScheduleDraft{
		MedicationID: medication.ID,
		Time:         "08:00",
		Dosage:       1,
		Enabled:      true,
	}); err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if _, err := repos.Doses.Create(ctx, models.DoseDraft{
		MedicationID: medication.ID,
		Timestamp:    time.Now(),
		Quantity:     1,
		Status:       models.DoseTaken,
	}); err != nil {
		t.Fatalf("create dose: %v", err)
	}

	if err := repos.Medications.Delete(ctx, medication.ID); err != nil {
		t.Fatalf("delete medication: %v", err)
	}
	schedules, err := repos.Schedules.ListByMedication(ctx, medication.ID)
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	if len(schedules) != 0 {
		t.Fatalf("schedules survived medication deletion: %d", len(schedules))
	}
	doses, err := repos.Doses.ListByMedication(ctx, medication.ID)
	if err != nil {
		t.Fatalf("list doses: %v", err)
	}
	if len(doses) != 0 {
		t.Fatalf("doses survived medication deletion: %d", len(doses))
	}
}

func TestEpisodeDeleteAllClearsDependents(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()

	episode, err := repos.Episodes.Create(ctx, models.EpisodeDraft{StartTime: time.Now().Add(-2 * time.Hour)})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}
	if _, err := repos.SymptomLogs.Create(ctx, models.SymptomLogDraft{
		EpisodeID: episode.ID,
		Symptom:   "nausea",
		OnsetTime: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("create symptom log: %v", err)
	}

	if err := repos.Episodes.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	episodes, err := repos.Episodes.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list episodes: %v", err)
	}
	if len(episodes) != 0 {
		t.Fatalf("episodes survived delete all: %d", len(episodes))
	}
	symptomLogs, err := repos.SymptomLogs.ListByEpisode(ctx, episode.ID)
	if err != nil {
		t.Fatalf("list symptom logs: %v", err)
	}
	if len(symptomLogs) != 0 {
		t.Fatalf("symptom logs survived delete all: %d", len(symptomLogs))
	}
}
