package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ashmidera/migralog/internal/db"
	"github.com/ashmidera/migralog/internal/models"
	"github.com/ashmidera/migralog/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	retry := db.NewRetryExecutor(db.RetryConfig{
		MaxRetries:        1,
		InitialDelay:      time.Millisecond,
		MaxDelay:          2 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}, nil, nil)
	repos := db.NewRepositories(database, retry)

	handler := NewHandler(
		services.NewEpisodeService(repos.Episodes, repos.IntensityReadings, repos.SymptomLogs, repos.PainLocationLogs, repos.EpisodeNotes),
		services.NewStatusService(repos.DailyStatuses),
		services.NewMedicationService(repos.Medications, repos.Schedules, repos.Doses),
		services.NewCalendarService(repos.Episodes, repos.DailyStatuses, repos.Overlays, repos.Medications, repos.Schedules, repos.Doses),
		time.UTC,
		nil,
	)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, payload
}

func TestEpisodeLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/episodes", map[string]any{
		"start_time": "2025-11-01T22:00:00Z",
		"locations":  []string{"left temple"},
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %s", response.StatusCode, payload)
	}
	var created models.Episode
	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode created episode: %v", err)
	}
	if created.ID == "" || created.EndTime != nil {
		t.Fatalf("unexpected created episode: %s", payload)
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/episodes/"+created.ID, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("get returned %d: %s", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/episodes/%s/close", created.ID), map[string]any{
		"end_time": "2025-11-02T02:00:00Z",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("close returned %d: %s", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/episodes/"+created.ID, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("get after close returned %d", response.StatusCode)
	}
	var closed models.Episode
	if err := json.Unmarshal(payload, &closed); err != nil {
		t.Fatalf("decode closed episode: %v", err)
	}
	if closed.EndTime == nil {
		t.Fatalf("episode not closed: %s", payload)
	}
}

func TestCreateEpisodeValidationIs400(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/episodes", map[string]any{
		"start_time":     "2025-11-01T22:00:00Z",
		"peak_intensity": 15,
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid intensity returned %d: %s", response.StatusCode, payload)
	}
	var decoded struct {
		Fields []models.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode validation payload: %v", err)
	}
	if len(decoded.Fields) == 0 || decoded.Fields[0].Field != "peak_intensity" {
		t.Fatalf("validation payload missing field detail: %s", payload)
	}
}

func TestMissingEpisodeIs404(t *testing.T) {
	app := newTestApp(t)
	response, _ := doJSON(t, app, http.MethodGet, "/api/episodes/nope", nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("missing episode returned %d, want 404", response.StatusCode)
	}
}

func TestDailyStatusUpsertOverHTTP(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/daily-statuses", map[string]any{
		"date":   "2025-11-04",
		"status": "green",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("first upsert returned %d: %s", response.StatusCode, payload)
	}
	var first models.DailyStatusLog
	if err := json.Unmarshal(payload, &first); err != nil {
		t.Fatalf("decode status: %v", err)
	}

	response, payload = doJSON(t, app, http.MethodPost, "/api/daily-statuses", map[string]any{
		"date":   "2025-11-04",
		"status": "red",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("second upsert returned %d: %s", response.StatusCode, payload)
	}
	var second models.DailyStatusLog
	if err := json.Unmarshal(payload, &second); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if second.ID != first.ID || second.Status != models.StatusRed {
		t.Fatalf("upsert did not update in place: %s", payload)
	}
}

func TestCalendarSummaryOverHTTP(t *testing.T) {
	app := newTestApp(t)

	if response, payload := doJSON(t, app, http.MethodPost, "/api/episodes", map[string]any{
		"start_time": "2025-11-01T22:00:00Z",
		"end_time":   "2025-11-02T02:00:00Z",
	}); response.StatusCode != http.StatusCreated {
		t.Fatalf("seed episode returned %d: %s", response.StatusCode, payload)
	}
	if response, payload := doJSON(t, app, http.MethodPost, "/api/daily-statuses", map[string]any{
		"date":   "2025-11-03",
		"status": "green",
	}); response.StatusCode != http.StatusOK {
		t.Fatalf("seed status returned %d: %s", response.StatusCode, payload)
	}

	response, payload := doJSON(t, app, http.MethodGet, "/api/calendar/summary?from=2025-11-01&to=2025-11-10", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("summary returned %d: %s", response.StatusCode, payload)
	}
	var summary services.CalendarSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.EpisodeDays != 2 {
		t.Fatalf("episode days = %d, want 2 (midnight span)", summary.EpisodeDays)
	}
	if summary.DayTotals.Clear != 1 || summary.DayTotals.Unclear != 2 {
		t.Fatalf("day totals = %+v", summary.DayTotals)
	}

	response, _ = doJSON(t, app, http.MethodGet, "/api/calendar/summary?from=bad&to=2025-11-10", nil)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed range returned %d, want 400", response.StatusCode)
	}
}
