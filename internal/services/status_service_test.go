package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ashmidera/migralog/internal/models"
)

type stubStatusStore struct {
	byDate  map[string]models.DailyStatusLog
	updates map[string]models.DailyStatusUpdate
	creates int
}

func newStubStatusStore() *stubStatusStore {
	return &stubStatusStore{
		byDate:  make(map[string]models.DailyStatusLog),
		updates: make(map[string]models.DailyStatusUpdate),
	}
}

func (store *stubStatusStore) Create(_ context.Context, draft models.DailyStatusDraft) (models.DailyStatusLog, error) {
	store.creates++
	entry := models.DailyStatusLog{
		ID:         models.NewID(),
		Date:       draft.Date,
		Status:     draft.Status,
		StatusType: draft.StatusType,
		Notes:      draft.Notes,
		Prompted:   draft.Prompted,
	}
	store.byDate[draft.Date] = entry
	return entry, nil
}

func (store *stubStatusStore) Update(_ context.Context, entryID string, update models.DailyStatusUpdate) error {
	store.updates[entryID] = update
	for date, entry := range store.byDate {
		if entry.ID != entryID {
			continue
		}
		if update.Status != nil {
			entry.Status = *update.Status
			if *update.Status != models.StatusYellow {
				entry.StatusType = nil
			}
		}
		if update.StatusType != nil {
			entry.StatusType = update.StatusType
		}
		if update.Notes != nil {
			entry.Notes = update.Notes
		}
		if update.Prompted != nil {
			entry.Prompted = *update.Prompted
		}
		store.byDate[date] = entry
	}
	return nil
}

func (store *stubStatusStore) FindByDate(_ context.Context, date string) (models.DailyStatusLog, bool, error) {
	entry, found := store.byDate[date]
	return entry, found, nil
}

func (store *stubStatusStore) ListByDateRange(_ context.Context, fromDate string, toDate string) ([]models.DailyStatusLog, error) {
	entries := make([]models.DailyStatusLog, 0)
	for date, entry := range store.byDate {
		if date >= fromDate && date <= toDate {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (store *stubStatusStore) List(context.Context, int, int) ([]models.DailyStatusLog, error) {
	entries := make([]models.DailyStatusLog, 0, len(store.byDate))
	for _, entry := range store.byDate {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (store *stubStatusStore) Delete(_ context.Context, entryID string) error {
	for date, entry := range store.byDate {
		if entry.ID == entryID {
			delete(store.byDate, date)
		}
	}
	return nil
}

func (store *stubStatusStore) DeleteAll(context.Context) error {
	store.byDate = make(map[string]models.DailyStatusLog)
	return nil
}

func TestRecordStatusCreatesWhenAbsent(t *testing.T) {
	store := newStubStatusStore()
	service := NewStatusService(store)

	entry, err := service.RecordStatus(context.Background(), models.DailyStatusDraft{
		Date:   "2025-11-04",
		Status: models.StatusGreen,
	})
	if err != nil {
		t.Fatalf("record status: %v", err)
	}
	if store.creates != 1 {
		t.Fatalf("creates = %d, want 1", store.creates)
	}
	if entry.Date != "2025-11-04" || entry.Status != models.StatusGreen {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestRecordStatusUpdatesExistingDate(t *testing.T) {
	store := newStubStatusStore()
	service := NewStatusService(store)

	first, err := service.RecordStatus(context.Background(), models.DailyStatusDraft{
		Date:   "2025-11-04",
		Status: models.StatusGreen,
	})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}

	second, err := service.RecordStatus(context.Background(), models.DailyStatusDraft{
		Date:     "2025-11-04",
		Status:   models.StatusRed,
		Prompted: true,
	})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if store.creates != 1 {
		t.Fatalf("second record created a new row: creates = %d", store.creates)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert changed identity: %s vs %s", second.ID, first.ID)
	}
	if second.Status != models.StatusRed || !second.Prompted {
		t.Fatalf("update not reflected: %+v", second)
	}
}

func TestStatusForDateNotFound(t *testing.T) {
	service := NewStatusService(newStubStatusStore())
	_, err := service.StatusForDate(context.Background(), "2025-11-04")
	if !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
}
