package services

import (
	"testing"
	"time"
)

func TestDateAtLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on Nov 1 is already Nov 2 in Berlin.
	value := time.Date(2025, 11, 1, 23, 30, 0, 0, time.UTC)
	got := DateAtLocation(value, berlin)
	want := time.Date(2025, 11, 2, 0, 0, 0, 0, berlin)
	if !got.Equal(want) {
		t.Fatalf("DateAtLocation = %v, want %v", got, want)
	}

	if got := DateAtLocation(value, nil); !got.Equal(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("nil location should mean UTC, got %v", got)
	}
}

func TestInclusiveDayCount(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"single day",
			time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 11, 1, 21, 0, 0, 0, time.UTC),
			1,
		},
		{
			"thirty days",
			time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			30,
		},
		{
			"reversed",
			time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InclusiveDayCount(tc.start, tc.end, time.UTC); got != tc.want {
				t.Fatalf("InclusiveDayCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestInclusiveDayCountAcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// The last weekend of October 2025 repeats an hour in Berlin; day
	// counting must not drift.
	start := time.Date(2025, 10, 24, 12, 0, 0, 0, berlin)
	end := time.Date(2025, 10, 28, 12, 0, 0, 0, berlin)
	if got := InclusiveDayCount(start, end, berlin); got != 5 {
		t.Fatalf("InclusiveDayCount across DST = %d, want 5", got)
	}
}

func TestDayRange(t *testing.T) {
	value := time.Date(2025, 11, 5, 15, 42, 0, 0, time.UTC)
	start, end := DayRange(value, time.UTC)
	if !start.Equal(time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day start = %v", start)
	}
	if !end.Equal(time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day end = %v", end)
	}
}

func TestDayKeyAndParseDayRoundTrip(t *testing.T) {
	value := time.Date(2025, 11, 5, 23, 59, 0, 0, time.UTC)
	key := DayKey(value, time.UTC)
	if key != "2025-11-05" {
		t.Fatalf("DayKey = %q", key)
	}
	parsed, err := ParseDay(key, time.UTC)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !parsed.Equal(time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDay = %v", parsed)
	}
}
