package services

import (
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

// DateAtLocation truncates value to local midnight in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the [start, end) bounds of the local day containing value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats value's local calendar day as YYYY-MM-DD.
func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(models.DayLayout)
}

// InclusiveDayCount counts the calendar days in [rangeStart, rangeEnd],
// both endpoints included. A reversed range counts zero days.
func InclusiveDayCount(rangeStart time.Time, rangeEnd time.Time, location *time.Location) int {
	start := DateAtLocation(rangeStart, location)
	end := DateAtLocation(rangeEnd, location)
	if end.Before(start) {
		return 0
	}
	// AddDate day-stepping stays correct across DST transitions where a
	// fixed 24h divisor would drift.
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		count++
	}
	return count
}

// ParseDay parses a YYYY-MM-DD key into midnight at location.
func ParseDay(key string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(models.DayLayout, key, location)
}
