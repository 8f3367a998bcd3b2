package services

import (
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

// episodeDaySet enumerates the distinct local calendar days inside
// [rangeStart, rangeEnd] that any episode's effective interval touches.
// An open episode runs until now; an episode spanning midnights counts
// its start day, end day and everything between; overlapping episodes
// collapse into the same day keys.
func episodeDaySet(episodes []models.Episode, rangeStart time.Time, rangeEnd time.Time, now time.Time, location *time.Location) map[string]struct{} {
	rangeStartDay := DateAtLocation(rangeStart, location)
	rangeEndDay := DateAtLocation(rangeEnd, location)
	days := make(map[string]struct{})
	if rangeEndDay.Before(rangeStartDay) {
		return days
	}

	for _, episode := range episodes {
		effectiveEnd := now
		if episode.EndTime != nil {
			effectiveEnd = *episode.EndTime
		}
		if effectiveEnd.Before(episode.StartTime) {
			// Open episode stamped ahead of now; its start day still counts.
			effectiveEnd = episode.StartTime
		}

		firstDay := DateAtLocation(episode.StartTime, location)
		lastDay := DateAtLocation(effectiveEnd, location)
		if firstDay.Before(rangeStartDay) {
			firstDay = rangeStartDay
		}
		if lastDay.After(rangeEndDay) {
			lastDay = rangeEndDay
		}
		for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
			days[day.Format(models.DayLayout)] = struct{}{}
		}
	}
	return days
}

// EpisodeDayCount returns how many distinct local calendar days in
// [rangeStart, rangeEnd] saw at least one episode.
func EpisodeDayCount(episodes []models.Episode, rangeStart time.Time, rangeEnd time.Time, now time.Time, location *time.Location) int {
	return len(episodeDaySet(episodes, rangeStart, rangeEnd, now, location))
}

// DurationStats summarizes closed-episode lengths. All fields are nil when
// no episode has both start and end set.
type DurationStats struct {
	Shortest *time.Duration `json:"shortest"`
	Longest  *time.Duration `json:"longest"`
	Average  *time.Duration `json:"average"`
}

// DurationMetrics computes shortest, longest and average duration over
// episodes that have both endpoints; the average rounds to the nearest
// millisecond.
func DurationMetrics(episodes []models.Episode) DurationStats {
	durations := make([]time.Duration, 0, len(episodes))
	for _, episode := range episodes {
		if episode.EndTime == nil || episode.StartTime.IsZero() {
			continue
		}
		durations = append(durations, episode.EndTime.Sub(episode.StartTime))
	}
	if len(durations) == 0 {
		return DurationStats{}
	}

	shortest := durations[0]
	longest := durations[0]
	var total time.Duration
	for _, duration := range durations {
		if duration < shortest {
			shortest = duration
		}
		if duration > longest {
			longest = duration
		}
		total += duration
	}
	average := (total / time.Duration(len(durations))).Round(time.Millisecond)
	return DurationStats{Shortest: &shortest, Longest: &longest, Average: &average}
}
