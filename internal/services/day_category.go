package services

import (
	"sort"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

// DayCategoryTotals buckets every day of a range into exactly one of three
// categories; Clear+Unclear+Untracked always equals the inclusive day count.
type DayCategoryTotals struct {
	Clear     int `json:"clear"`
	Unclear   int `json:"unclear"`
	Untracked int `json:"untracked"`
}

// CategorizeDays walks every calendar day of [rangeStart, rangeEnd] once
// and buckets it by the recorded status: green is clear, yellow and red
// are unclear, absence is untracked. Duplicate logs for one date resolve
// last-write-wins. Pure; callers wanting episode precedence compose the
// input with OverrideStatusesWithEpisodes first.
func CategorizeDays(statusLogs []models.DailyStatusLog, rangeStart time.Time, rangeEnd time.Time, location *time.Location) DayCategoryTotals {
	start := DateAtLocation(rangeStart, location)
	end := DateAtLocation(rangeEnd, location)
	if end.Before(start) {
		return DayCategoryTotals{}
	}

	statusByDate := make(map[string]string, len(statusLogs))
	for _, entry := range statusLogs {
		statusByDate[entry.Date] = entry.Status
	}

	totals := DayCategoryTotals{}
	totalDays := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		totalDays++
		switch statusByDate[day.Format(models.DayLayout)] {
		case models.StatusGreen:
			totals.Clear++
		case models.StatusYellow, models.StatusRed:
			totals.Unclear++
		}
	}
	totals.Untracked = totalDays - totals.Clear - totals.Unclear
	return totals
}

// OverrideStatusesWithEpisodes applies the blending precedence rule: any
// day inside the range that an episode touches counts as red regardless of
// the manual status recorded for it. The result is a status-log slice
// ready for CategorizeDays; manual entries on episode days are replaced,
// all others pass through unchanged.
func OverrideStatusesWithEpisodes(statusLogs []models.DailyStatusLog, episodes []models.Episode, rangeStart time.Time, rangeEnd time.Time, now time.Time, location *time.Location) []models.DailyStatusLog {
	episodeDays := episodeDaySet(episodes, rangeStart, rangeEnd, now, location)

	merged := make([]models.DailyStatusLog, 0, len(statusLogs)+len(episodeDays))
	for _, entry := range statusLogs {
		if _, overridden := episodeDays[entry.Date]; overridden {
			continue
		}
		merged = append(merged, entry)
	}
	for day := range episodeDays {
		merged = append(merged, models.DailyStatusLog{Date: day, Status: models.StatusRed})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}
