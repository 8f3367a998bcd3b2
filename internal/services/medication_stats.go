package services

import (
	"math"
	"sort"
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

// PreventativeCompliance returns the rounded percentage of expected
// preventative intakes actually taken over [rangeStart, rangeEnd].
// Expected is enabled preventative schedule slots times inclusive days in
// range; actual is non-skipped doses of those medications inside the
// range. The result is clamped to [0, 100] and is 0 when nothing was
// expected, rather than dividing by zero.
func PreventativeCompliance(medications []models.Medication, schedules []models.MedicationSchedule, doses []models.MedicationDose, rangeStart time.Time, rangeEnd time.Time, location *time.Location) int {
	preventative := make(map[string]struct{})
	for _, medication := range medications {
		if medication.Type == models.MedicationPreventative {
			preventative[medication.ID] = struct{}{}
		}
	}

	scheduleSlots := 0
	for _, schedule := range schedules {
		if !schedule.Enabled {
			continue
		}
		if _, tracked := preventative[schedule.MedicationID]; tracked {
			scheduleSlots++
		}
	}

	expected := scheduleSlots * InclusiveDayCount(rangeStart, rangeEnd, location)
	if expected == 0 {
		return 0
	}

	rangeStartDay := DateAtLocation(rangeStart, location)
	rangeEndExclusive := DateAtLocation(rangeEnd, location).AddDate(0, 0, 1)
	actual := 0
	for _, dose := range doses {
		if dose.Status == models.DoseSkipped {
			continue
		}
		if _, tracked := preventative[dose.MedicationID]; !tracked {
			continue
		}
		if dose.Timestamp.Before(rangeStartDay) || !dose.Timestamp.Before(rangeEndExclusive) {
			continue
		}
		actual++
	}

	percent := int(math.Round(float64(actual) / float64(expected) * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// MedicationUsage reports dose activity for one medication within a range.
type MedicationUsage struct {
	MedicationID string `json:"medication_id"`
	TotalDoses   int    `json:"total_doses"`
	DistinctDays int    `json:"distinct_days"`
}

// MedicationUsageStats groups non-skipped doses inside [rangeStart,
// rangeEnd] by medication, counting total doses and distinct local
// calendar days with at least one dose. Day bucketing matches episode-day
// counting: local calendar days, not rolling 24h windows.
func MedicationUsageStats(doses []models.MedicationDose, rangeStart time.Time, rangeEnd time.Time, location *time.Location) []MedicationUsage {
	rangeStartDay := DateAtLocation(rangeStart, location)
	rangeEndExclusive := DateAtLocation(rangeEnd, location).AddDate(0, 0, 1)

	totals := make(map[string]int)
	daysByMedication := make(map[string]map[string]struct{})
	for _, dose := range doses {
		if dose.Status == models.DoseSkipped {
			continue
		}
		if dose.Timestamp.Before(rangeStartDay) || !dose.Timestamp.Before(rangeEndExclusive) {
			continue
		}
		totals[dose.MedicationID]++
		days, exists := daysByMedication[dose.MedicationID]
		if !exists {
			days = make(map[string]struct{})
			daysByMedication[dose.MedicationID] = days
		}
		days[DayKey(dose.Timestamp, location)] = struct{}{}
	}

	usages := make([]MedicationUsage, 0, len(totals))
	for medicationID, total := range totals {
		usages = append(usages, MedicationUsage{
			MedicationID: medicationID,
			TotalDoses:   total,
			DistinctDays: len(daysByMedication[medicationID]),
		})
	}
	sort.Slice(usages, func(i, j int) bool {
		return usages[i].MedicationID < usages[j].MedicationID
	})
	return usages
}
