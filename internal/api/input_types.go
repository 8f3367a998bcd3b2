package api

import (
	"time"

	"github.com/ashmidera/migralog/internal/models"
)

type episodeDraftInput struct {
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	Locations        []string   `json:"locations"`
	Qualities        []string   `json:"qualities"`
	Symptoms         []string   `json:"symptoms"`
	Triggers         []string   `json:"triggers"`
	Notes            *string    `json:"notes"`
	PeakIntensity    *int       `json:"peak_intensity"`
	AverageIntensity *float64   `json:"average_intensity"`
	Location         *string    `json:"location"`
}

func (input episodeDraftInput) draft() models.EpisodeDraft {
	return models.EpisodeDraft{
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Locations:        input.Locations,
		Qualities:        input.Qualities,
		Symptoms:         input.Symptoms,
		Triggers:         input.Triggers,
		Notes:            input.Notes,
		PeakIntensity:    input.PeakIntensity,
		AverageIntensity: input.AverageIntensity,
		Location:         input.Location,
	}
}

type episodeUpdateInput struct {
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	Locations        *[]string  `json:"locations"`
	Qualities        *[]string  `json:"qualities"`
	Symptoms         *[]string  `json:"symptoms"`
	Triggers         *[]string  `json:"triggers"`
	Notes            *string    `json:"notes"`
	PeakIntensity    *int       `json:"peak_intensity"`
	AverageIntensity *float64   `json:"average_intensity"`
	Location         *string    `json:"location"`
}

func (input episodeUpdateInput) update() models.EpisodeUpdate {
	return models.EpisodeUpdate{
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Locations:        input.Locations,
		Qualities:        input.Qualities,
		Symptoms:         input.Symptoms,
		Triggers:         input.Triggers,
		Notes:            input.Notes,
		PeakIntensity:    input.PeakIntensity,
		AverageIntensity: input.AverageIntensity,
		Location:         input.Location,
	}
}

type readingInput struct {
	Timestamp time.Time `json:"timestamp"`
	Intensity int       `json:"intensity"`
}

type symptomLogInput struct {
	Symptom        string     `json:"symptom"`
	OnsetTime      time.Time  `json:"onset_time"`
	ResolutionTime *time.Time `json:"resolution_time"`
	Severity       *int       `json:"severity"`
}

type resolveSymptomInput struct {
	ResolutionTime time.Time `json:"resolution_time"`
}

func readingDraft(episodeID string, timestamp time.Time, intensity int) models.ReadingDraft {
	return models.ReadingDraft{EpisodeID: episodeID, Timestamp: timestamp, Intensity: intensity}
}

func symptomDraft(episodeID string, input symptomLogInput) models.SymptomLogDraft {
	return models.SymptomLogDraft{
		EpisodeID:      episodeID,
		Symptom:        input.Symptom,
		OnsetTime:      input.OnsetTime,
		ResolutionTime: input.ResolutionTime,
		Severity:       input.Severity,
	}
}

func painLocationDraft(episodeID string, timestamp time.Time, locations []string) models.PainLocationDraft {
	return models.PainLocationDraft{EpisodeID: episodeID, Timestamp: timestamp, PainLocations: locations}
}

func noteDraft(episodeID string, timestamp time.Time, note string) models.NoteDraft {
	return models.NoteDraft{EpisodeID: episodeID, Timestamp: timestamp, Note: note}
}

type painLocationInput struct {
	Timestamp     time.Time `json:"timestamp"`
	PainLocations []string  `json:"pain_locations"`
}

type noteInput struct {
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type closeEpisodeInput struct {
	EndTime time.Time `json:"end_time"`
}

type dailyStatusInput struct {
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	StatusType *string `json:"status_type"`
	Notes      *string `json:"notes"`
	Prompted   bool    `json:"prompted"`
}

func (input dailyStatusInput) draft() models.DailyStatusDraft {
	return models.DailyStatusDraft{
		Date:       input.Date,
		Status:     input.Status,
		StatusType: input.StatusType,
		Notes:      input.Notes,
		Prompted:   input.Prompted,
	}
}

type overlayDraftInput struct {
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Label            string  `json:"label"`
	Notes            *string `json:"notes"`
	ExcludeFromStats bool    `json:"exclude_from_stats"`
}

func (input overlayDraftInput) draft() models.OverlayDraft {
	return models.OverlayDraft{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Label:            input.Label,
		Notes:            input.Notes,
		ExcludeFromStats: input.ExcludeFromStats,
	}
}

type overlayUpdateInput struct {
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	Label            *string `json:"label"`
	Notes            *string `json:"notes"`
	ExcludeFromStats *bool   `json:"exclude_from_stats"`
}

func (input overlayUpdateInput) update() models.OverlayUpdate {
	return models.OverlayUpdate{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Label:            input.Label,
		Notes:            input.Notes,
		ExcludeFromStats: input.ExcludeFromStats,
	}
}

type medicationDraftInput struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	DosageAmount      float64 `json:"dosage_amount"`
	DosageUnit        string  `json:"dosage_unit"`
	ScheduleFrequency *string `json:"schedule_frequency"`
	Active            *bool   `json:"active"`
}

func (input medicationDraftInput) draft() models.MedicationDraft {
	// Medications default to active when the caller does not say otherwise.
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	return models.MedicationDraft{
		Name:              input.Name,
		Type:              input.Type,
		DosageAmount:      input.DosageAmount,
		DosageUnit:        input.DosageUnit,
		ScheduleFrequency: input.ScheduleFrequency,
		Active:            active,
	}
}

type medicationUpdateInput struct {
	Name              *string  `json:"name"`
	Type              *string  `json:"type"`
	DosageAmount      *float64 `json:"dosage_amount"`
	DosageUnit        *string  `json:"dosage_unit"`
	ScheduleFrequency *string  `json:"schedule_frequency"`
	Active            *bool    `json:"active"`
}

func (input medicationUpdateInput) update() models.MedicationUpdate {
	return models.MedicationUpdate{
		Name:              input.Name,
		Type:              input.Type,
		DosageAmount:      input.DosageAmount,
		DosageUnit:        input.DosageUnit,
		ScheduleFrequency: input.ScheduleFrequency,
		Active:            input.Active,
	}
}

type scheduleDraftInput struct {
	Time    string  `json:"time"`
	Dosage  float64 `json:"dosage"`
	Enabled *bool   `json:"enabled"`
}

func (input scheduleDraftInput) draft(medicationID string) models.ScheduleDraft {
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	return models.ScheduleDraft{
		MedicationID: medicationID,
		Time:         input.Time,
		Dosage:       input.Dosage,
		Enabled:      enabled,
	}
}

type scheduleUpdateInput struct {
	Time    *string  `json:"time"`
	Dosage  *float64 `json:"dosage"`
	Enabled *bool    `json:"enabled"`
}

func (input scheduleUpdateInput) update() models.ScheduleUpdate {
	return models.ScheduleUpdate{
		Time:    input.Time,
		Dosage:  input.Dosage,
		Enabled: input.Enabled,
	}
}

type doseDraftInput struct {
	Timestamp time.Time `json:"timestamp"`
	Quantity  float64   `json:"quantity"`
	Status    string    `json:"status"`
}

func (input doseDraftInput) draft(medicationID string) models.DoseDraft {
	status := input.Status
	if status == "" {
		status = models.DoseTaken
	}
	return models.DoseDraft{
		MedicationID: medicationID,
		Timestamp:    input.Timestamp,
		Quantity:     input.Quantity,
		Status:       status,
	}
}

type doseUpdateInput struct {
	Timestamp *time.Time `json:"timestamp"`
	Quantity  *float64   `json:"quantity"`
	Status    *string    `json:"status"`
}

func (input doseUpdateInput) update() models.DoseUpdate {
	return models.DoseUpdate{
		Timestamp: input.Timestamp,
		Quantity:  input.Quantity,
		Status:    input.Status,
	}
}
