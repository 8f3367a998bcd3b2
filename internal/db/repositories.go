package db

import "gorm.io/gorm"

// Repositories bundles every per-entity repository over one shared
// database handle and retry executor. Constructed once at startup and
// passed down by reference; there is no package-level database state.
type Repositories struct {
	Episodes          *EpisodeRepository
	IntensityReadings *IntensityReadingRepository
	SymptomLogs       *SymptomLogRepository
	PainLocationLogs  *PainLocationLogRepository
	EpisodeNotes      *EpisodeNoteRepository
	DailyStatuses     *DailyStatusRepository
	Overlays          *OverlayRepository
	Medications       *MedicationRepository
	Schedules         *MedicationScheduleRepository
	Doses             *MedicationDoseRepository
}

func NewRepositories(database *gorm.DB, retry *RetryExecutor) *Repositories {
	return &Repositories{
		Episodes:          NewEpisodeRepository(database, retry),
		IntensityReadings: NewIntensityReadingRepository(database, retry),
		SymptomLogs:       NewSymptomLogRepository(database, retry),
		PainLocationLogs:  NewPainLocationLogRepository(database, retry),
		EpisodeNotes:      NewEpisodeNoteRepository(database, retry),
		DailyStatuses:     NewDailyStatusRepository(database, retry),
		Overlays:          NewOverlayRepository(database, retry),
		Medications:       NewMedicationRepository(database, retry),
		Schedules:         NewMedicationScheduleRepository(database, retry),
		Doses:             NewMedicationDoseRepository(database, retry),
	}
}
