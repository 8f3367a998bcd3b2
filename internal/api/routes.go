package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	episodes := api.Group("/episodes")
	episodes.Get("", handler.ListEpisodes)
	episodes.Post("", handler.CreateEpisode)
	episodes.Delete("", handler.DeleteAllEpisodes)
	episodes.Get("/current", handler.CurrentEpisode)
	episodes.Get("/:id", handler.GetEpisode)
	episodes.Patch("/:id", handler.UpdateEpisode)
	episodes.Post("/:id/close", handler.CloseEpisode)
	episodes.Delete("/:id", handler.DeleteEpisode)

	episodes.Get("/:id/readings", handler.ListReadings)
	episodes.Post("/:id/readings", handler.CreateReading)
	episodes.Get("/:id/symptoms", handler.ListSymptomLogs)
	episodes.Post("/:id/symptoms", handler.CreateSymptomLog)
	episodes.Post("/:id/symptoms/:symptomId/resolve", handler.ResolveSymptomLog)
	episodes.Get("/:id/pain-locations", handler.ListPainLocationLogs)
	episodes.Post("/:id/pain-locations", handler.CreatePainLocationLog)
	episodes.Get("/:id/notes", handler.ListNotes)
	episodes.Post("/:id/notes", handler.CreateNote)

	statuses := api.Group("/daily-statuses")
	statuses.Get("", handler.ListDailyStatuses)
	statuses.Post("", handler.UpsertDailyStatus)
	statuses.Delete("", handler.DeleteAllDailyStatuses)
	statuses.Get("/:date", handler.GetDailyStatus)
	statuses.Delete("/:date", handler.DeleteDailyStatus)

	medications := api.Group("/medications")
	medications.Get("", handler.ListMedications)
	medications.Post("", handler.CreateMedication)
	medications.Get("/:id", handler.GetMedication)
	medications.Patch("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeleteMedication)
	medications.Get("/:id/schedules", handler.ListSchedules)
	medications.Post("/:id/schedules", handler.CreateSchedule)
	medications.Patch("/:id/schedules/:scheduleId", handler.UpdateSchedule)
	medications.Delete("/:id/schedules/:scheduleId", handler.DeleteSchedule)
	medications.Get("/:id/doses", handler.ListDoses)
	medications.Post("/:id/doses", handler.CreateDose)
	medications.Patch("/:id/doses/:doseId", handler.UpdateDose)
	medications.Delete("/:id/doses/:doseId", handler.DeleteDose)

	calendar := api.Group("/calendar")
	calendar.Get("/summary", handler.CalendarSummary)
	calendar.Get("/overlays", handler.ListOverlays)
	calendar.Post("/overlays", handler.CreateOverlay)
	calendar.Get("/overlays/:id", handler.GetOverlay)
	calendar.Patch("/overlays/:id", handler.UpdateOverlay)
	calendar.Delete("/overlays/:id", handler.DeleteOverlay)

	stats := api.Group("/stats")
	stats.Get("/episodes", handler.EpisodeStats)
	stats.Get("/medications", handler.MedicationStats)
}
