package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateEpisode(c *fiber.Ctx) error {
	var input episodeDraftInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	episode, err := handler.episodes.StartEpisode(c.Context(), input.draft())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(episode)
}

func (handler *Handler) GetEpisode(c *fiber.Ctx) error {
	episode, err := handler.episodes.GetEpisode(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(episode)
}

func (handler *Handler) UpdateEpisode(c *fiber.Ctx) error {
	var input episodeUpdateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := handler.episodes.UpdateEpisode(c.Context(), c.Params("id"), input.update()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CloseEpisode(c *fiber.Ctx) error {
	var input closeEpisodeInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	endTime := input.EndTime
	if endTime.IsZero() {
		endTime = time.Now()
	}
	if err := handler.episodes.CloseEpisode(c.Context(), c.Params("id"), endTime); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListEpisodes(c *fiber.Ctx) error {
	limit, offset := queryLimitOffset(c)
	episodes, err := handler.episodes.ListEpisodes(c.Context(), limit, offset)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(episodes)
}

// CurrentEpisode resolves the episode containing a timestamp, defaulting
// to now; 404 means no episode covers the moment.
func (handler *Handler) CurrentEpisode(c *fiber.Ctx) error {
	at, ok := queryTime(c, "at")
	if !ok {
		at = time.Now()
	}
	episode, found, err := handler.episodes.EpisodeAt(c.Context(), at)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no episode at the requested time")
	}
	return c.JSON(episode)
}

func (handler *Handler) DeleteEpisode(c *fiber.Ctx) error {
	if err := handler.episodes.DeleteEpisode(c.Context(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteAllEpisodes(c *fiber.Ctx) error {
	if err := handler.episodes.DeleteAllEpisodes(c.Context()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) CreateReading(c *fiber.Ctx) error {
	var input readingInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	reading, err := handler.episodes.RecordReading(c.Context(), readingDraft(c.Params("id"), timestamp, input.Intensity))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reading)
}

func (handler *Handler) ListReadings(c *fiber.Ctx) error {
	readings, err := handler.episodes.ListReadings(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(readings)
}

func (handler *Handler) CreateSymptomLog(c *fiber.Ctx) error {
	var input symptomLogInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	symptomLog, err := handler.episodes.RecordSymptom(c.Context(), symptomDraft(c.Params("id"), input))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(symptomLog)
}

func (handler *Handler) ResolveSymptomLog(c *fiber.Ctx) error {
	var input resolveSymptomInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	resolution := input.ResolutionTime
	if resolution.IsZero() {
		resolution = time.Now()
	}
	if err := handler.episodes.ResolveSymptom(c.Context(), c.Params("id"), c.Params("symptomId"), resolution); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListSymptomLogs(c *fiber.Ctx) error {
	symptomLogs, err := handler.episodes.ListSymptoms(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(symptomLogs)
}

func (handler *Handler) CreatePainLocationLog(c *fiber.Ctx) error {
	var input painLocationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	locationLog, err := handler.episodes.RecordPainLocations(c.Context(), painLocationDraft(c.Params("id"), timestamp, input.PainLocations))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(locationLog)
}

func (handler *Handler) ListPainLocationLogs(c *fiber.Ctx) error {
	locationLogs, err := handler.episodes.ListPainLocations(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(locationLogs)
}

func (handler *Handler) CreateNote(c *fiber.Ctx) error {
	var input noteInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	note, err := handler.episodes.RecordNote(c.Context(), noteDraft(c.Params("id"), timestamp, input.Note))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (handler *Handler) ListNotes(c *fiber.Ctx) error {
	notes, err := handler.episodes.ListNotes(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(notes)
}
