package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ashmidera/migralog/internal/models"
	"github.com/ashmidera/migralog/internal/services"
)

// Handler bundles the services behind the JSON API.
type Handler struct {
	episodes    *services.EpisodeService
	statuses    *services.StatusService
	medications *services.MedicationService
	calendar    *services.CalendarService
	location    *time.Location
	logger      *slog.Logger
}

func NewHandler(episodes *services.EpisodeService, statuses *services.StatusService, medications *services.MedicationService, calendar *services.CalendarService, location *time.Location, logger *slog.Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		episodes:    episodes,
		statuses:    statuses,
		medications: medications,
		calendar:    calendar,
		location:    location,
		logger:      logger,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// serviceError maps domain errors onto HTTP statuses: validation failures
// are 400 with field detail, missing records are 404, everything else 500.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
	}
	if isNotFound(err) {
		return apiError(c, fiber.StatusNotFound, err.Error())
	}
	if errors.Is(err, services.ErrEndBeforeStart) {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	handler.logger.Error("request failed", "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrEpisodeNotFound) ||
		errors.Is(err, services.ErrSymptomLogNotFound) ||
		errors.Is(err, services.ErrStatusNotFound) ||
		errors.Is(err, services.ErrMedicationNotFound) ||
		errors.Is(err, services.ErrOverlayNotFound)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
