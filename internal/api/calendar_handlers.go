package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ashmidera/migralog/internal/services"
)

// CalendarSummary serves the combined per-range report. from and to are
// required YYYY-MM-DD query parameters.
func (handler *Handler) CalendarSummary(c *fiber.Ctx) error {
	from, okFrom := queryDay(c, "from", handler.location)
	to, okTo := queryDay(c, "to", handler.location)
	if !okFrom || !okTo {
		return apiError(c, fiber.StatusBadRequest, "from and to must be formatted YYYY-MM-DD")
	}
	summary, err := handler.calendar.BuildSummary(c.Context(), from, to, time.Now(), handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(summary)
}

// EpisodeStats serves duration and burden metrics for a range.
func (handler *Handler) EpisodeStats(c *fiber.Ctx) error {
	summary, ok, err := handler.rangeSummary(c)
	if err != nil || !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"from":          summary.From,
		"to":            summary.To,
		"episode_count": summary.EpisodeCount,
		"episode_days":  summary.EpisodeDays,
		"durations":     summary.Durations,
		"day_totals":    summary.DayTotals,
	})
}

// MedicationStats serves compliance and usage metrics for a range.
func (handler *Handler) MedicationStats(c *fiber.Ctx) error {
	summary, ok, err := handler.rangeSummary(c)
	if err != nil || !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"from":               summary.From,
		"to":                 summary.To,
		"compliance_percent": summary.Compliance,
		"medication_usage":   summary.MedicationUse,
	})
}

func (handler *Handler) rangeSummary(c *fiber.Ctx) (summary services.CalendarSummary, ok bool, err error) {
	from, okFrom := queryDay(c, "from", handler.location)
	to, okTo := queryDay(c, "to", handler.location)
	if !okFrom || !okTo {
		return summary, false, apiError(c, fiber.StatusBadRequest, "from and to must be formatted YYYY-MM-DD")
	}
	built, buildErr := handler.calendar.BuildSummary(c.Context(), from, to, time.Now(), handler.location)
	if buildErr != nil {
		return summary, false, handler.serviceError(c, buildErr)
	}
	return built, true, nil
}

func (handler *Handler) CreateOverlay(c *fiber.Ctx) error {
	var input overlayDraftInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	overlay, err := handler.calendar.AddOverlay(c.Context(), input.draft())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(overlay)
}

func (handler *Handler) GetOverlay(c *fiber.Ctx) error {
	overlay, err := handler.calendar.GetOverlay(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(overlay)
}

func (handler *Handler) UpdateOverlay(c *fiber.Ctx) error {
	var input overlayUpdateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := handler.calendar.UpdateOverlay(c.Context(), c.Params("id"), input.update()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListOverlays(c *fiber.Ctx) error {
	overlays, err := handler.calendar.ListOverlays(c.Context())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(overlays)
}

func (handler *Handler) DeleteOverlay(c *fiber.Ctx) error {
	if err := handler.calendar.DeleteOverlay(c.Context(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
