package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ashmidera/migralog/internal/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func parseBody(c *fiber.Ctx, target any) error {
	if err := c.BodyParser(target); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed request body")
	}
	return nil
}

// queryTime reads an RFC 3339 timestamp query parameter.
func queryTime(c *fiber.Ctx, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return value, true
}

// queryDay reads a YYYY-MM-DD query parameter as midnight in location.
func queryDay(c *fiber.Ctx, name string, location *time.Location) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	value, err := time.ParseInLocation(models.DayLayout, raw, location)
	if err != nil {
		return time.Time{}, false
	}
	return value, true
}

func queryLimitOffset(c *fiber.Ctx) (int, int) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
