package api

import (
	"github.com/gofiber/fiber/v2"
)

// UpsertDailyStatus records or replaces the self-assessment for a date.
func (handler *Handler) UpsertDailyStatus(c *fiber.Ctx) error {
	var input dailyStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	entry, err := handler.statuses.RecordStatus(c.Context(), input.draft())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) GetDailyStatus(c *fiber.Ctx) error {
	entry, err := handler.statuses.StatusForDate(c.Context(), c.Params("date"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListDailyStatuses(c *fiber.Ctx) error {
	fromDate := c.Query("from")
	toDate := c.Query("to")
	if fromDate != "" && toDate != "" {
		entries, err := handler.statuses.StatusesForRange(c.Context(), fromDate, toDate)
		if err != nil {
			return handler.serviceError(c, err)
		}
		return c.JSON(entries)
	}
	limit, offset := queryLimitOffset(c)
	entries, err := handler.statuses.ListStatuses(c.Context(), limit, offset)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) DeleteDailyStatus(c *fiber.Ctx) error {
	entry, err := handler.statuses.StatusForDate(c.Context(), c.Params("date"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	if err := handler.statuses.DeleteStatus(c.Context(), entry.ID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteAllDailyStatuses(c *fiber.Ctx) error {
	if err := handler.statuses.DeleteAllStatuses(c.Context()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
