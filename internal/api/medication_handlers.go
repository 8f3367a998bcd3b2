package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	var input medicationDraftInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	medication, err := handler.medications.AddMedication(c.Context(), input.draft())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (handler *Handler) GetMedication(c *fiber.Ctx) error {
	medication, err := handler.medications.GetMedication(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(medication)
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	var input medicationUpdateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := handler.medications.UpdateMedication(c.Context(), c.Params("id"), input.update()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	medications, err := handler.medications.ListMedications(c.Context(), activeOnly)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(medications)
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	if err := handler.medications.DeleteMedication(c.Context(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) CreateSchedule(c *fiber.Ctx) error {
	var input scheduleDraftInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	schedule, err := handler.medications.AddSchedule(c.Context(), input.draft(c.Params("id")))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (handler *Handler) UpdateSchedule(c *fiber.Ctx) error {
	var input scheduleUpdateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := handler.medications.UpdateSchedule(c.Context(), c.Params("scheduleId"), input.update()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListSchedules(c *fiber.Ctx) error {
	schedules, err := handler.medications.ListSchedules(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(schedules)
}

func (handler *Handler) DeleteSchedule(c *fiber.Ctx) error {
	if err := handler.medications.DeleteSchedule(c.Context(), c.Params("scheduleId")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) CreateDose(c *fiber.Ctx) error {
	var input doseDraftInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now()
	}
	dose, err := handler.medications.RecordDose(c.Context(), input.draft(c.Params("id")))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dose)
}

func (handler *Handler) UpdateDose(c *fiber.Ctx) error {
	var input doseUpdateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := handler.medications.UpdateDose(c.Context(), c.Params("doseId"), input.update()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListDoses(c *fiber.Ctx) error {
	doses, err := handler.medications.ListDoses(c.Context(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(doses)
}

func (handler *Handler) DeleteDose(c *fiber.Ctx) error {
	if err := handler.medications.DeleteDose(c.Context(), c.Params("doseId")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
