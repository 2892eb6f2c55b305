package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/services"
)

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	from, err := parseOptionalDay(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from")
	}
	to, err := parseOptionalDay(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to")
	}

	logs, err := handler.services.DailyLogs.ListLogs(user.ID, from, to)
	if err != nil {
		return respondServiceError(c, err, "failed to load logs")
	}
	return c.JSON(newDailyLogViews(logs))
}

func (handler *Handler) GetLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.services.DailyLogs.GetLogByDate(user.ID, day)
	if err != nil {
		return respondServiceError(c, err, "failed to load log")
	}
	return c.JSON(newDailyLogView(entry))
}

func (handler *Handler) UpsertLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	input := dailyLogInput{}
	if ok, err := parseInput(c, &input); !ok {
		return err
	}

	entry, created, err := handler.services.DailyLogs.UpsertLog(user.ID, day, services.DailyLogInput{
		Mood:           input.Mood,
		Temperature:    input.Temperature,
		Weight:         input.Weight,
		SexualActivity: input.SexualActivity,
		Notes:          input.Notes,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to save log")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(newDailyLogView(entry))
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.services.DailyLogs.DeleteLogByDate(user.ID, day); err != nil {
		return respondServiceError(c, err, "failed to delete log")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
