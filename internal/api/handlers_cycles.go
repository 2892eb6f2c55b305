package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.services.Cycles.ListCycles(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to load cycles")
	}
	return c.JSON(newCycleViews(cycles))
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input := cycleCreateInput{}
	if ok, err := parseInput(c, &input); !ok {
		return err
	}

	start, err := parseDay(input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start_date")
	}
	endDate, err := parseOptionalDayPointer(input.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid end_date")
	}

	cycle, err := handler.services.Cycles.CreateCycle(user.ID, services.CycleInput{
		StartDate: start,
		EndDate:   endDate,
		Notes:     input.Notes,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to create cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleView(cycle))
}

func (handler *Handler) CurrentCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycle, err := handler.services.Cycles.CurrentCycle(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to load cycle")
	}
	return c.JSON(newCycleView(cycle))
}

func (handler *Handler) GetCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	cycle, err := handler.services.Cycles.GetCycle(user.ID, cycleID)
	if err != nil {
		return respondServiceError(c, err, "failed to load cycle")
	}
	return c.JSON(newCycleView(cycle))
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	input := cycleUpdateInput{}
	if ok, err := parseInput(c, &input); !ok {
		return err
	}

	update := services.CycleUpdate{ClearEndDate: input.ClearEndDate, Notes: input.Notes}
	if update.StartDate, err = parseOptionalDayPointer(input.StartDate); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start_date")
	}
	if update.EndDate, err = parseOptionalDayPointer(input.EndDate); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid end_date")
	}

	cycle, err := handler.services.Cycles.UpdateCycle(user.ID, cycleID, update)
	if err != nil {
		return respondServiceError(c, err, "failed to update cycle")
	}
	return c.JSON(newCycleView(cycle))
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.services.Cycles.DeleteCycle(user.ID, cycleID); err != nil {
		return respondServiceError(c, err, "failed to delete cycle")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
