package api

import (
	"github.com/gofiber/fiber/v2"
)

const insufficientHistoryMessage = "insufficient cycle history"

func (handler *Handler) CurrentPrediction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prediction, err := handler.services.Predictions.GetActivePrediction(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to load prediction")
	}
	return c.JSON(newPredictionView(prediction))
}

func (handler *Handler) GeneratePrediction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prediction, generated, err := handler.services.Predictions.GeneratePrediction(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to generate prediction")
	}
	if !generated {
		return apiError(c, fiber.StatusBadRequest, insufficientHistoryMessage)
	}
	return c.Status(fiber.StatusCreated).JSON(newPredictionView(prediction))
}

func (handler *Handler) GetStatistics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.services.Statistics.GetStatistics(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to load statistics")
	}
	return c.JSON(newStatisticsView(stats))
}

func (handler *Handler) CalculateStatistics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.services.Statistics.CalculateStatistics(user.ID, handler.now())
	if err != nil {
		return respondServiceError(c, err, "failed to calculate statistics")
	}
	return c.JSON(newStatisticsView(stats))
}
