package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := handler.services.Insights.ListInsights(user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to load insights")
	}
	return c.JSON(fiber.Map{
		"insights":     newInsightViews(list.Insights),
		"unread_count": list.UnreadCount,
	})
}

func (handler *Handler) GenerateInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.services.Insights.GenerateInsights(user.ID, handler.today())
	if err != nil {
		return respondServiceError(c, err, "failed to generate insights")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"generated": len(insights),
		"insights":  newInsightViews(insights),
	})
}

func (handler *Handler) GetInsight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	insightID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	insight, err := handler.services.Insights.GetInsight(user.ID, insightID)
	if err != nil {
		return respondServiceError(c, err, "failed to load insight")
	}
	return c.JSON(newInsightView(insight))
}

func (handler *Handler) MarkInsightRead(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	insightID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	insight, err := handler.services.Insights.MarkRead(user.ID, insightID, handler.now())
	if err != nil {
		return respondServiceError(c, err, "failed to update insight")
	}
	return c.JSON(newInsightView(insight))
}

func (handler *Handler) DismissInsight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	insightID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	insight, err := handler.services.Insights.Dismiss(user.ID, insightID)
	if err != nil {
		return respondServiceError(c, err, "failed to update insight")
	}
	return c.JSON(newInsightView(insight))
}
