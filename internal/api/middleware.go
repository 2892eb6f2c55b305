package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/metrics"
	"github.com/terraincognita07/ovumcy/internal/models"
)

const contextUserKey = "current_user"

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// RequestMetrics records count and latency per matched route. Unmatched paths
// share one label so they cannot blow up cardinality.
func RequestMetrics(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	route := "unmatched"
	if matched := c.Route(); matched != nil && matched.Path != "/" && matched.Path != "" {
		route = matched.Path
	}
	metrics.RecordAPIRequest(c.Method(), route, status, time.Since(started))
	return err
}
