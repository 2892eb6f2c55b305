package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/services"
)

const dateLayout = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	return time.ParseInLocation(dateLayout, value, time.UTC)
}

func parseOptionalDay(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	day, err := parseDay(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func parseOptionalDayPointer(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return parseOptionalDay(*raw)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

// respondServiceError maps service sentinels to HTTP statuses. Storage
// failures are logged and hidden behind fallback.
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrCycleNotFound),
		errors.Is(err, services.ErrDailyLogNotFound),
		errors.Is(err, services.ErrPredictionNotFound),
		errors.Is(err, services.ErrStatisticsNotFound),
		errors.Is(err, services.ErrInsightNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCycleStartDateExists):
		return apiError(c, fiber.StatusConflict, "cycle already exists for this start date")
	case errors.Is(err, services.ErrAuthEmailExists):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case errors.Is(err, services.ErrCycleEndBeforeStart):
		return apiError(c, fiber.StatusBadRequest, "end date must not be before start date")
	case errors.Is(err, services.ErrCycleStartDateMissing):
		return apiError(c, fiber.StatusBadRequest, "start date is required")
	case errors.Is(err, services.ErrInvalidMood),
		errors.Is(err, services.ErrInvalidTemperature),
		errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrDailyLogRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrPasswordTooLong):
		return apiError(c, fiber.StatusBadRequest, "password too long")
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	event := logging.Error().Err(err).Str("path", c.Path())
	if user, ok := currentUser(c); ok {
		event = event.Uint("user_id", user.ID)
	}
	event.Msg(fallback)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
