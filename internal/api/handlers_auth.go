package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/metrics"
	"github.com/terraincognita07/ovumcy/internal/models"
	"github.com/terraincognita07/ovumcy/internal/services"
)

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if ok, err := parseInput(c, &credentials); !ok {
		return err
	}

	user, err := handler.services.Auth.Register(credentials.Email, credentials.Password, handler.now())
	if err != nil {
		return respondServiceError(c, err, "failed to create account")
	}
	return handler.respondWithToken(c, fiber.StatusCreated, &user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if ok, err := parseInput(c, &credentials); !ok {
		return err
	}

	throttleKey := loginThrottleKey(c, credentials.Email)
	now := handler.now()
	if blocked, wait := handler.loginThrottle.blocked(throttleKey, now); blocked {
		metrics.RecordLogin("throttled")
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.services.Auth.Authenticate(credentials.Email, credentials.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginThrottle.recordFailure(throttleKey, now)
		metrics.RecordLogin("invalid")
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		metrics.RecordLogin("error")
		return respondServiceError(c, err, "failed to sign in")
	}

	handler.loginThrottle.clear(throttleKey)
	metrics.RecordLogin("success")
	return handler.respondWithToken(c, fiber.StatusOK, &user)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newUserView(user))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input := changePasswordInput{}
	if ok, err := parseInput(c, &input); !ok {
		return err
	}

	err := handler.services.Account.ChangePassword(user.ID, user.PasswordHash, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrAccountPasswordChangeInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrAccountPasswordMismatch):
		return apiError(c, fiber.StatusBadRequest, "passwords do not match")
	case errors.Is(err, services.ErrAccountInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrAccountNewPasswordMustDiffer):
		return apiError(c, fiber.StatusBadRequest, "new password must differ from current password")
	case err != nil:
		return respondServiceError(c, err, "failed to update password")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input := deleteAccountInput{}
	if ok, err := parseInput(c, &input); !ok {
		return err
	}

	err := handler.services.Account.DeleteAccount(user.ID, user.PasswordHash, input.Password)
	switch {
	case errors.Is(err, services.ErrAccountPasswordMissing):
		return apiError(c, fiber.StatusBadRequest, "password is required")
	case errors.Is(err, services.ErrAccountInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid password")
	case err != nil:
		return respondServiceError(c, err, "failed to delete account")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := handler.issueToken(user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(status).JSON(authResponse{User: newUserView(user), Token: token})
}
