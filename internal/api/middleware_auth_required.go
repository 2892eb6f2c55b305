package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/models"
)

// AuthRequired resolves the bearer token to a stored user and exposes it to
// later handlers through currentUser.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	userID, err := handler.parseToken(raw)
	if err != nil {
		return nil, err
	}

	user, err := handler.services.Auth.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
