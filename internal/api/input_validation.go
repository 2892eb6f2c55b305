package api

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validationMessage names the first offending field in the request's own
// JSON vocabulary.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		if first.Tag() == "required" {
			return first.Field() + " is required"
		}
		return "invalid " + first.Field()
	}
	return "invalid input"
}

// parseInput decodes the body into target and validates its struct tags.
// On failure the 400 response has already been written.
func parseInput(c *fiber.Ctx, target any) (bool, error) {
	if err := c.BodyParser(target); err != nil {
		return false, apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := inputValidator().Struct(target); err != nil {
		return false, apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}
	return true, nil
}
