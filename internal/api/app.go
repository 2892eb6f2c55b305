package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/ovumcy/internal/logging"
)

type AppOptions struct {
	MetricsEnabled bool
	AccessLog      bool
}

// NewApp builds the fiber application with the middleware stack and every
// route registered.
func NewApp(handler *Handler, options AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ovumcy",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if options.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: logging.Writer(zerolog.InfoLevel),
		}))
	}
	app.Use(RequestMetrics)

	if options.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		logging.Error().Err(err).Str("path", c.Path()).Msg("unhandled request error")
	}
	return apiError(c, status, message)
}
