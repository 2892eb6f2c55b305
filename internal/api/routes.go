package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)
	auth.Delete("/me", handler.AuthRequired, handler.DeleteAccount)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Get("/current", handler.CurrentCycle)
	cycles.Get("/:id", handler.GetCycle)
	cycles.Patch("/:id", handler.UpdateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListLogs)
	logs.Get("/:date", handler.GetLog)
	logs.Put("/:date", handler.UpsertLog)
	logs.Delete("/:date", handler.DeleteLog)

	predictions := api.Group("/predictions", handler.AuthRequired)
	predictions.Get("/current", handler.CurrentPrediction)
	predictions.Post("/generate", handler.GeneratePrediction)

	statistics := api.Group("/statistics", handler.AuthRequired)
	statistics.Get("", handler.GetStatistics)
	statistics.Post("/calculate", handler.CalculateStatistics)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("", handler.ListInsights)
	insights.Post("/generate", handler.GenerateInsights)
	insights.Get("/:id", handler.GetInsight)
	insights.Post("/:id/read", handler.MarkInsightRead)
	insights.Post("/:id/dismiss", handler.DismissInsight)
}
