package feedback

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupFeedbackRoutes registers feedback generation, history and template
// endpoints.
func SetupFeedbackRoutes(app *fiber.App) {
	api := app.Group("/api/feedback", auth.AuthMiddleware)
	api.Post("/generate", GenerateFeedbackAPI)
	api.Post("/validate-key", ValidateKeyAPI)

	api.Get("/history", GetHistoryAPI)
	api.Get("/history/stats", GetHistoryStatsAPI)
	api.Delete("/history/:id", DeleteHistoryAPI)

	api.Get("/templates", GetTemplatesAPI)
	api.Post("/templates", CreateTemplateAPI)
	api.Put("/templates/:id", UpdateTemplateAPI)
	api.Delete("/templates/:id", DeleteTemplateAPI)
}
