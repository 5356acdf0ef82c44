package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupDashboardRoutes registers the dashboard endpoint.
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard", auth.AuthMiddleware)
	api.Get("/stats", GetDashboardStatsAPI)
}
