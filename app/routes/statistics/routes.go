package statistics

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupStatisticsRoutes registers the statistics endpoints.
func SetupStatisticsRoutes(app *fiber.App) {
	api := app.Group("/api/statistics", auth.AuthMiddleware)
	api.Get("/weekly", GetWeeklyStatisticsAPI)
	api.Get("/monthly", GetMonthlyStatisticsAPI)
	api.Get("/summary", GetStatisticsSummaryAPI)
	api.Get("/charts", GetChartDataAPI)
}
