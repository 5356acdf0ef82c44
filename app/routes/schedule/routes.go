package schedule

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupScheduleRoutes registers the weekly schedule endpoints.
func SetupScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/schedules", auth.AuthMiddleware)
	api.Get("/", GetSchedulesAPI)
	api.Post("/", CreateScheduleAPI)
	api.Put("/:id", UpdateScheduleAPI)
	api.Delete("/:id", DeleteScheduleAPI)
	api.Post("/:id/attendance", MarkAttendanceAPI)
	api.Get("/:id/attendance", GetSessionAttendanceAPI)
}
