package progress

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupProgressRoutes registers the attendance progress endpoints.
func SetupProgressRoutes(app *fiber.App) {
	api := app.Group("/api/progress", auth.AuthMiddleware)
	api.Get("/", GetProgressListAPI)
	api.Post("/batch", BatchUpdateAPI)
	api.Get("/:studentId", GetStudentProgressAPI)
	api.Post("/:studentId", UpdateProgressAPI)
	api.Put("/:studentId/week", SetWeekAPI)
	api.Put("/:studentId/course", AdjustCourseTypeAPI)
}
