package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupClassRoutes registers the class endpoints.
func SetupClassRoutes(app *fiber.App) {
	api := app.Group("/api/classes", auth.AuthMiddleware)
	api.Get("/", GetClassesAPI)
	api.Post("/", CreateClassAPI)
	api.Put("/:id", UpdateClassAPI)
	api.Delete("/:id", DeleteClassAPI)
	api.Get("/:id/students", GetClassStudentsAPI)
}
