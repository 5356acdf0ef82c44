package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// SetupPaymentRoutes registers the read-only billing endpoints.
func SetupPaymentRoutes(app *fiber.App) {
	api := app.Group("/api/payments", auth.AuthMiddleware)
	api.Get("/", GetPaymentsAPI)
	api.Get("/summary", GetPaymentSummaryAPI)
	api.Get("/:studentId", GetStudentPaymentAPI)
}
