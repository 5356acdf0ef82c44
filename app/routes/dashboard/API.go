package dashboard

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
)

// GetDashboardStatsAPI builds the landing page payload. Individual query
// failures degrade to zeros so the page always renders.
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	db := config.GetDB()

	stats := models.DashboardStats{}

	if count, err := database.CountStudentsByTeacher(db, teacherID); err != nil {
		log.Printf("Error counting students: %v", err)
	} else {
		stats.TotalStudents = count
	}

	if count, err := database.CountClassesByTeacher(db, teacherID); err != nil {
		log.Printf("Error counting classes: %v", err)
	} else {
		stats.TotalClasses = count
	}

	if count, err := database.CountWeeklySessions(db, teacherID); err != nil {
		log.Printf("Error counting weekly sessions: %v", err)
	} else {
		stats.WeeklySessions = count
	}

	if roster, err := database.GetStudentsByTeacher(db, teacherID); err != nil {
		log.Printf("Error loading roster for dashboard: %v", err)
	} else {
		stats.PaymentSummary = services.GeneratePaymentSummary(roster)
	}

	if records, err := services.GetProgressByTeacher(db, teacherID); err != nil {
		log.Printf("Error loading progress for dashboard: %v", err)
	} else {
		stats.ProgressOverview = services.SummarizeProgress(records)
	}

	return c.JSON(fiber.Map{"stats": stats})
}
