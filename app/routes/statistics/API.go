package statistics

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
)

func loadRoster(c *fiber.Ctx) ([]*models.Student, error) {
	teacherID := c.Locals("user_id").(string)
	return database.GetStudentsByTeacher(config.GetDB(), teacherID)
}

// GetWeeklyStatisticsAPI snapshots the roster for the week containing the
// date query parameter, defaulting to today.
func GetWeeklyStatisticsAPI(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}

	roster, err := loadRoster(c)
	if err != nil {
		log.Printf("Error loading roster for weekly statistics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load statistics"})
	}
	return c.JSON(fiber.Map{"statistics": services.CalculateWeeklyStatistics(roster, date)})
}

// GetMonthlyStatisticsAPI snapshots the roster for one calendar month.
func GetMonthlyStatisticsAPI(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be 1-12"})
	}

	roster, err := loadRoster(c)
	if err != nil {
		log.Printf("Error loading roster for monthly statistics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load statistics"})
	}
	return c.JSON(fiber.Map{"statistics": services.CalculateMonthlyStatistics(roster, month, year)})
}

// GetStatisticsSummaryAPI compares this month's roster against last
// month's. The previous period is approximated by the students who were
// already enrolled before the current month began.
func GetStatisticsSummaryAPI(c *fiber.Ctx) error {
	roster, err := loadRoster(c)
	if err != nil {
		log.Printf("Error loading roster for statistics summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load statistics"})
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	previous := make([]*models.Student, 0, len(roster))
	for _, student := range roster {
		if student.CreatedAt.Before(monthStart) {
			previous = append(previous, student)
		}
	}

	comparison := services.ComparePeriods(
		len(roster), len(previous),
		services.MonthlyRevenue(roster), services.MonthlyRevenue(previous),
	)
	return c.JSON(fiber.Map{
		"current": fiber.Map{
			"students": len(roster),
			"revenue":  services.MonthlyRevenue(roster),
		},
		"previous": fiber.Map{
			"students": len(previous),
			"revenue":  services.MonthlyRevenue(previous),
		},
		"comparison": comparison,
	})
}

// GetChartDataAPI returns the dashboard chart series.
func GetChartDataAPI(c *fiber.Ctx) error {
	roster, err := loadRoster(c)
	if err != nil {
		log.Printf("Error loading roster for charts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load charts"})
	}
	return c.JSON(fiber.Map{"charts": services.GenerateChartData(roster)})
}
