package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/classes"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/dashboard"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/feedback"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/payments"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/progress"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/schedule"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/statistics"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/students"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
)

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func main() {
	config.LoadEnv()
	config.InitDB()

	db := config.GetDB()
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	services.StartScheduler(db)

	app := fiber.New(fiber.Config{
		AppName:      "dlab-dashboard",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	students.SetupStudentRoutes(app)
	classes.SetupClassRoutes(app)
	schedule.SetupScheduleRoutes(app)
	payments.SetupPaymentRoutes(app)
	progress.SetupProgressRoutes(app)
	statistics.SetupStatisticsRoutes(app)
	feedback.SetupFeedbackRoutes(app)
	dashboard.SetupDashboardRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s", port)
	log.Fatal(app.Listen(":" + port))
}
