package payments

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
)

// paymentRow is one roster entry in the billing view.
type paymentRow struct {
	Calculation models.TuitionCalculation `json:"calculation"`
	NextPayment string                    `json:"next_payment_date"`
	Status      models.PaymentStatusInfo  `json:"status"`
}

// GetPaymentsAPI computes the live billing breakdown for every student.
// Nothing here is stored; the figures always reflect the current roster.
func GetPaymentsAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	roster, err := database.GetStudentsByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error loading roster for payments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	payments := make([]paymentRow, 0, len(roster))
	for _, student := range roster {
		row := paymentRow{Calculation: services.CalculateTuition(student)}
		if enrollment := student.Enrollment(); enrollment != nil {
			next := services.NextPaymentDate(enrollment.PaymentDay, nil)
			row.NextPayment = next.Format("2006-01-02")
			row.Status = services.GetPaymentStatus(next)
		}
		payments = append(payments, row)
	}

	return c.JSON(fiber.Map{"payments": payments, "count": len(payments)})
}

// GetPaymentSummaryAPI returns the roster-wide billing rollup.
func GetPaymentSummaryAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	roster, err := database.GetStudentsByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error loading roster for payment summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment summary"})
	}

	return c.JSON(fiber.Map{"summary": services.GeneratePaymentSummary(roster)})
}

// GetStudentPaymentAPI computes one student's billing breakdown. The
// payment_type and robotics query parameters quote a what-if change without
// touching the stored enrollment.
func GetStudentPaymentAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	student, err := database.GetStudentByID(config.GetDB(), c.Params("studentId"))
	if err != nil || student.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	calc := services.CalculateTuition(student)
	if c.Query("payment_type") != "" || c.Query("robotics") != "" {
		paymentType := models.PaymentMonthly
		robotics := false
		if enrollment := student.Enrollment(); enrollment != nil {
			paymentType = enrollment.PaymentType
			robotics = enrollment.RoboticsOption
		}
		if q := models.PaymentType(c.Query("payment_type")); q == models.PaymentMonthly || q == models.PaymentQuarterly {
			paymentType = q
		}
		if c.Query("robotics") != "" {
			robotics = c.QueryBool("robotics")
		}
		calc = services.CalculateTuitionWith(student, paymentType, robotics)
	}

	row := paymentRow{Calculation: calc}
	if enrollment := student.Enrollment(); enrollment != nil {
		next := services.NextPaymentDate(enrollment.PaymentDay, nil)
		row.NextPayment = next.Format("2006-01-02")
		row.Status = services.GetPaymentStatus(next)
	}
	return c.JSON(row)
}
