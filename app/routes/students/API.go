package students

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/validation"
)

type createStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
	ParentName  string `json:"parent_name" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"required"`
	Notes       string `json:"notes"`

	ClassType     models.ClassType `json:"class_type" validate:"required,oneof=1:1 group"`
	Subject       string           `json:"subject" validate:"required"`
	ClassDuration float64          `json:"class_duration" validate:"required,oneof=1 1.5 2"`

	PaymentType    models.PaymentType `json:"payment_type" validate:"required,oneof=monthly quarterly"`
	PaymentDay     int                `json:"payment_day" validate:"required,min=1,max=31"`
	RoboticsOption bool               `json:"robotics_option"`
	RoboticsDay    string             `json:"robotics_day" validate:"omitempty,oneof=wed sat"`
}

func formatDuration(hours float64) string {
	if hours == 1 {
		return "1 hour"
	}
	if hours == 1.5 {
		return "1.5 hours"
	}
	return "2 hours"
}

// CreateStudentAPI enrolls a student: the student row, its class link and a
// fresh attendance progress record land in one transaction.
func CreateStudentAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	var req createStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	params := database.CreateStudentParams{
		TeacherID:      teacherID,
		Name:           req.Name,
		Grade:          req.Grade,
		ParentName:     req.ParentName,
		ParentPhone:    req.ParentPhone,
		ClassType:      req.ClassType,
		Subject:        req.Subject,
		Duration:       formatDuration(req.ClassDuration),
		PaymentType:    req.PaymentType,
		PaymentDay:     req.PaymentDay,
		RoboticsOption: req.RoboticsOption,
	}
	if req.Notes != "" {
		params.Notes = &req.Notes
	}
	if req.RoboticsDay != "" {
		day := models.RoboticsDay(req.RoboticsDay)
		params.RoboticsDay = &day
	}

	student, err := database.CreateStudent(config.GetDB(), params)
	if err != nil {
		log.Printf("Error enrolling student: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"student": student})
}

// GetStudentsAPI lists the teacher's roster, optionally filtered by a
// search query.
func GetStudentsAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	db := config.GetDB()

	var (
		roster []*models.Student
		err    error
	)
	if query := c.Query("q"); query != "" {
		roster, err = database.SearchStudents(db, teacherID, query)
	} else {
		roster, err = database.GetStudentsByTeacher(db, teacherID)
	}
	if err != nil {
		log.Printf("Error listing students: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load students"})
	}

	return c.JSON(fiber.Map{"students": roster, "count": len(roster)})
}

// GetStudentAPI fetches one student.
func GetStudentAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Error loading student %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load student"})
	}
	if student.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"student": student})
}

type updateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
	ParentName  string `json:"parent_name" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"required"`
	Notes       string `json:"notes"`

	PaymentType    models.PaymentType `json:"payment_type" validate:"required,oneof=monthly quarterly"`
	PaymentDay     int                `json:"payment_day" validate:"required,min=1,max=31"`
	RoboticsOption bool               `json:"robotics_option"`
	RoboticsDay    string             `json:"robotics_day" validate:"omitempty,oneof=wed sat"`
}

// UpdateStudentAPI edits a student and their billing terms.
func UpdateStudentAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	studentID := c.Params("id")
	db := config.GetDB()

	var req updateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	existing, err := database.GetStudentByID(db, studentID)
	if err != nil || existing.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	params := database.UpdateStudentParams{
		Name:           req.Name,
		Grade:          req.Grade,
		ParentName:     req.ParentName,
		ParentPhone:    req.ParentPhone,
		PaymentType:    req.PaymentType,
		PaymentDay:     req.PaymentDay,
		RoboticsOption: req.RoboticsOption,
	}
	if req.Notes != "" {
		params.Notes = &req.Notes
	}
	if req.RoboticsDay != "" {
		day := models.RoboticsDay(req.RoboticsDay)
		params.RoboticsDay = &day
	}

	if err := database.UpdateStudent(db, studentID, params); err != nil {
		log.Printf("Error updating student %s: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reload student"})
	}
	return c.JSON(fiber.Map{"student": student})
}

// DeleteStudentAPI removes a student and everything hanging off them.
func DeleteStudentAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	studentID := c.Params("id")

	err := database.DeleteStudent(config.GetDB(), teacherID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Error deleting student %s: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted"})
}
