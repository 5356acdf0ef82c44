package classes

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

type classRequest struct {
	Name     string           `json:"name" validate:"required"`
	Type     models.ClassType `json:"type" validate:"required,oneof=1:1 group"`
	Subject  string           `json:"subject" validate:"required"`
	Duration string           `json:"duration" validate:"required"`
}

// GetClassesAPI lists the teacher's classes with enrollment counts.
func GetClassesAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	classes, err := database.GetClassesByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error listing classes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load classes"})
	}
	return c.JSON(fiber.Map{"classes": classes, "count": len(classes)})
}

// CreateClassAPI adds a class outside the enrollment flow.
func CreateClassAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	class, err := database.CreateClass(config.GetDB(), &models.Class{
		TeacherID: teacherID,
		Name:      req.Name,
		Type:      req.Type,
		Subject:   req.Subject,
		Duration:  req.Duration,
	})
	if err != nil {
		log.Printf("Error creating class: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": class})
}

// UpdateClassAPI edits a class definition.
func UpdateClassAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	classID := c.Params("id")

	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	err := database.UpdateClass(config.GetDB(), classID, teacherID, &models.Class{
		Name:     req.Name,
		Type:     req.Type,
		Subject:  req.Subject,
		Duration: req.Duration,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		log.Printf("Error updating class %s: %v", classID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}
	return c.JSON(fiber.Map{"message": "Class updated"})
}

// DeleteClassAPI removes a class, its links and its schedule slots.
func DeleteClassAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	classID := c.Params("id")

	if err := database.DeleteClass(config.GetDB(), classID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		log.Printf("Error deleting class %s: %v", classID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	return c.JSON(fiber.Map{"message": "Class deleted"})
}

// GetClassStudentsAPI lists the students linked to one class.
func GetClassStudentsAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	classID := c.Params("id")
	db := config.GetDB()

	class, err := database.GetClassByID(db, classID)
	if err != nil || class.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	roster, err := database.GetStudentsByClass(db, classID)
	if err != nil {
		log.Printf("Error listing students for class %s: %v", classID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load students"})
	}
	return c.JSON(fiber.Map{"class": class, "students": roster, "count": len(roster)})
}
