package progress

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
	"github.com/Kevin-innovation/dlab-dashboard/app/validation"
)

// progressView decorates a progress record with its derived display fields.
type progressView struct {
	*models.AttendanceProgress
	Stats      services.WeekStats `json:"stats"`
	StatusText string             `json:"status_text"`
	GaugeColor string             `json:"gauge_color"`
}

func toView(p *models.AttendanceProgress) progressView {
	return progressView{
		AttendanceProgress: p,
		Stats:              services.CalculateWeekStats(p.CurrentWeek, p.CourseType),
		StatusText:         services.ProgressStatusText(p.CurrentWeek, p.CourseType),
		GaugeColor:         services.GaugeColorClass(p.CurrentWeek, p.CourseType),
	}
}

// GetProgressListAPI lists the teacher's week counters. Records whose
// course type drifted from the billing cadence are reconciled on read.
func GetProgressListAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	records, err := services.GetProgressByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error listing progress: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load progress"})
	}

	views := make([]progressView, 0, len(records))
	for _, p := range records {
		views = append(views, toView(p))
	}
	return c.JSON(fiber.Map{"progress": views, "count": len(views)})
}

// GetStudentProgressAPI fetches one student's week counter. Students who
// predate progress tracking get a zeroed record created on first read.
func GetStudentProgressAPI(c *fiber.Ctx) error {
	record, err := services.EnsureProgress(config.GetDB(), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
		}
		log.Printf("Error loading progress for %s: %v", c.Params("studentId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load progress"})
	}
	return c.JSON(toView(record))
}

type actionRequest struct {
	Action models.AttendanceAction `json:"action" validate:"required,oneof=increment decrement reset"`
}

// UpdateProgressAPI applies one attendance action to a student's counter.
func UpdateProgressAPI(c *fiber.Ctx) error {
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	record, err := services.UpdateProgress(config.GetDB(), c.Params("studentId"), req.Action)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
		}
		log.Printf("Error updating progress for %s: %v", c.Params("studentId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}
	return c.JSON(toView(record))
}

type setWeekRequest struct {
	Week int `json:"week" validate:"min=0"`
}

// SetWeekAPI jumps a student's counter to an explicit week.
func SetWeekAPI(c *fiber.Ctx) error {
	var req setWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	record, err := services.SetProgressWeek(config.GetDB(), c.Params("studentId"), req.Week)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
		}
		log.Printf("Error setting week for %s: %v", c.Params("studentId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set week"})
	}
	return c.JSON(toView(record))
}

type courseTypeRequest struct {
	CourseType models.CourseType `json:"course_type" validate:"required,oneof=1month 3month"`
}

// AdjustCourseTypeAPI moves a student onto a different course length,
// clamping their week counter when the course shrinks.
func AdjustCourseTypeAPI(c *fiber.Ctx) error {
	var req courseTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	record, err := services.AdjustForCourseType(config.GetDB(), c.Params("studentId"), req.CourseType)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
		}
		log.Printf("Error adjusting course type for %s: %v", c.Params("studentId"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to adjust course type"})
	}
	return c.JSON(toView(record))
}

type batchRequest struct {
	StudentIDs []string                `json:"student_ids" validate:"required,min=1"`
	Action     models.AttendanceAction `json:"action" validate:"required,oneof=increment decrement reset"`
}

// BatchUpdateAPI applies one action to many students and reports each
// outcome separately.
func BatchUpdateAPI(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	results := services.BatchUpdateProgress(config.GetDB(), req.StudentIDs, req.Action)
	succeeded := 0
	for _, r := range results {
		if r.Error == "" {
			succeeded++
		}
	}
	return c.JSON(fiber.Map{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}
