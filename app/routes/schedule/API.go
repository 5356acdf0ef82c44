package schedule

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
	"github.com/Kevin-innovation/dlab-dashboard/app/validation"
)

type scheduleRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=active planned completed makeup"`
}

// GetSchedulesAPI returns the weekly grid with classes and attendees.
func GetSchedulesAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	schedules, err := database.GetSchedulesByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error listing schedules: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load schedules"})
	}
	return c.JSON(fiber.Map{"schedules": schedules, "count": len(schedules)})
}

// CreateScheduleAPI adds a weekly slot for one of the teacher's classes.
func CreateScheduleAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	db := config.GetDB()

	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	class, err := database.GetClassByID(db, req.ClassID)
	if err != nil || class.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	schedule, err := database.CreateSchedule(db, &models.Schedule{
		TeacherID: teacherID,
		ClassID:   req.ClassID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		Status:    models.ScheduleStatus(req.Status),
	})
	if err != nil {
		log.Printf("Error creating schedule: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create schedule"})
	}
	schedule.Class = class
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"schedule": schedule})
}

// UpdateScheduleAPI moves or re-statuses a slot.
func UpdateScheduleAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	scheduleID := c.Params("id")

	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}
	if req.Status == "" {
		req.Status = string(models.ScheduleActive)
	}

	err := database.UpdateSchedule(config.GetDB(), scheduleID, teacherID,
		req.DayOfWeek, req.StartTime, models.ScheduleStatus(req.Status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		log.Printf("Error updating schedule %s: %v", scheduleID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update schedule"})
	}
	return c.JSON(fiber.Map{"message": "Schedule updated"})
}

// DeleteScheduleAPI removes a slot.
func DeleteScheduleAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	scheduleID := c.Params("id")

	if err := database.DeleteSchedule(config.GetDB(), scheduleID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		log.Printf("Error deleting schedule %s: %v", scheduleID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete schedule"})
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

type attendanceMark struct {
	StudentID  string                  `json:"student_id" validate:"required"`
	Status     models.AttendanceStatus `json:"status" validate:"required,oneof=present absent makeup_needed makeup_completed"`
	MakeupDate string                  `json:"makeup_date"`
}

type markAttendanceRequest struct {
	Date  string           `json:"date" validate:"required"`
	Marks []attendanceMark `json:"marks" validate:"required,min=1,dive"`
}

// advancesWeek reports whether writing next over prior should bump the
// student's week counter. Only a transition into present counts, so
// re-submitting a session's marks cannot count the same lesson twice.
func advancesWeek(prior models.AttendanceStatus, hadPrior bool, next models.AttendanceStatus) bool {
	if next != models.AttendancePresent {
		return false
	}
	return !hadPrior || prior != models.AttendancePresent
}

// MarkAttendanceAPI records one session's attendance. A mark that newly
// turns present also advances the student's week counter.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	scheduleID := c.Params("id")
	db := config.GetDB()

	var req markAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	schedule, err := database.GetScheduleByID(db, scheduleID)
	if err != nil || schedule.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	marked, failed := 0, 0
	for _, mark := range req.Marks {
		var makeupDate *time.Time
		if mark.MakeupDate != "" {
			if d, err := time.Parse("2006-01-02", mark.MakeupDate); err == nil {
				makeupDate = &d
			}
		}

		prior, hadPrior, err := database.MarkAttendance(db, scheduleID, mark.StudentID, date, mark.Status, makeupDate)
		if err != nil {
			log.Printf("Error marking attendance for student %s: %v", mark.StudentID, err)
			failed++
			continue
		}
		marked++

		if advancesWeek(prior, hadPrior, mark.Status) {
			if _, err := services.UpdateProgress(db, mark.StudentID, models.ActionIncrement); err != nil {
				log.Printf("Error advancing progress for student %s: %v", mark.StudentID, err)
			}
		}
	}

	return c.JSON(fiber.Map{"marked": marked, "failed": failed})
}

// GetSessionAttendanceAPI lists the marks for one schedule on one date.
func GetSessionAttendanceAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	scheduleID := c.Params("id")
	db := config.GetDB()

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query must be YYYY-MM-DD"})
	}

	schedule, err := database.GetScheduleByID(db, scheduleID)
	if err != nil || schedule.TeacherID != teacherID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	records, err := database.GetAttendanceForSession(db, scheduleID, date)
	if err != nil {
		log.Printf("Error loading attendance for schedule %s: %v", scheduleID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load attendance"})
	}
	return c.JSON(fiber.Map{"attendance": records, "count": len(records)})
}
