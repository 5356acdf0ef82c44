package models

import "time"

// Schedule is a recurring weekly class slot. DayOfWeek follows time.Weekday
// numbering, 0 = Sunday through 6 = Saturday.
type Schedule struct {
	ID        string         `json:"id"`
	TeacherID string         `json:"teacher_id"`
	ClassID   string         `json:"class_id" validate:"required"`
	DayOfWeek int            `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string         `json:"start_time" validate:"required"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Class    *Class     `json:"class,omitempty"`
	Students []*Student `json:"students,omitempty"`
}

// Attendance is one student's mark for one dated session of a schedule.
type Attendance struct {
	ID         string           `json:"id"`
	ScheduleID string           `json:"schedule_id"`
	StudentID  string           `json:"student_id"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
	MakeupDate *time.Time       `json:"makeup_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
