package models

import "time"

// AttendanceProgress is a student's bounded week counter for the current
// course run. Invariant: 0 <= CurrentWeek <= TotalWeeks.
type AttendanceProgress struct {
	ID                 string     `json:"id"`
	StudentID          string     `json:"student_id"`
	TeacherID          string     `json:"teacher_id"`
	CurrentWeek        int        `json:"current_week"`
	TotalWeeks         int        `json:"total_weeks"`
	CourseType         CourseType `json:"course_type"`
	LastAttendanceDate *time.Time `json:"last_attendance_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// StudentName is joined in by list queries for display.
	StudentName string `json:"student_name,omitempty"`
}

// CourseConfig fixes the week totals for a course type.
type CourseConfig struct {
	TotalWeeks   int
	FeedbackWeek int
	Label        string
}

// CourseConfigs is the canonical course table. A monthly cadence runs four
// weeks with feedback on week three; a quarterly cadence runs eleven weeks
// with feedback on week ten.
var CourseConfigs = map[CourseType]CourseConfig{
	CourseOneMonth:   {TotalWeeks: 4, FeedbackWeek: 3, Label: "1개월 과정"},
	CourseThreeMonth: {TotalWeeks: 11, FeedbackWeek: 10, Label: "3개월 과정"},
}
