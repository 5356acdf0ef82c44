package models

import "time"

// Class is a lesson slot definition. Duration is stored as free text
// ("1.5 hours", "2시간") because early data was entered by hand; billing
// normalizes it through services.ParseClassDuration.
type Class struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	Name      string    `json:"name" validate:"required"`
	Type      ClassType `json:"type" validate:"required,oneof=1:1 group"`
	Subject   string    `json:"subject" validate:"required"`
	Duration  string    `json:"duration" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// StudentCount is populated by list queries, not stored.
	StudentCount int `json:"student_count,omitempty"`
}
