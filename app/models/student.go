package models

import "time"

// Student is an enrolled student. The class link, billing cadence and
// robotics add-on live on StudentClass; a student normally has exactly one.
type Student struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacher_id"`
	Name        string    `json:"name" validate:"required"`
	Grade       string    `json:"grade" validate:"required"`
	ParentName  string    `json:"parent_name" validate:"required"`
	ParentPhone string    `json:"parent_phone" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Classes []*StudentClass `json:"student_classes,omitempty"`
}

// StudentClass links a student to a class and carries the billing terms.
type StudentClass struct {
	ID             string       `json:"id"`
	StudentID      string       `json:"student_id"`
	ClassID        string       `json:"class_id"`
	PaymentType    PaymentType  `json:"payment_type" validate:"required,oneof=monthly quarterly"`
	PaymentDay     int          `json:"payment_day" validate:"required,min=1,max=31"`
	RoboticsOption bool         `json:"robotics_option"`
	RoboticsDay    *RoboticsDay `json:"robotics_day,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`

	Class *Class `json:"class,omitempty"`
}

// Enrollment returns the student's primary class link, or nil when the
// student has no class yet.
func (s *Student) Enrollment() *StudentClass {
	if len(s.Classes) == 0 {
		return nil
	}
	return s.Classes[0]
}
