package models

// ClassType distinguishes one-on-one lessons from group lessons.
type ClassType string

const (
	ClassOneOnOne ClassType = "1:1"
	ClassGroup    ClassType = "group"
)

// PaymentType is the billing cadence a student pays on.
type PaymentType string

const (
	PaymentMonthly   PaymentType = "monthly"
	PaymentQuarterly PaymentType = "quarterly"
)

// CourseType maps a billing cadence onto a fixed attendance week total.
type CourseType string

const (
	CourseOneMonth   CourseType = "1month"
	CourseThreeMonth CourseType = "3month"
)

// CourseTypeForPayment returns the course type implied by a billing cadence.
func CourseTypeForPayment(p PaymentType) CourseType {
	if p == PaymentQuarterly {
		return CourseThreeMonth
	}
	return CourseOneMonth
}

// RoboticsDay is the weekday a robotics add-on session runs on.
type RoboticsDay string

const (
	RoboticsWednesday RoboticsDay = "wed"
	RoboticsSaturday  RoboticsDay = "sat"
)

// ScheduleStatus is the lifecycle state of a recurring class slot.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "active"
	SchedulePlanned   ScheduleStatus = "planned"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleMakeup    ScheduleStatus = "makeup"
)

// AttendanceStatus is the per-session attendance mark for a student.
type AttendanceStatus string

const (
	AttendancePresent         AttendanceStatus = "present"
	AttendanceAbsent          AttendanceStatus = "absent"
	AttendanceMakeupNeeded    AttendanceStatus = "makeup_needed"
	AttendanceMakeupCompleted AttendanceStatus = "makeup_completed"
)

// AttendanceAction is an operation on a student's attendance week counter.
type AttendanceAction string

const (
	ActionIncrement AttendanceAction = "increment"
	ActionDecrement AttendanceAction = "decrement"
	ActionReset     AttendanceAction = "reset"
)

// PaymentStatus classifies how close a student's next payment date is.
type PaymentStatus string

const (
	PaymentUpcoming PaymentStatus = "upcoming"
	PaymentDue      PaymentStatus = "due"
	PaymentOverdue  PaymentStatus = "overdue"
)
