package models

// TuitionCalculation is the full billing breakdown for one student. It is
// recomputed on every read and never stored.
type TuitionCalculation struct {
	StudentID        string      `json:"student_id"`
	StudentName      string      `json:"student_name"`
	ClassType        ClassType   `json:"class_type"`
	Duration         float64     `json:"duration"`
	PaymentType      PaymentType `json:"payment_type"`
	RoboticsIncluded bool        `json:"robotics_included"`

	BaseAmount     int `json:"base_amount"`
	RoboticsAmount int `json:"robotics_amount"`
	GrossAmount    int `json:"gross_amount"`

	DiscountPolicies []string `json:"discount_policies"`
	DiscountRate     int      `json:"discount_rate"`
	DiscountAmount   int      `json:"discount_amount"`
	NetAmount        int      `json:"net_amount"`

	PaymentPeriodStart string `json:"payment_period_start"`
	PaymentPeriodEnd   string `json:"payment_period_end"`
	MonthlyRate        int    `json:"monthly_rate"`
	WeeklyRate         int    `json:"weekly_rate"`
}

// PaymentStatusInfo pairs a payment status with the signed day distance to
// the next payment date. Negative means overdue.
type PaymentStatusInfo struct {
	Status       PaymentStatus `json:"status"`
	DaysUntilDue int           `json:"days_until_due"`
}

// PaymentSummary is the roster-wide billing rollup shown on the dashboard.
type PaymentSummary struct {
	TotalStudents       int `json:"total_students"`
	TotalMonthlyRevenue int `json:"total_monthly_revenue"`
	OverduePayments     int `json:"overdue_payments"`
	UpcomingPayments    int `json:"upcoming_payments"`
	PaymentsDueThisWeek int `json:"payments_due_this_week"`
}
