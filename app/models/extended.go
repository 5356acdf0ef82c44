package models

// ProgressOverview aggregates the attendance gauges for the dashboard.
type ProgressOverview struct {
	TotalTracked         int `json:"total_tracked"`
	CompletedStudents    int `json:"completed_students"`
	NearFeedbackStudents int `json:"near_feedback_students"`
	AverageProgress      int `json:"average_progress"`
}

// DashboardStats is the single payload behind the dashboard landing page.
type DashboardStats struct {
	TotalStudents    int              `json:"total_students"`
	TotalClasses     int              `json:"total_classes"`
	WeeklySessions   int              `json:"weekly_sessions"`
	PaymentSummary   PaymentSummary   `json:"payment_summary"`
	ProgressOverview ProgressOverview `json:"progress_overview"`
}
