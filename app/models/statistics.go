package models

// StudentCountStatistics breaks the roster down by class type, robotics
// participation and billing cadence. WeightedCount doubles one-on-one
// students because a 1:1 slot consumes as much teaching time as a group.
type StudentCountStatistics struct {
	ActualStudents int `json:"actual_students"`
	WeightedCount  int `json:"weighted_count"`

	OneOnOneStudents int `json:"one_on_one_students"`
	OneOnOneWeighted int `json:"one_on_one_weighted"`
	GroupStudents    int `json:"group_students"`
	GroupWeighted    int `json:"group_weighted"`

	RoboticsParticipants    int `json:"robotics_participants"`
	RoboticsNonParticipants int `json:"robotics_non_participants"`

	MonthlyPaymentStudents   int `json:"monthly_payment_students"`
	QuarterlyPaymentStudents int `json:"quarterly_payment_students"`
}

// WeeklyStatistics is the roster snapshot for one Sunday-based week.
type WeeklyStatistics struct {
	StudentCountStatistics

	WeekStartDate string `json:"week_start_date"`
	WeekEndDate   string `json:"week_end_date"`
	WeekNumber    int    `json:"week_number"`
	Year          int    `json:"year"`

	WeeklyRevenue           int `json:"weekly_revenue"`
	ProjectedMonthlyRevenue int `json:"projected_monthly_revenue"`
}

// MonthlyStatistics is the roster snapshot for one calendar month.
type MonthlyStatistics struct {
	StudentCountStatistics

	Month int `json:"month"`
	Year  int `json:"year"`

	TotalRevenue       int              `json:"total_revenue"`
	RevenueByClassType []ChartDataPoint `json:"revenue_by_class_type"`
}

// Delta is an absolute and percentage change between two periods.
type Delta struct {
	Absolute   int     `json:"absolute"`
	Percentage float64 `json:"percentage"`
}

// PeriodComparison compares the current period against the previous one.
type PeriodComparison struct {
	StudentChange Delta  `json:"student_change"`
	RevenueChange Delta  `json:"revenue_change"`
	StudentTrend  string `json:"student_trend"`
	RevenueTrend  string `json:"revenue_trend"`
}

// ChartDataPoint is one labeled value for the dashboard charts.
type ChartDataPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartData bundles the dashboard chart series.
type ChartData struct {
	ClassTypeDistribution []ChartDataPoint `json:"class_type_distribution"`
	RoboticsParticipation []ChartDataPoint `json:"robotics_participation"`
	PaymentTypeSplit      []ChartDataPoint `json:"payment_type_split"`
	RevenueByClassType    []ChartDataPoint `json:"revenue_by_class_type"`
}
