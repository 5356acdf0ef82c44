package services

import (
	"math"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// CalculateStudentCount breaks the roster down by class type, robotics
// participation and billing cadence. One-on-one students count double in the
// weighted total because a 1:1 slot takes as much teaching time as a group.
func CalculateStudentCount(students []*models.Student) models.StudentCountStatistics {
	stats := models.StudentCountStatistics{ActualStudents: len(students)}

	for _, student := range students {
		enrollment := student.Enrollment()
		if enrollment == nil || enrollment.Class == nil {
			continue
		}

		switch enrollment.Class.Type {
		case models.ClassOneOnOne:
			stats.OneOnOneStudents++
		case models.ClassGroup:
			stats.GroupStudents++
		}

		if enrollment.RoboticsOption {
			stats.RoboticsParticipants++
		} else {
			stats.RoboticsNonParticipants++
		}

		switch enrollment.PaymentType {
		case models.PaymentQuarterly:
			stats.QuarterlyPaymentStudents++
		default:
			stats.MonthlyPaymentStudents++
		}
	}

	stats.OneOnOneWeighted = stats.OneOnOneStudents * 2
	stats.GroupWeighted = stats.GroupStudents
	stats.WeightedCount = stats.OneOnOneWeighted + stats.GroupWeighted
	return stats
}

// MonthlyRevenue sums every student's monthly-equivalent net tuition.
func MonthlyRevenue(students []*models.Student) int {
	var revenue float64
	for _, student := range students {
		enrollment := student.Enrollment()
		if enrollment == nil || enrollment.Class == nil {
			continue
		}
		calc := CalculateTuition(student)
		monthly := float64(calc.NetAmount)
		if enrollment.PaymentType == models.PaymentQuarterly {
			monthly /= monthsPerQuarter
		}
		revenue += monthly
	}
	return int(math.Round(revenue))
}

// weekRange returns the Sunday through Saturday span containing date.
func weekRange(date time.Time) (time.Time, time.Time) {
	start := date.AddDate(0, 0, -int(date.Weekday()))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 6)
}

// weekNumber is the 1-based index of the week within its year.
func weekNumber(date time.Time) int {
	yearStart := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	days := int(date.Sub(yearStart).Hours()/24) + int(yearStart.Weekday())
	return days/7 + 1
}

// CalculateWeeklyStatistics snapshots the roster for the week containing
// date. Weekly revenue is a quarter of monthly revenue.
func CalculateWeeklyStatistics(students []*models.Student, date time.Time) models.WeeklyStatistics {
	start, end := weekRange(date)
	monthly := MonthlyRevenue(students)

	return models.WeeklyStatistics{
		StudentCountStatistics:  CalculateStudentCount(students),
		WeekStartDate:           start.Format("2006-01-02"),
		WeekEndDate:             end.Format("2006-01-02"),
		WeekNumber:              weekNumber(date),
		Year:                    date.Year(),
		WeeklyRevenue:           int(math.Round(float64(monthly) / weeksPerMonth)),
		ProjectedMonthlyRevenue: monthly,
	}
}

// CalculateMonthlyStatistics snapshots the roster for one calendar month.
func CalculateMonthlyStatistics(students []*models.Student, month, year int) models.MonthlyStatistics {
	return models.MonthlyStatistics{
		StudentCountStatistics: CalculateStudentCount(students),
		Month:                  month,
		Year:                   year,
		TotalRevenue:           MonthlyRevenue(students),
		RevenueByClassType:     RevenueByClassType(students),
	}
}

// RevenueByClassType splits monthly-equivalent revenue across 1:1 lessons,
// group lessons and the robotics add-on.
func RevenueByClassType(students []*models.Student) []models.ChartDataPoint {
	var oneOnOne, group, robotics float64

	for _, student := range students {
		enrollment := student.Enrollment()
		if enrollment == nil || enrollment.Class == nil {
			continue
		}

		calc := CalculateTuition(student)
		net := float64(calc.NetAmount)
		roboticsShare := float64(calc.RoboticsAmount)
		if calc.GrossAmount > 0 {
			// The discount applies across the whole gross, so the robotics
			// line carries its proportional share of the net.
			roboticsShare = net * float64(calc.RoboticsAmount) / float64(calc.GrossAmount)
		}
		classShare := net - roboticsShare

		if enrollment.PaymentType == models.PaymentQuarterly {
			classShare /= monthsPerQuarter
			roboticsShare /= monthsPerQuarter
		}

		switch enrollment.Class.Type {
		case models.ClassOneOnOne:
			oneOnOne += classShare
		case models.ClassGroup:
			group += classShare
		}
		robotics += roboticsShare
	}

	return []models.ChartDataPoint{
		{Label: "1:1 수업", Value: int(math.Round(oneOnOne))},
		{Label: "그룹 수업", Value: int(math.Round(group))},
		{Label: "로봇 수업", Value: int(math.Round(robotics))},
	}
}

// GenerateChartData builds the dashboard chart series from the roster.
func GenerateChartData(students []*models.Student) models.ChartData {
	counts := CalculateStudentCount(students)

	return models.ChartData{
		ClassTypeDistribution: []models.ChartDataPoint{
			{Label: "1:1 수업", Value: counts.OneOnOneStudents},
			{Label: "그룹 수업", Value: counts.GroupStudents},
		},
		RoboticsParticipation: []models.ChartDataPoint{
			{Label: "참여", Value: counts.RoboticsParticipants},
			{Label: "미참여", Value: counts.RoboticsNonParticipants},
		},
		PaymentTypeSplit: []models.ChartDataPoint{
			{Label: "월납", Value: counts.MonthlyPaymentStudents},
			{Label: "3개월납", Value: counts.QuarterlyPaymentStudents},
		},
		RevenueByClassType: RevenueByClassType(students),
	}
}

// ComparePeriods derives deltas and trend labels between two periods.
// Student counts trend on a two percent band, revenue on five.
func ComparePeriods(currentStudents, previousStudents, currentRevenue, previousRevenue int) models.PeriodComparison {
	comparison := models.PeriodComparison{
		StudentChange: delta(currentStudents, previousStudents),
		RevenueChange: delta(currentRevenue, previousRevenue),
	}
	comparison.StudentTrend = trendLabel(comparison.StudentChange.Percentage, 2)
	comparison.RevenueTrend = trendLabel(comparison.RevenueChange.Percentage, 5)
	return comparison
}

func delta(current, previous int) models.Delta {
	d := models.Delta{Absolute: current - previous}
	if previous != 0 {
		d.Percentage = math.Round(float64(current-previous)/float64(previous)*1000) / 10
	} else if current != 0 {
		d.Percentage = 100
	}
	return d
}

func trendLabel(percentage, band float64) string {
	switch {
	case percentage > band:
		return "increasing"
	case percentage < -band:
		return "decreasing"
	}
	return "stable"
}
