package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

func rosterForStats() []*models.Student {
	return []*models.Student{
		testStudent(models.ClassOneOnOne, "1 hour", models.PaymentMonthly, true, 10),
		testStudent(models.ClassOneOnOne, "2 hours", models.PaymentQuarterly, false, 10),
		testStudent(models.ClassGroup, "1.5 hours", models.PaymentMonthly, false, 10),
		testStudent(models.ClassGroup, "1 hour", models.PaymentMonthly, true, 10),
	}
}

func TestCalculateStudentCountWeighting(t *testing.T) {
	stats := CalculateStudentCount(rosterForStats())

	assert.Equal(t, 4, stats.ActualStudents)
	assert.Equal(t, 2, stats.OneOnOneStudents)
	assert.Equal(t, 2, stats.GroupStudents)
	// 1:1 students count double.
	assert.Equal(t, 4, stats.OneOnOneWeighted)
	assert.Equal(t, 2, stats.GroupWeighted)
	assert.Equal(t, 6, stats.WeightedCount)

	assert.Equal(t, 2, stats.RoboticsParticipants)
	assert.Equal(t, 2, stats.RoboticsNonParticipants)
	assert.Equal(t, 3, stats.MonthlyPaymentStudents)
	assert.Equal(t, 1, stats.QuarterlyPaymentStudents)
}

func TestCalculateStudentCountSkipsUnlinked(t *testing.T) {
	students := append(rosterForStats(), &models.Student{ID: "s-x", Name: "미배정"})
	stats := CalculateStudentCount(students)

	assert.Equal(t, 5, stats.ActualStudents)
	assert.Equal(t, 6, stats.WeightedCount)
}

func TestWeekRange(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week runs Sunday the 9th through
	// Saturday the 15th.
	date := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)
	start, end := weekRange(date)

	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), end)

	// A Sunday starts its own week.
	sunday := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	start, _ = weekRange(sunday)
	assert.Equal(t, sunday, start)
}

func TestCalculateWeeklyStatistics(t *testing.T) {
	date := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	stats := CalculateWeeklyStatistics(rosterForStats(), date)

	assert.Equal(t, "2025-03-09", stats.WeekStartDate)
	assert.Equal(t, "2025-03-15", stats.WeekEndDate)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, stats.ProjectedMonthlyRevenue, MonthlyRevenue(rosterForStats()))
	assert.Equal(t, stats.ProjectedMonthlyRevenue/4, stats.WeeklyRevenue)
}

func TestCalculateMonthlyStatistics(t *testing.T) {
	roster := rosterForStats()
	stats := CalculateMonthlyStatistics(roster, 3, 2025)

	assert.Equal(t, 3, stats.Month)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, MonthlyRevenue(roster), stats.TotalRevenue)

	var split int
	for _, point := range stats.RevenueByClassType {
		split += point.Value
	}
	// The class-type split re-sums to total revenue within rounding.
	assert.InDelta(t, stats.TotalRevenue, split, 3)
}

func TestGenerateChartData(t *testing.T) {
	charts := GenerateChartData(rosterForStats())

	assert.Equal(t, 2, charts.ClassTypeDistribution[0].Value)
	assert.Equal(t, 2, charts.ClassTypeDistribution[1].Value)
	assert.Equal(t, 2, charts.RoboticsParticipation[0].Value)
	assert.Equal(t, 3, charts.PaymentTypeSplit[0].Value)
	assert.Equal(t, 1, charts.PaymentTypeSplit[1].Value)
	assert.Len(t, charts.RevenueByClassType, 3)
}

func TestComparePeriods(t *testing.T) {
	cmp := ComparePeriods(12, 10, 2200000, 2000000)
	assert.Equal(t, 2, cmp.StudentChange.Absolute)
	assert.InDelta(t, 20.0, cmp.StudentChange.Percentage, 0.01)
	assert.Equal(t, "increasing", cmp.StudentTrend)
	assert.InDelta(t, 10.0, cmp.RevenueChange.Percentage, 0.01)
	assert.Equal(t, "increasing", cmp.RevenueTrend)

	cmp = ComparePeriods(10, 10, 2000000, 2030000)
	assert.Equal(t, "stable", cmp.StudentTrend)
	assert.Equal(t, "stable", cmp.RevenueTrend)

	cmp = ComparePeriods(8, 10, 1700000, 2000000)
	assert.Equal(t, "decreasing", cmp.StudentTrend)
	assert.Equal(t, "decreasing", cmp.RevenueTrend)

	// An empty previous period counts as full growth, not a division error.
	cmp = ComparePeriods(5, 0, 500000, 0)
	assert.InDelta(t, 100.0, cmp.StudentChange.Percentage, 0.01)
}
