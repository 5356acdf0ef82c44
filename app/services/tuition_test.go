package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

func testStudent(classType models.ClassType, duration string, paymentType models.PaymentType, robotics bool, paymentDay int) *models.Student {
	return &models.Student{
		ID:   "11111111-1111-1111-1111-111111111111",
		Name: "김지민",
		Classes: []*models.StudentClass{{
			PaymentType:    paymentType,
			PaymentDay:     paymentDay,
			RoboticsOption: robotics,
			Class:          &models.Class{ID: "c1", Type: classType, Duration: duration},
		}},
	}
}

func TestParseClassDuration(t *testing.T) {
	assert.Equal(t, 1.0, ParseClassDuration("1 hour"))
	assert.Equal(t, 1.5, ParseClassDuration("1.5 hours"))
	assert.Equal(t, 2.0, ParseClassDuration("2시간"))
	assert.Equal(t, 1.5, ParseClassDuration("90분 수업 1.4"))
	assert.Equal(t, 2.0, ParseClassDuration("2.5"))
	assert.Equal(t, 1.0, ParseClassDuration("unknown"))
	assert.Equal(t, 1.0, ParseClassDuration(""))
}

func TestCalculateTuitionOneOnOneMonthlyWithRobotics(t *testing.T) {
	student := testStudent(models.ClassOneOnOne, "1 hour", models.PaymentMonthly, true, 15)
	calc := CalculateTuition(student)

	assert.Equal(t, 200000, calc.BaseAmount)
	assert.Equal(t, 30000, calc.RoboticsAmount)
	assert.Equal(t, 230000, calc.GrossAmount)
	assert.Equal(t, 0, calc.DiscountRate)
	assert.Equal(t, 0, calc.DiscountAmount)
	assert.Empty(t, calc.DiscountPolicies)
	assert.Equal(t, 230000, calc.NetAmount)
	assert.Equal(t, 230000, calc.MonthlyRate)
	assert.Equal(t, 57500, calc.WeeklyRate)
}

func TestCalculateTuitionGroupQuarterlyNoRobotics(t *testing.T) {
	student := testStudent(models.ClassGroup, "2 hours", models.PaymentQuarterly, false, 1)
	calc := CalculateTuition(student)

	assert.Equal(t, 750000, calc.BaseAmount)
	assert.Equal(t, 0, calc.RoboticsAmount)
	assert.Equal(t, 750000, calc.GrossAmount)
	assert.Equal(t, 15, calc.DiscountRate)
	assert.Equal(t, 112500, calc.DiscountAmount)
	assert.Len(t, calc.DiscountPolicies, 2)
	assert.Equal(t, 637500, calc.NetAmount)
	assert.Equal(t, 212500, calc.MonthlyRate)
	assert.Equal(t, 57955, calc.WeeklyRate)
}

func TestCalculateTuitionWithOverrides(t *testing.T) {
	// Stored enrollment: monthly with robotics. Quoting a switch to
	// quarterly without robotics must not read the stored terms.
	student := testStudent(models.ClassOneOnOne, "1 hour", models.PaymentMonthly, true, 15)
	calc := CalculateTuitionWith(student, models.PaymentQuarterly, false)

	assert.Equal(t, 550000, calc.BaseAmount)
	assert.Equal(t, 0, calc.RoboticsAmount)
	assert.Equal(t, 15, calc.DiscountRate)
	assert.Equal(t, 467500, calc.NetAmount)
}

func TestCalculateTuitionInvariants(t *testing.T) {
	classTypes := []models.ClassType{models.ClassOneOnOne, models.ClassGroup}
	durations := []string{"1 hour", "1.5 hours", "2 hours"}
	paymentTypes := []models.PaymentType{models.PaymentMonthly, models.PaymentQuarterly}

	for _, ct := range classTypes {
		for _, d := range durations {
			for _, pt := range paymentTypes {
				for _, robotics := range []bool{true, false} {
					calc := CalculateTuition(testStudent(ct, d, pt, robotics, 10))

					assert.Equal(t, calc.BaseAmount+calc.RoboticsAmount, calc.GrossAmount)
					assert.Equal(t, calc.GrossAmount-calc.DiscountAmount, calc.NetAmount)
					assert.GreaterOrEqual(t, calc.NetAmount, 0)
					assert.Contains(t, []int{0, 5, 10, 15}, calc.DiscountRate)
					assert.Len(t, calc.DiscountPolicies, countPolicies(pt, robotics))
				}
			}
		}
	}
}

func countPolicies(pt models.PaymentType, robotics bool) int {
	n := 0
	if !robotics {
		n++
	}
	if pt == models.PaymentQuarterly {
		n++
	}
	return n
}

func TestCalculateTuitionWithoutClassLink(t *testing.T) {
	student := &models.Student{ID: "s-empty", Name: "미배정"}
	calc := CalculateTuition(student)

	assert.Equal(t, 0, calc.GrossAmount)
	assert.Equal(t, 0, calc.NetAmount)
	assert.Equal(t, 0, calc.DiscountAmount)
	assert.NotEmpty(t, calc.PaymentPeriodStart)
	assert.NotEmpty(t, calc.PaymentPeriodEnd)
}

func TestPaymentPeriod(t *testing.T) {
	now := time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC)

	start, end := paymentPeriodAt(models.PaymentMonthly, now)
	assert.Equal(t, "2025-02-01", start)
	assert.Equal(t, "2025-02-28", end)

	start, end = paymentPeriodAt(models.PaymentQuarterly, now)
	assert.Equal(t, "2025-02-01", start)
	assert.Equal(t, "2025-04-30", end)
}

func TestNextPaymentDateClampsShortMonths(t *testing.T) {
	last := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	next := nextPaymentDateAt(31, &last, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), next)

	last = time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	next = nextPaymentDateAt(31, &last, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), next)
}

func TestNextPaymentDateWithoutHistory(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	next := nextPaymentDateAt(15, nil, now)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), next)

	next = nextPaymentDateAt(5, nil, now)
	assert.Equal(t, time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC), next)
}

func TestNextPaymentDateDecemberRollover(t *testing.T) {
	last := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	next := nextPaymentDateAt(20, &last, time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), next)
}

func TestPaymentStatusBoundaries(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	info := paymentStatusAt(day(-1), now)
	assert.Equal(t, models.PaymentOverdue, info.Status)
	assert.Equal(t, -1, info.DaysUntilDue)

	info = paymentStatusAt(day(0), now)
	assert.Equal(t, models.PaymentDue, info.Status)
	assert.Equal(t, 0, info.DaysUntilDue)

	info = paymentStatusAt(day(3), now)
	assert.Equal(t, models.PaymentDue, info.Status)

	info = paymentStatusAt(day(4), now)
	assert.Equal(t, models.PaymentUpcoming, info.Status)
	assert.Equal(t, 4, info.DaysUntilDue)
}

func TestGeneratePaymentSummary(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	students := []*models.Student{
		// 230000 monthly
		testStudent(models.ClassOneOnOne, "1 hour", models.PaymentMonthly, true, 12),
		// 637500 quarterly -> 212500 monthly equivalent
		testStudent(models.ClassGroup, "2 hours", models.PaymentQuarterly, false, 25),
	}

	summary := generatePaymentSummaryAt(students, now)
	require.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 442500, summary.TotalMonthlyRevenue)
	assert.Equal(t, 0, summary.OverduePayments)
	assert.Equal(t, 2, summary.UpcomingPayments)
	// Day 12 is two days out; day 25 is beyond the week.
	assert.Equal(t, 1, summary.PaymentsDueThisWeek)
}

func TestGeneratePaymentSummarySkipsBrokenRecords(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	students := []*models.Student{
		testStudent(models.ClassOneOnOne, "1 hour", models.PaymentMonthly, true, 12),
		{ID: "s-broken", Name: "링크 없음"},
	}

	summary := generatePaymentSummaryAt(students, now)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 230000, summary.TotalMonthlyRevenue)
	assert.Equal(t, 1, summary.UpcomingPayments)
}
