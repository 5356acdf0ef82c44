package services

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// Base tuition rates in won, keyed by lesson hours. One-on-one rates are per
// week, group rates per month.
var (
	oneOnOneWeeklyRates = map[float64]int{1: 50000, 1.5: 70000, 2: 90000}
	groupMonthlyRates   = map[float64]int{1: 150000, 1.5: 200000, 2: 250000}
)

// The robotics add-on is a flat monthly fee on top of the class rate.
const roboticsMonthlyRate = 30000

// A monthly billing month covers 4 lesson weeks; a quarter covers 11.
const (
	weeksPerMonth    = 4
	weeksPerQuarter  = 11
	monthsPerQuarter = 3
)

// Discount percentages stack additively and apply to the gross amount in a
// single rounding step.
const (
	noRoboticsDiscountRate = 10
	quarterlyDiscountRate  = 5

	noRoboticsDiscountLabel = "로봇 미참여 할인 (10%)"
	quarterlyDiscountLabel  = "3개월 선납 할인 (5%)"
)

var durationPattern = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// ParseClassDuration extracts the leading number from a free-form duration
// string ("1.5 hours", "2시간") and snaps it to the nearest rate tier of
// 1, 1.5 or 2 hours. Unparseable input falls back to 1 hour.
func ParseClassDuration(s string) float64 {
	match := durationPattern.FindString(s)
	if match == "" {
		return 1
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 1
	}

	best, bestDiff := 1.0, math.MaxFloat64
	for _, tier := range []float64{1, 1.5, 2} {
		if diff := math.Abs(v - tier); diff < bestDiff {
			best, bestDiff = tier, diff
		}
	}
	return best
}

// CalculateTuition produces the billing breakdown for one student using the
// cadence and robotics choice stored on their enrollment.
func CalculateTuition(student *models.Student) models.TuitionCalculation {
	enrollment := student.Enrollment()
	if enrollment == nil {
		return calculateTuitionAt(student, models.PaymentMonthly, false, time.Now())
	}
	return calculateTuitionAt(student, enrollment.PaymentType, enrollment.RoboticsOption, time.Now())
}

// CalculateTuitionWith computes the breakdown under an explicit cadence and
// robotics choice, for quoting a change before saving it.
func CalculateTuitionWith(student *models.Student, paymentType models.PaymentType, roboticsIncluded bool) models.TuitionCalculation {
	return calculateTuitionAt(student, paymentType, roboticsIncluded, time.Now())
}

// calculateTuitionAt is a total function: a student with no class link
// yields a zero-amount breakdown so billing views keep rendering
// mid-enrollment.
func calculateTuitionAt(student *models.Student, paymentType models.PaymentType, roboticsIncluded bool, now time.Time) models.TuitionCalculation {
	calc := models.TuitionCalculation{
		StudentID:        student.ID,
		StudentName:      student.Name,
		PaymentType:      paymentType,
		DiscountPolicies: []string{},
	}

	enrollment := student.Enrollment()
	if enrollment == nil || enrollment.Class == nil {
		start, end := paymentPeriodAt(paymentType, now)
		calc.PaymentPeriodStart, calc.PaymentPeriodEnd = start, end
		return calc
	}

	calc.ClassType = enrollment.Class.Type
	calc.Duration = ParseClassDuration(enrollment.Class.Duration)
	calc.RoboticsIncluded = roboticsIncluded

	calc.BaseAmount = baseAmount(calc.ClassType, calc.Duration, calc.PaymentType)
	if calc.RoboticsIncluded {
		calc.RoboticsAmount = roboticsAmount(calc.PaymentType)
	}
	calc.GrossAmount = calc.BaseAmount + calc.RoboticsAmount

	if !calc.RoboticsIncluded {
		calc.DiscountRate += noRoboticsDiscountRate
		calc.DiscountPolicies = append(calc.DiscountPolicies, noRoboticsDiscountLabel)
	}
	if calc.PaymentType == models.PaymentQuarterly {
		calc.DiscountRate += quarterlyDiscountRate
		calc.DiscountPolicies = append(calc.DiscountPolicies, quarterlyDiscountLabel)
	}
	calc.DiscountAmount = int(math.Round(float64(calc.GrossAmount) * float64(calc.DiscountRate) / 100))
	calc.NetAmount = calc.GrossAmount - calc.DiscountAmount

	weeks := weeksPerMonth
	calc.MonthlyRate = calc.NetAmount
	if calc.PaymentType == models.PaymentQuarterly {
		weeks = weeksPerQuarter
		calc.MonthlyRate = int(math.Round(float64(calc.NetAmount) / monthsPerQuarter))
	}
	calc.WeeklyRate = int(math.Round(float64(calc.NetAmount) / float64(weeks)))

	calc.PaymentPeriodStart, calc.PaymentPeriodEnd = paymentPeriodAt(calc.PaymentType, now)
	return calc
}

func baseAmount(classType models.ClassType, duration float64, paymentType models.PaymentType) int {
	switch classType {
	case models.ClassOneOnOne:
		weeks := weeksPerMonth
		if paymentType == models.PaymentQuarterly {
			weeks = weeksPerQuarter
		}
		return oneOnOneWeeklyRates[duration] * weeks
	case models.ClassGroup:
		rate := groupMonthlyRates[duration]
		if paymentType == models.PaymentQuarterly {
			rate *= monthsPerQuarter
		}
		return rate
	}
	return 0
}

func roboticsAmount(paymentType models.PaymentType) int {
	if paymentType == models.PaymentQuarterly {
		return roboticsMonthlyRate * monthsPerQuarter
	}
	return roboticsMonthlyRate
}

// paymentPeriodAt returns the billing period containing now: the current
// calendar month, or the current plus two following months for quarterly.
func paymentPeriodAt(paymentType models.PaymentType, now time.Time) (string, string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := 1
	if paymentType == models.PaymentQuarterly {
		months = monthsPerQuarter
	}
	end := start.AddDate(0, months, 0).AddDate(0, 0, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func clampDay(day, year int, month time.Month) int {
	if last := daysInMonth(year, month); day > last {
		return last
	}
	return day
}

// NextPaymentDate returns the next date a student owes payment on. With a
// last payment date the next one falls a calendar month later on the billing
// day; otherwise it is the billing day of this month, or next month if that
// has already passed. Days beyond the end of a month clamp to its last day.
func NextPaymentDate(paymentDay int, lastPaymentDate *time.Time) time.Time {
	return nextPaymentDateAt(paymentDay, lastPaymentDate, time.Now())
}

func nextPaymentDateAt(paymentDay int, lastPaymentDate *time.Time, now time.Time) time.Time {
	if lastPaymentDate != nil {
		year, month := lastPaymentDate.Year(), lastPaymentDate.Month()
		month++
		if month > time.December {
			month = time.January
			year++
		}
		return time.Date(year, month, clampDay(paymentDay, year, month), 0, 0, 0, 0, now.Location())
	}

	year, month := now.Year(), now.Month()
	candidate := time.Date(year, month, clampDay(paymentDay, year, month), 0, 0, 0, 0, now.Location())
	if candidate.After(now) {
		return candidate
	}
	month++
	if month > time.December {
		month = time.January
		year++
	}
	return time.Date(year, month, clampDay(paymentDay, year, month), 0, 0, 0, 0, now.Location())
}

// GetPaymentStatus classifies a payment date: overdue once it has passed,
// due within three days, otherwise upcoming. DaysUntilDue is negative when
// overdue.
func GetPaymentStatus(nextPaymentDate time.Time) models.PaymentStatusInfo {
	return paymentStatusAt(nextPaymentDate, time.Now())
}

func paymentStatusAt(nextPaymentDate, now time.Time) models.PaymentStatusInfo {
	days := int(math.Ceil(nextPaymentDate.Sub(now).Hours() / 24))
	status := models.PaymentUpcoming
	switch {
	case days < 0:
		status = models.PaymentOverdue
	case days <= 3:
		status = models.PaymentDue
	}
	return models.PaymentStatusInfo{Status: status, DaysUntilDue: days}
}

// GeneratePaymentSummary rolls the roster up into dashboard totals.
// Quarterly tuition contributes a third of its net amount to monthly
// revenue. Students without a class link are logged and skipped so one bad
// record never takes down the rollup.
func GeneratePaymentSummary(students []*models.Student) models.PaymentSummary {
	return generatePaymentSummaryAt(students, time.Now())
}

func generatePaymentSummaryAt(students []*models.Student, now time.Time) models.PaymentSummary {
	summary := models.PaymentSummary{TotalStudents: len(students)}
	var revenue float64

	for _, student := range students {
		enrollment := student.Enrollment()
		if enrollment == nil || enrollment.Class == nil {
			log.Printf("Payment summary: student %s (%s) has no class link, skipping", student.Name, student.ID)
			continue
		}

		calc := calculateTuitionAt(student, enrollment.PaymentType, enrollment.RoboticsOption, now)
		monthly := float64(calc.NetAmount)
		if enrollment.PaymentType == models.PaymentQuarterly {
			monthly /= monthsPerQuarter
		}
		revenue += monthly

		info := paymentStatusAt(nextPaymentDateAt(enrollment.PaymentDay, nil, now), now)
		switch info.Status {
		case models.PaymentOverdue:
			summary.OverduePayments++
		default:
			summary.UpcomingPayments++
			if info.DaysUntilDue <= 7 {
				summary.PaymentsDueThisWeek++
			}
		}
	}

	summary.TotalMonthlyRevenue = int(math.Round(revenue))
	return summary
}
