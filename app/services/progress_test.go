package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

func TestApplyAttendanceActionSaturates(t *testing.T) {
	assert.Equal(t, 1, ApplyAttendanceAction(0, 4, models.ActionIncrement))
	assert.Equal(t, 4, ApplyAttendanceAction(4, 4, models.ActionIncrement))
	assert.Equal(t, 11, ApplyAttendanceAction(11, 11, models.ActionIncrement))

	assert.Equal(t, 0, ApplyAttendanceAction(0, 4, models.ActionDecrement))
	assert.Equal(t, 3, ApplyAttendanceAction(4, 4, models.ActionDecrement))

	assert.Equal(t, 0, ApplyAttendanceAction(7, 11, models.ActionReset))
	assert.Equal(t, 5, ApplyAttendanceAction(5, 11, models.AttendanceAction("bogus")))
}

func TestApplyAttendanceActionRoundTrip(t *testing.T) {
	for week := 1; week < 11; week++ {
		up := ApplyAttendanceAction(week, 11, models.ActionIncrement)
		down := ApplyAttendanceAction(up, 11, models.ActionDecrement)
		assert.Equal(t, week, down)
	}
}

func TestClampWeekForCourse(t *testing.T) {
	oneMonth := models.CourseConfigs[models.CourseOneMonth]
	threeMonth := models.CourseConfigs[models.CourseThreeMonth]

	// A student nine weeks into a quarterly course moved onto the monthly
	// course lands on its final week.
	assert.Equal(t, 4, ClampWeekForCourse(9, oneMonth))
	assert.Equal(t, 2, ClampWeekForCourse(2, oneMonth))
	assert.Equal(t, 9, ClampWeekForCourse(9, threeMonth))
	assert.Equal(t, 0, ClampWeekForCourse(-1, oneMonth))

	// Clamping twice changes nothing.
	assert.Equal(t, ClampWeekForCourse(9, oneMonth), ClampWeekForCourse(ClampWeekForCourse(9, oneMonth), oneMonth))
}

func TestCalculateWeekStats(t *testing.T) {
	stats := CalculateWeekStats(4, models.CourseOneMonth)
	assert.True(t, stats.IsComplete)
	assert.True(t, stats.IsFeedbackWeek)
	assert.Equal(t, 100, stats.ProgressPercentage)
	assert.Equal(t, 0, stats.WeeksRemaining)

	stats = CalculateWeekStats(3, models.CourseOneMonth)
	assert.False(t, stats.IsComplete)
	assert.True(t, stats.IsFeedbackWeek)
	assert.Equal(t, 75, stats.ProgressPercentage)

	stats = CalculateWeekStats(10, models.CourseThreeMonth)
	assert.True(t, stats.IsFeedbackWeek)
	assert.Equal(t, 91, stats.ProgressPercentage)
	assert.Equal(t, 1, stats.WeeksRemaining)

	stats = CalculateWeekStats(0, models.CourseThreeMonth)
	assert.Equal(t, 0, stats.ProgressPercentage)
	assert.Equal(t, 11, stats.WeeksRemaining)
}

func TestProgressStatusTextPrecedence(t *testing.T) {
	// Completion wins over everything else.
	assert.Equal(t, "과정 완료", ProgressStatusText(4, models.CourseOneMonth))
	assert.Equal(t, "과정 완료", ProgressStatusText(11, models.CourseThreeMonth))

	// Feedback week beats the almost-done label.
	assert.Equal(t, "피드백 작성 주간", ProgressStatusText(3, models.CourseOneMonth))
	assert.Equal(t, "피드백 작성 주간", ProgressStatusText(10, models.CourseThreeMonth))

	assert.Equal(t, "2/4주차 진행 중", ProgressStatusText(2, models.CourseOneMonth))
	assert.Equal(t, "5/11주차 진행 중", ProgressStatusText(5, models.CourseThreeMonth))
}

func TestGaugeColorClass(t *testing.T) {
	assert.Equal(t, "bg-green-500", GaugeColorClass(4, models.CourseOneMonth))
	assert.Equal(t, "bg-orange-500", GaugeColorClass(3, models.CourseOneMonth))
	assert.Equal(t, "bg-blue-500", GaugeColorClass(9, models.CourseThreeMonth))
	assert.Equal(t, "bg-blue-400", GaugeColorClass(6, models.CourseThreeMonth))
	assert.Equal(t, "bg-blue-300", GaugeColorClass(1, models.CourseThreeMonth))
}

func TestSummarizeProgress(t *testing.T) {
	records := []*models.AttendanceProgress{
		{CurrentWeek: 4, TotalWeeks: 4, CourseType: models.CourseOneMonth},
		{CurrentWeek: 3, TotalWeeks: 4, CourseType: models.CourseOneMonth},
		{CurrentWeek: 0, TotalWeeks: 11, CourseType: models.CourseThreeMonth},
	}

	overview := SummarizeProgress(records)
	assert.Equal(t, 3, overview.TotalTracked)
	assert.Equal(t, 1, overview.CompletedStudents)
	assert.Equal(t, 1, overview.NearFeedbackStudents)
	// (100 + 75 + 0) / 3
	assert.Equal(t, 58, overview.AverageProgress)

	assert.Equal(t, models.ProgressOverview{}, SummarizeProgress(nil))
}
