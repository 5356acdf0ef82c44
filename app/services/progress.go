package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// ErrProgressNotFound is returned when a student has no attendance progress
// record.
var ErrProgressNotFound = errors.New("attendance progress not found")

// ApplyAttendanceAction returns the new week value after an action. The
// counter saturates at its bounds instead of erroring; the UI disables the
// buttons there, and a stale click should not fail the request.
func ApplyAttendanceAction(currentWeek, totalWeeks int, action models.AttendanceAction) int {
	switch action {
	case models.ActionIncrement:
		if currentWeek >= totalWeeks {
			return totalWeeks
		}
		return currentWeek + 1
	case models.ActionDecrement:
		if currentWeek <= 0 {
			return 0
		}
		return currentWeek - 1
	case models.ActionReset:
		return 0
	}
	return currentWeek
}

// ClampWeekForCourse fits an existing week value into a course's range.
func ClampWeekForCourse(currentWeek int, cfg models.CourseConfig) int {
	if currentWeek > cfg.TotalWeeks {
		return cfg.TotalWeeks
	}
	if currentWeek < 0 {
		return 0
	}
	return currentWeek
}

// WeekStats is the derived view of one progress record.
type WeekStats struct {
	CurrentWeek        int  `json:"current_week"`
	TotalWeeks         int  `json:"total_weeks"`
	ProgressPercentage int  `json:"progress_percentage"`
	IsFeedbackWeek     bool `json:"is_feedback_week"`
	IsComplete         bool `json:"is_complete"`
	WeeksRemaining     int  `json:"weeks_remaining"`
}

// CalculateWeekStats derives completion, feedback timing and percentage for
// a week counter.
func CalculateWeekStats(currentWeek int, courseType models.CourseType) WeekStats {
	cfg, ok := models.CourseConfigs[courseType]
	if !ok {
		cfg = models.CourseConfigs[models.CourseOneMonth]
	}

	stats := WeekStats{
		CurrentWeek:    currentWeek,
		TotalWeeks:     cfg.TotalWeeks,
		IsFeedbackWeek: currentWeek >= cfg.FeedbackWeek,
		IsComplete:     currentWeek >= cfg.TotalWeeks,
		WeeksRemaining: cfg.TotalWeeks - currentWeek,
	}
	if cfg.TotalWeeks > 0 {
		stats.ProgressPercentage = int(math.Round(float64(currentWeek) / float64(cfg.TotalWeeks) * 100))
	}
	return stats
}

// ProgressStatusText renders a short Korean status line for a gauge.
// Completion wins over feedback week, which wins over almost-done.
func ProgressStatusText(currentWeek int, courseType models.CourseType) string {
	stats := CalculateWeekStats(currentWeek, courseType)
	switch {
	case stats.IsComplete:
		return "과정 완료"
	case stats.IsFeedbackWeek:
		return "피드백 작성 주간"
	case stats.WeeksRemaining <= 1:
		return "과정 마무리 단계"
	}
	return fmt.Sprintf("%d/%d주차 진행 중", currentWeek, stats.TotalWeeks)
}

// GaugeColorClass maps progress onto the CSS class the frontend gauges use.
func GaugeColorClass(currentWeek int, courseType models.CourseType) string {
	stats := CalculateWeekStats(currentWeek, courseType)
	switch {
	case stats.IsComplete:
		return "bg-green-500"
	case stats.IsFeedbackWeek:
		return "bg-orange-500"
	case stats.ProgressPercentage >= 75:
		return "bg-blue-500"
	case stats.ProgressPercentage >= 50:
		return "bg-blue-400"
	}
	return "bg-blue-300"
}

// GetProgressByStudent fetches one student's week counter.
func GetProgressByStudent(db *sql.DB, studentID string) (*models.AttendanceProgress, error) {
	progress, err := database.GetProgressByStudent(db, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// EnsureProgress returns a student's record, creating a zeroed one from
// their billing cadence for students who predate progress tracking.
func EnsureProgress(db *sql.DB, studentID string) (*models.AttendanceProgress, error) {
	record, err := GetProgressByStudent(db, studentID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrProgressNotFound) {
		return nil, err
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return nil, ErrProgressNotFound
	}
	courseType := models.CourseOneMonth
	if enrollment := student.Enrollment(); enrollment != nil {
		courseType = models.CourseTypeForPayment(enrollment.PaymentType)
	}
	return database.InsertProgress(db, studentID, student.TeacherID, courseType)
}

// UpdateProgress applies one attendance action to a student. An increment
// stamps the attendance date.
func UpdateProgress(db *sql.DB, studentID string, action models.AttendanceAction) (*models.AttendanceProgress, error) {
	current, err := GetProgressByStudent(db, studentID)
	if err != nil {
		return nil, err
	}

	week := ApplyAttendanceAction(current.CurrentWeek, current.TotalWeeks, action)
	lastAttendance := current.LastAttendanceDate
	if action == models.ActionIncrement {
		now := time.Now()
		lastAttendance = &now
	}
	return database.UpdateProgressWeek(db, studentID, week, lastAttendance)
}

// SetProgressWeek jumps a student's counter to an explicit week, clamped to
// the course range.
func SetProgressWeek(db *sql.DB, studentID string, week int) (*models.AttendanceProgress, error) {
	current, err := GetProgressByStudent(db, studentID)
	if err != nil {
		return nil, err
	}

	if week < 0 {
		week = 0
	}
	if week > current.TotalWeeks {
		week = current.TotalWeeks
	}
	return database.UpdateProgressWeek(db, studentID, week, current.LastAttendanceDate)
}

// AdjustForCourseType moves a student onto the canonical totals for a
// course type, clamping the current week when the course shrinks. Calling
// it again with the same course type is a no-op.
func AdjustForCourseType(db *sql.DB, studentID string, courseType models.CourseType) (*models.AttendanceProgress, error) {
	cfg, ok := models.CourseConfigs[courseType]
	if !ok {
		return nil, fmt.Errorf("unknown course type %q", courseType)
	}

	current, err := GetProgressByStudent(db, studentID)
	if err != nil {
		return nil, err
	}

	week := ClampWeekForCourse(current.CurrentWeek, cfg)
	return database.AdjustProgressCourseType(db, studentID, courseType, cfg.TotalWeeks, week)
}

// GetProgressByTeacher lists a teacher's progress records, reconciling any
// record whose course type has drifted from the student's billing cadence.
// A failed reconciliation logs and returns the stale record rather than
// dropping the student from the list.
func GetProgressByTeacher(db *sql.DB, teacherID string) ([]*models.AttendanceProgress, error) {
	rows, err := database.GetProgressByTeacher(db, teacherID)
	if err != nil {
		return nil, err
	}

	records := make([]*models.AttendanceProgress, 0, len(rows))
	for _, row := range rows {
		progress := row.AttendanceProgress
		if adjusted := reconcileRecord(db, &progress, row.PaymentType); adjusted != nil {
			progress = *adjusted
		}
		p := progress
		records = append(records, &p)
	}
	return records, nil
}

// reconcileRecord adjusts one drifted record, returning nil when the record
// already matches its billing cadence or the adjustment failed.
func reconcileRecord(db *sql.DB, progress *models.AttendanceProgress, paymentType models.PaymentType) *models.AttendanceProgress {
	want := models.CourseTypeForPayment(paymentType)
	cfg := models.CourseConfigs[want]
	if progress.CourseType == want && progress.TotalWeeks == cfg.TotalWeeks {
		return nil
	}

	adjusted, err := AdjustForCourseType(db, progress.StudentID, want)
	if err != nil {
		log.Printf("Progress reconciliation failed for student %s: %v", progress.StudentID, err)
		return nil
	}
	adjusted.StudentName = progress.StudentName
	return adjusted
}

// ReconcileAllProgress sweeps every progress record against its student's
// billing cadence. Used by the nightly scheduler.
func ReconcileAllProgress(db *sql.DB) error {
	rows, err := database.GetAllProgressWithBilling(db)
	if err != nil {
		return err
	}

	adjusted := 0
	for _, row := range rows {
		progress := row.AttendanceProgress
		if reconcileRecord(db, &progress, row.PaymentType) != nil {
			adjusted++
		}
	}
	if adjusted > 0 {
		log.Printf("Progress reconciliation adjusted %d record(s)", adjusted)
	}
	return nil
}

// BatchProgressResult is the per-student outcome of a batch update.
type BatchProgressResult struct {
	StudentID string                     `json:"student_id"`
	Progress  *models.AttendanceProgress `json:"progress,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// BatchUpdateProgress applies one action to many students. Each update
// touches a single row keyed by student, so the updates run concurrently
// and one failure never aborts the rest.
func BatchUpdateProgress(db *sql.DB, studentIDs []string, action models.AttendanceAction) []BatchProgressResult {
	results := make([]BatchProgressResult, len(studentIDs))

	var wg sync.WaitGroup
	for i, studentID := range studentIDs {
		wg.Add(1)
		go func(i int, studentID string) {
			defer wg.Done()
			results[i] = BatchProgressResult{StudentID: studentID}
			progress, err := UpdateProgress(db, studentID, action)
			if err != nil {
				results[i].Error = err.Error()
				return
			}
			results[i].Progress = progress
		}(i, studentID)
	}
	wg.Wait()
	return results
}

// SummarizeProgress aggregates progress records for the dashboard.
func SummarizeProgress(records []*models.AttendanceProgress) models.ProgressOverview {
	overview := models.ProgressOverview{TotalTracked: len(records)}
	if len(records) == 0 {
		return overview
	}

	var sum int
	for _, p := range records {
		stats := CalculateWeekStats(p.CurrentWeek, p.CourseType)
		if stats.IsComplete {
			overview.CompletedStudents++
		} else if stats.IsFeedbackWeek {
			overview.NearFeedbackStudents++
		}
		sum += stats.ProgressPercentage
	}
	overview.AverageProgress = int(math.Round(float64(sum) / float64(len(records))))
	return overview
}
