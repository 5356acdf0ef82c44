package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// ProgressWithBilling pairs a progress record with the student's billing
// cadence so callers can check for course-type drift.
type ProgressWithBilling struct {
	models.AttendanceProgress
	PaymentType models.PaymentType
}

const progressSelect = `
	SELECT p.id, p.student_id, p.teacher_id, p.current_week, p.total_weeks, p.course_type,
	       p.last_attendance_date, p.created_at, p.updated_at, s.name
	FROM student_attendance_progress p
	JOIN students s ON s.id = p.student_id`

func scanProgress(row interface {
	Scan(dest ...interface{}) error
}) (*models.AttendanceProgress, error) {
	var p models.AttendanceProgress
	err := row.Scan(&p.ID, &p.StudentID, &p.TeacherID, &p.CurrentWeek, &p.TotalWeeks, &p.CourseType,
		&p.LastAttendanceDate, &p.CreatedAt, &p.UpdatedAt, &p.StudentName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProgressByStudent fetches one student's week counter. Returns
// sql.ErrNoRows when the student has no progress record.
func GetProgressByStudent(db *sql.DB, studentID string) (*models.AttendanceProgress, error) {
	return scanProgress(db.QueryRow(progressSelect+` WHERE p.student_id = $1`, studentID))
}

// GetProgressByTeacher lists a teacher's progress records with each
// student's billing cadence attached.
func GetProgressByTeacher(db *sql.DB, teacherID string) ([]*ProgressWithBilling, error) {
	return queryProgressWithBilling(db, `WHERE p.teacher_id = $1`, teacherID)
}

// GetAllProgressWithBilling lists every progress record for the nightly
// reconciliation sweep.
func GetAllProgressWithBilling(db *sql.DB) ([]*ProgressWithBilling, error) {
	return queryProgressWithBilling(db, ``)
}

func queryProgressWithBilling(db *sql.DB, where string, args ...interface{}) ([]*ProgressWithBilling, error) {
	rows, err := db.Query(`
		SELECT p.id, p.student_id, p.teacher_id, p.current_week, p.total_weeks, p.course_type,
		       p.last_attendance_date, p.created_at, p.updated_at, s.name,
		       COALESCE(sc.payment_type, 'monthly')
		FROM student_attendance_progress p
		JOIN students s ON s.id = p.student_id
		LEFT JOIN student_classes sc ON sc.student_id = p.student_id
		`+where+`
		ORDER BY s.name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*ProgressWithBilling{}
	for rows.Next() {
		var r ProgressWithBilling
		err := rows.Scan(&r.ID, &r.StudentID, &r.TeacherID, &r.CurrentWeek, &r.TotalWeeks, &r.CourseType,
			&r.LastAttendanceDate, &r.CreatedAt, &r.UpdatedAt, &r.StudentName, &r.PaymentType)
		if err != nil {
			log.Printf("Error scanning progress row: %v", err)
			continue
		}
		records = append(records, &r)
	}
	return records, nil
}

// UpdateProgressWeek writes a new week value for a student.
func UpdateProgressWeek(db *sql.DB, studentID string, week int, lastAttendance *time.Time) (*models.AttendanceProgress, error) {
	_, err := db.Exec(`
		UPDATE student_attendance_progress
		SET current_week = $1, last_attendance_date = $2, updated_at = NOW()
		WHERE student_id = $3`,
		week, lastAttendance, studentID)
	if err != nil {
		return nil, err
	}
	return GetProgressByStudent(db, studentID)
}

// AdjustProgressCourseType moves a student's record onto a new course type
// with its canonical week total and an already-clamped current week.
func AdjustProgressCourseType(db *sql.DB, studentID string, courseType models.CourseType, totalWeeks, currentWeek int) (*models.AttendanceProgress, error) {
	_, err := db.Exec(`
		UPDATE student_attendance_progress
		SET course_type = $1, total_weeks = $2, current_week = $3, updated_at = NOW()
		WHERE student_id = $4`,
		courseType, totalWeeks, currentWeek, studentID)
	if err != nil {
		return nil, err
	}
	return GetProgressByStudent(db, studentID)
}

// InsertProgress creates a zeroed record for a student that predates
// progress tracking.
func InsertProgress(db *sql.DB, studentID, teacherID string, courseType models.CourseType) (*models.AttendanceProgress, error) {
	cfg := models.CourseConfigs[courseType]
	_, err := db.Exec(`
		INSERT INTO student_attendance_progress (student_id, teacher_id, current_week, total_weeks, course_type)
		VALUES ($1, $2, 0, $3, $4)
		ON CONFLICT (student_id) DO NOTHING`,
		studentID, teacherID, cfg.TotalWeeks, courseType)
	if err != nil {
		return nil, err
	}
	return GetProgressByStudent(db, studentID)
}
