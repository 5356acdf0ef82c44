package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// CreateSchedule adds a weekly slot for a class.
func CreateSchedule(db *sql.DB, s *models.Schedule) (*models.Schedule, error) {
	if s.Status == "" {
		s.Status = models.ScheduleActive
	}
	err := db.QueryRow(`
		INSERT INTO schedules (teacher_id, class_id, day_of_week, start_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		s.TeacherID, s.ClassID, s.DayOfWeek, s.StartTime, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSchedulesByTeacher returns the weekly grid with class info and the
// students attending each slot.
func GetSchedulesByTeacher(db *sql.DB, teacherID string) ([]*models.Schedule, error) {
	rows, err := db.Query(`
		SELECT sch.id, sch.teacher_id, sch.class_id, sch.day_of_week, sch.start_time, sch.status,
		       sch.created_at, sch.updated_at,
		       c.name, c.type, c.subject, c.duration
		FROM schedules sch
		JOIN classes c ON c.id = sch.class_id
		WHERE sch.teacher_id = $1
		ORDER BY sch.day_of_week, sch.start_time`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		c := models.Class{}
		err := rows.Scan(&s.ID, &s.TeacherID, &s.ClassID, &s.DayOfWeek, &s.StartTime, &s.Status,
			&s.CreatedAt, &s.UpdatedAt,
			&c.Name, &c.Type, &c.Subject, &c.Duration)
		if err != nil {
			log.Printf("Error scanning schedule row: %v", err)
			continue
		}
		c.ID = s.ClassID
		s.Class = &c
		schedules = append(schedules, &s)
	}

	for _, s := range schedules {
		students, err := GetStudentsByClass(db, s.ClassID)
		if err != nil {
			log.Printf("Error loading students for schedule %s: %v", s.ID, err)
			students = []*models.Student{}
		}
		s.Students = students
	}
	return schedules, nil
}

// GetScheduleByID fetches one slot with its class.
func GetScheduleByID(db *sql.DB, scheduleID string) (*models.Schedule, error) {
	var s models.Schedule
	c := models.Class{}
	err := db.QueryRow(`
		SELECT sch.id, sch.teacher_id, sch.class_id, sch.day_of_week, sch.start_time, sch.status,
		       sch.created_at, sch.updated_at,
		       c.name, c.type, c.subject, c.duration
		FROM schedules sch
		JOIN classes c ON c.id = sch.class_id
		WHERE sch.id = $1`, scheduleID,
	).Scan(&s.ID, &s.TeacherID, &s.ClassID, &s.DayOfWeek, &s.StartTime, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
		&c.Name, &c.Type, &c.Subject, &c.Duration)
	if err != nil {
		return nil, err
	}
	c.ID = s.ClassID
	s.Class = &c
	return &s, nil
}

// UpdateSchedule edits a slot's day, time and status.
func UpdateSchedule(db *sql.DB, scheduleID, teacherID string, dayOfWeek int, startTime string, status models.ScheduleStatus) error {
	res, err := db.Exec(`
		UPDATE schedules
		SET day_of_week = $1, start_time = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND teacher_id = $5`,
		dayOfWeek, startTime, status, scheduleID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteSchedule removes a slot and its attendance records.
func DeleteSchedule(db *sql.DB, scheduleID, teacherID string) error {
	res, err := db.Exec(`
		DELETE FROM schedules WHERE id = $1 AND teacher_id = $2`, scheduleID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountWeeklySessions returns how many active slots a teacher runs per week.
func CountWeeklySessions(db *sql.DB, teacherID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM schedules
		WHERE teacher_id = $1 AND status = 'active'`, teacherID).Scan(&count)
	return count, err
}

// MarkAttendance upserts one student's mark for a dated session and
// returns the status it replaced, if any. The CTE snapshots the row
// before the write, so callers can tell a fresh mark from a correction.
func MarkAttendance(db *sql.DB, scheduleID, studentID string, date time.Time, status models.AttendanceStatus, makeupDate *time.Time) (models.AttendanceStatus, bool, error) {
	var prior sql.NullString
	err := db.QueryRow(`
		WITH prior AS (
			SELECT status FROM attendance
			WHERE schedule_id = $1 AND student_id = $2 AND date = $3
		)
		INSERT INTO attendance (schedule_id, student_id, date, status, makeup_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (schedule_id, student_id, date)
		DO UPDATE SET status = EXCLUDED.status, makeup_date = EXCLUDED.makeup_date
		RETURNING (SELECT status FROM prior)`,
		scheduleID, studentID, date, status, makeupDate,
	).Scan(&prior)
	if err != nil {
		return "", false, err
	}
	return models.AttendanceStatus(prior.String), prior.Valid, nil
}

// GetAttendanceForSession lists all marks for one schedule on one date.
func GetAttendanceForSession(db *sql.DB, scheduleID string, date time.Time) ([]*models.Attendance, error) {
	rows, err := db.Query(`
		SELECT id, schedule_id, student_id, date, status, makeup_date, created_at
		FROM attendance
		WHERE schedule_id = $1 AND date = $2
		ORDER BY created_at`, scheduleID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		var a models.Attendance
		err := rows.Scan(&a.ID, &a.ScheduleID, &a.StudentID, &a.Date, &a.Status, &a.MakeupDate, &a.CreatedAt)
		if err != nil {
			log.Printf("Error scanning attendance row: %v", err)
			continue
		}
		records = append(records, &a)
	}
	return records, nil
}
