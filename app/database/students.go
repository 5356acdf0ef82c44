package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// CreateStudentParams carries everything needed to enroll a new student.
type CreateStudentParams struct {
	TeacherID   string
	Name        string
	Grade       string
	ParentName  string
	ParentPhone string
	Notes       *string

	ClassType models.ClassType
	Subject   string
	Duration  string

	PaymentType    models.PaymentType
	PaymentDay     int
	RoboticsOption bool
	RoboticsDay    *models.RoboticsDay
}

// CreateStudent enrolls a student in one transaction: the student row, a
// find-or-create of the matching class, the class link with billing terms,
// and a zeroed attendance progress record. Any failure rolls the whole
// enrollment back.
func CreateStudent(db *sql.DB, params CreateStudentParams) (*models.Student, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin enrollment: %w", err)
	}
	defer tx.Rollback()

	var studentID string
	err = tx.QueryRow(`
		INSERT INTO students (teacher_id, name, grade, parent_name, parent_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		params.TeacherID, params.Name, params.Grade,
		params.ParentName, params.ParentPhone, params.Notes,
	).Scan(&studentID)
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}

	classID, err := findOrCreateClass(tx, params.TeacherID, params.ClassType, params.Subject, params.Duration)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO student_classes (student_id, class_id, payment_type, payment_day, robotics_option, robotics_day)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		studentID, classID, params.PaymentType, params.PaymentDay,
		params.RoboticsOption, params.RoboticsDay,
	)
	if err != nil {
		return nil, fmt.Errorf("link student to class: %w", err)
	}

	courseType := models.CourseTypeForPayment(params.PaymentType)
	cfg := models.CourseConfigs[courseType]
	_, err = tx.Exec(`
		INSERT INTO student_attendance_progress (student_id, teacher_id, current_week, total_weeks, course_type)
		VALUES ($1, $2, 0, $3, $4)`,
		studentID, params.TeacherID, cfg.TotalWeeks, courseType,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize attendance progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enrollment: %w", err)
	}

	return GetStudentByID(db, studentID)
}

// findOrCreateClass reuses an existing class with the same shape or creates
// one named after the subject and type.
func findOrCreateClass(tx *sql.Tx, teacherID string, classType models.ClassType, subject, duration string) (string, error) {
	var classID string
	err := tx.QueryRow(`
		SELECT id FROM classes
		WHERE teacher_id = $1 AND type = $2 AND subject = $3 AND duration = $4
		LIMIT 1`,
		teacherID, classType, subject, duration,
	).Scan(&classID)
	if err == nil {
		return classID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("find class: %w", err)
	}

	name := fmt.Sprintf("%s %s", subject, classType)
	err = tx.QueryRow(`
		INSERT INTO classes (teacher_id, name, type, subject, duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		teacherID, name, classType, subject, duration,
	).Scan(&classID)
	if err != nil {
		return "", fmt.Errorf("create class: %w", err)
	}
	return classID, nil
}

const studentSelect = `
	SELECT s.id, s.teacher_id, s.name, s.grade, s.parent_name, s.parent_phone, s.notes,
	       s.created_at, s.updated_at,
	       sc.id, sc.class_id, sc.payment_type, sc.payment_day, sc.robotics_option, sc.robotics_day, sc.created_at,
	       c.id, c.name, c.type, c.subject, c.duration
	FROM students s
	LEFT JOIN student_classes sc ON sc.student_id = s.id
	LEFT JOIN classes c ON c.id = sc.class_id`

// scanStudentRows folds the joined rows into students with nested class links.
func scanStudentRows(rows *sql.Rows) []*models.Student {
	students := []*models.Student{}
	seen := map[string]*models.Student{}

	for rows.Next() {
		var s models.Student
		var scID, classID, paymentType, roboticsDay sql.NullString
		var scCreated sql.NullTime
		var paymentDay sql.NullInt64
		var robotics sql.NullBool
		var cID, cName, cType, cSubject, cDuration sql.NullString

		err := rows.Scan(
			&s.ID, &s.TeacherID, &s.Name, &s.Grade, &s.ParentName, &s.ParentPhone, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
			&scID, &classID, &paymentType, &paymentDay, &robotics, &roboticsDay, &scCreated,
			&cID, &cName, &cType, &cSubject, &cDuration,
		)
		if err != nil {
			log.Printf("Error scanning student row: %v", err)
			continue
		}

		student, ok := seen[s.ID]
		if !ok {
			student = &s
			student.Classes = []*models.StudentClass{}
			seen[s.ID] = student
			students = append(students, student)
		}

		if scID.Valid {
			link := &models.StudentClass{
				ID:             scID.String,
				StudentID:      student.ID,
				ClassID:        classID.String,
				PaymentType:    models.PaymentType(paymentType.String),
				PaymentDay:     int(paymentDay.Int64),
				RoboticsOption: robotics.Bool,
				CreatedAt:      scCreated.Time,
			}
			if roboticsDay.Valid {
				day := models.RoboticsDay(roboticsDay.String)
				link.RoboticsDay = &day
			}
			if cID.Valid {
				link.Class = &models.Class{
					ID:       cID.String,
					Name:     cName.String,
					Type:     models.ClassType(cType.String),
					Subject:  cSubject.String,
					Duration: cDuration.String,
				}
			}
			student.Classes = append(student.Classes, link)
		}
	}
	return students
}

// GetStudentsByTeacher lists a teacher's roster with class links attached.
func GetStudentsByTeacher(db *sql.DB, teacherID string) ([]*models.Student, error) {
	rows, err := db.Query(studentSelect+`
		WHERE s.teacher_id = $1
		ORDER BY s.name, sc.created_at`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudentRows(rows), nil
}

// SearchStudents filters the roster by student or parent name.
func SearchStudents(db *sql.DB, teacherID, query string) ([]*models.Student, error) {
	rows, err := db.Query(studentSelect+`
		WHERE s.teacher_id = $1 AND (s.name ILIKE $2 OR s.parent_name ILIKE $2)
		ORDER BY s.name`, teacherID, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudentRows(rows), nil
}

// GetStudentByID fetches one student with class links attached.
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	rows, err := db.Query(studentSelect+`
		WHERE s.id = $1
		ORDER BY sc.created_at`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := scanStudentRows(rows)
	if len(students) == 0 {
		return nil, sql.ErrNoRows
	}
	return students[0], nil
}

// UpdateStudentParams carries the editable student and billing fields.
type UpdateStudentParams struct {
	Name        string
	Grade       string
	ParentName  string
	ParentPhone string
	Notes       *string

	PaymentType    models.PaymentType
	PaymentDay     int
	RoboticsOption bool
	RoboticsDay    *models.RoboticsDay
}

// UpdateStudent edits the student row and its billing terms together.
func UpdateStudent(db *sql.DB, studentID string, params UpdateStudentParams) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE students
		SET name = $1, grade = $2, parent_name = $3, parent_phone = $4, notes = $5, updated_at = NOW()
		WHERE id = $6`,
		params.Name, params.Grade, params.ParentName, params.ParentPhone, params.Notes, studentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	_, err = tx.Exec(`
		UPDATE student_classes
		SET payment_type = $1, payment_day = $2, robotics_option = $3, robotics_day = $4
		WHERE student_id = $5`,
		params.PaymentType, params.PaymentDay, params.RoboticsOption, params.RoboticsDay, studentID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteStudent removes a student; links, attendance and progress rows
// cascade at the schema level.
func DeleteStudent(db *sql.DB, teacherID, studentID string) error {
	res, err := db.Exec(`
		DELETE FROM students WHERE id = $1 AND teacher_id = $2`, studentID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountStudentsByTeacher returns the roster size.
func CountStudentsByTeacher(db *sql.DB, teacherID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM students WHERE teacher_id = $1`, teacherID).Scan(&count)
	return count, err
}
