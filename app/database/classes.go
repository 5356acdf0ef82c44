package database

import (
	"database/sql"
	"log"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// GetClassesByTeacher lists a teacher's classes with enrollment counts.
func GetClassesByTeacher(db *sql.DB, teacherID string) ([]*models.Class, error) {
	rows, err := db.Query(`
		SELECT c.id, c.teacher_id, c.name, c.type, c.subject, c.duration,
		       c.created_at, c.updated_at,
		       COUNT(sc.id) AS student_count
		FROM classes c
		LEFT JOIN student_classes sc ON sc.class_id = c.id
		WHERE c.teacher_id = $1
		GROUP BY c.id
		ORDER BY c.name`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		var c models.Class
		err := rows.Scan(&c.ID, &c.TeacherID, &c.Name, &c.Type, &c.Subject, &c.Duration,
			&c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
		if err != nil {
			log.Printf("Error scanning class row: %v", err)
			continue
		}
		classes = append(classes, &c)
	}
	return classes, nil
}

// GetClassByID fetches one class.
func GetClassByID(db *sql.DB, classID string) (*models.Class, error) {
	var c models.Class
	err := db.QueryRow(`
		SELECT id, teacher_id, name, type, subject, duration, created_at, updated_at
		FROM classes
		WHERE id = $1`, classID,
	).Scan(&c.ID, &c.TeacherID, &c.Name, &c.Type, &c.Subject, &c.Duration, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateClass inserts a class directly, outside the enrollment flow.
func CreateClass(db *sql.DB, c *models.Class) (*models.Class, error) {
	err := db.QueryRow(`
		INSERT INTO classes (teacher_id, name, type, subject, duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		c.TeacherID, c.Name, c.Type, c.Subject, c.Duration,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateClass edits a class definition.
func UpdateClass(db *sql.DB, classID, teacherID string, c *models.Class) error {
	res, err := db.Exec(`
		UPDATE classes
		SET name = $1, type = $2, subject = $3, duration = $4, updated_at = NOW()
		WHERE id = $5 AND teacher_id = $6`,
		c.Name, c.Type, c.Subject, c.Duration, classID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteClass removes a class and cascades its links and schedules.
func DeleteClass(db *sql.DB, classID, teacherID string) error {
	res, err := db.Exec(`
		DELETE FROM classes WHERE id = $1 AND teacher_id = $2`, classID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetStudentsByClass lists the students linked to one class.
func GetStudentsByClass(db *sql.DB, classID string) ([]*models.Student, error) {
	rows, err := db.Query(studentSelect+`
		WHERE sc.class_id = $1
		ORDER BY s.name`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudentRows(rows), nil
}

// CountClassesByTeacher returns how many classes a teacher runs.
func CountClassesByTeacher(db *sql.DB, teacherID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM classes WHERE teacher_id = $1`, teacherID).Scan(&count)
	return count, err
}
