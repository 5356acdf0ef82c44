package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// GetTemplatesByTeacher lists a teacher's feedback templates.
func GetTemplatesByTeacher(db *sql.DB, teacherID string) ([]*models.FeedbackTemplate, error) {
	rows, err := db.Query(`
		SELECT id, teacher_id, name, content, created_at, updated_at
		FROM feedback_templates
		WHERE teacher_id = $1
		ORDER BY name`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*models.FeedbackTemplate{}
	for rows.Next() {
		var t models.FeedbackTemplate
		err := rows.Scan(&t.ID, &t.TeacherID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Printf("Error scanning template row: %v", err)
			continue
		}
		templates = append(templates, &t)
	}
	return templates, nil
}

// GetTemplateByID fetches one template scoped to its owner.
func GetTemplateByID(db *sql.DB, templateID, teacherID string) (*models.FeedbackTemplate, error) {
	var t models.FeedbackTemplate
	err := db.QueryRow(`
		SELECT id, teacher_id, name, content, created_at, updated_at
		FROM feedback_templates
		WHERE id = $1 AND teacher_id = $2`, templateID, teacherID,
	).Scan(&t.ID, &t.TeacherID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TemplateNameExists reports whether a teacher already has a template with
// this name, optionally excluding one template ID during renames.
func TemplateNameExists(db *sql.DB, teacherID, name, excludeID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM feedback_templates
			WHERE teacher_id = $1 AND name = $2 AND ($3 = '' OR id::text <> $3)
		)`, teacherID, name, excludeID).Scan(&exists)
	return exists, err
}

// CreateTemplate inserts a feedback template.
func CreateTemplate(db *sql.DB, t *models.FeedbackTemplate) (*models.FeedbackTemplate, error) {
	err := db.QueryRow(`
		INSERT INTO feedback_templates (teacher_id, name, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		t.TeacherID, t.Name, t.Content,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTemplate edits a template's name and content.
func UpdateTemplate(db *sql.DB, templateID, teacherID, name, content string) error {
	res, err := db.Exec(`
		UPDATE feedback_templates
		SET name = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND teacher_id = $4`,
		name, content, templateID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTemplate removes a template.
func DeleteTemplate(db *sql.DB, templateID, teacherID string) error {
	res, err := db.Exec(`
		DELETE FROM feedback_templates WHERE id = $1 AND teacher_id = $2`, templateID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SaveFeedbackHistory stores one generated feedback message.
func SaveFeedbackHistory(db *sql.DB, h *models.FeedbackHistory) (*models.FeedbackHistory, error) {
	err := db.QueryRow(`
		INSERT INTO feedback_history (teacher_id, student_name, class_name, feedback_content, template_used, token_usage)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		h.TeacherID, h.StudentName, h.ClassName, h.FeedbackContent, h.TemplateUsed, h.TokenUsage,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// HistoryFilter narrows a feedback history listing. Zero values mean no
// constraint.
type HistoryFilter struct {
	StudentName string
	From        time.Time
	To          time.Time
	Limit       int
}

// GetFeedbackHistory lists stored feedback, newest first, optionally
// filtered by student name and date range.
func GetFeedbackHistory(db *sql.DB, teacherID string, filter HistoryFilter) ([]*models.FeedbackHistory, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	from := sql.NullTime{Time: filter.From, Valid: !filter.From.IsZero()}
	to := sql.NullTime{Time: filter.To, Valid: !filter.To.IsZero()}
	rows, err := db.Query(`
		SELECT id, teacher_id, student_name, class_name, feedback_content, template_used, token_usage, created_at
		FROM feedback_history
		WHERE teacher_id = $1
		  AND ($2 = '' OR student_name = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC
		LIMIT $5`, teacherID, filter.StudentName, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []*models.FeedbackHistory{}
	for rows.Next() {
		var h models.FeedbackHistory
		err := rows.Scan(&h.ID, &h.TeacherID, &h.StudentName, &h.ClassName, &h.FeedbackContent,
			&h.TemplateUsed, &h.TokenUsage, &h.CreatedAt)
		if err != nil {
			log.Printf("Error scanning feedback history row: %v", err)
			continue
		}
		history = append(history, &h)
	}
	return history, nil
}

// DeleteFeedbackHistory removes one stored feedback entry.
func DeleteFeedbackHistory(db *sql.DB, historyID, teacherID string) error {
	res, err := db.Exec(`
		DELETE FROM feedback_history WHERE id = $1 AND teacher_id = $2`, historyID, teacherID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TrimFeedbackHistory keeps only the newest keep entries per teacher and
// reports how many rows were dropped.
func TrimFeedbackHistory(db *sql.DB, keep int) (int64, error) {
	res, err := db.Exec(`
		DELETE FROM feedback_history
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY teacher_id ORDER BY created_at DESC) AS rn
				FROM feedback_history
			) ranked
			WHERE ranked.rn > $1
		)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
