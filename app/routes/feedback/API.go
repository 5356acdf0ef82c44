package feedback

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/models"
	"github.com/Kevin-innovation/dlab-dashboard/app/services"
	"github.com/Kevin-innovation/dlab-dashboard/app/validation"
)

type generateRequest struct {
	StudentName        string `json:"student_name" validate:"required"`
	ClassName          string `json:"class_name" validate:"required"`
	LessonContent      string `json:"lesson_content" validate:"required"`
	StudentPerformance string `json:"student_performance" validate:"required"`
	TemplateID         string `json:"template_id"`
	CurrentWeek        int    `json:"current_week"`
}

// GenerateFeedbackAPI writes one feedback message with the chat model and
// stores it in the history.
func GenerateFeedbackAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	db := config.GetDB()

	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	openaiCfg := config.GetOpenAI()
	generator, err := services.NewFeedbackGenerator(openaiCfg.APIKey, openaiCfg.Model)
	if err != nil {
		if errors.Is(err, services.ErrOpenAIKeyMissing) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Feedback generation is not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start feedback generation"})
	}

	genReq := models.FeedbackRequest{
		StudentName:        req.StudentName,
		ClassName:          req.ClassName,
		LessonContent:      req.LessonContent,
		StudentPerformance: req.StudentPerformance,
	}

	var templateName *string
	if req.TemplateID != "" {
		template, err := database.GetTemplateByID(db, req.TemplateID, teacherID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		genReq.CustomFormat = services.ReplaceTemplateVariables(template.Content, map[string]string{
			"student_name": req.StudentName,
			"class_name":   req.ClassName,
			"week":         strconv.Itoa(req.CurrentWeek),
		})
		templateName = &template.Name
	}

	result, err := generator.Generate(c.Context(), genReq)
	if err != nil {
		log.Printf("Error generating feedback for %s: %v", req.StudentName, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Feedback generation failed"})
	}

	history := &models.FeedbackHistory{
		TeacherID:       teacherID,
		StudentName:     req.StudentName,
		ClassName:       req.ClassName,
		FeedbackContent: result.Feedback,
		TemplateUsed:    templateName,
		TokenUsage:      result.TokenUsage.TotalTokens,
	}
	if _, err := database.SaveFeedbackHistory(db, history); err != nil {
		// The feedback itself is still worth returning.
		log.Printf("Error saving feedback history: %v", err)
	}

	return c.JSON(fiber.Map{"result": result, "history_id": history.ID})
}

// ValidateKeyAPI checks the configured OpenAI key against the API so the
// settings screen can surface a bad key before a generation fails.
func ValidateKeyAPI(c *fiber.Ctx) error {
	openaiCfg := config.GetOpenAI()
	generator, err := services.NewFeedbackGenerator(openaiCfg.APIKey, openaiCfg.Model)
	if err != nil {
		if errors.Is(err, services.ErrOpenAIKeyMissing) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Feedback generation is not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start feedback generation"})
	}

	if err := generator.ValidateKey(c.Context()); err != nil {
		log.Printf("Error validating OpenAI key: %v", err)
		return c.JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{"valid": true, "model": generator.Model()})
}

// parseHistoryRange turns optional YYYY-MM-DD bounds into a time range.
// The to bound covers the whole of its day.
func parseHistoryRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, errors.New("date_from must be YYYY-MM-DD")
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, errors.New("date_to must be YYYY-MM-DD")
		}
		to = to.AddDate(0, 0, 1).Add(-time.Second)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, errors.New("date_to must not precede date_from")
	}
	return from, to, nil
}

// GetHistoryAPI lists stored feedback, newest first. Supports student
// and date range filters.
func GetHistoryAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	from, to, err := parseHistoryRange(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	history, err := database.GetFeedbackHistory(config.GetDB(), teacherID, database.HistoryFilter{
		StudentName: c.Query("student"),
		From:        from,
		To:          to,
		Limit:       c.QueryInt("limit", 100),
	})
	if err != nil {
		log.Printf("Error loading feedback history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}
	return c.JSON(fiber.Map{"history": history, "count": len(history)})
}

// GetHistoryStatsAPI summarizes stored feedback.
func GetHistoryStatsAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	history, err := database.GetFeedbackHistory(config.GetDB(), teacherID, database.HistoryFilter{Limit: 100})
	if err != nil {
		log.Printf("Error loading feedback history for stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}
	return c.JSON(fiber.Map{"stats": services.SummarizeFeedbackHistory(history, config.GetOpenAI().Model)})
}

// DeleteHistoryAPI removes one stored feedback entry.
func DeleteHistoryAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	if err := database.DeleteFeedbackHistory(config.GetDB(), c.Params("id"), teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "History entry not found"})
		}
		log.Printf("Error deleting feedback history %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete history entry"})
	}
	return c.JSON(fiber.Map{"message": "History entry deleted"})
}

type templateRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// GetTemplatesAPI lists the teacher's feedback templates.
func GetTemplatesAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)

	templates, err := database.GetTemplatesByTeacher(config.GetDB(), teacherID)
	if err != nil {
		log.Printf("Error listing templates: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load templates"})
	}
	return c.JSON(fiber.Map{"templates": templates, "count": len(templates)})
}

// CreateTemplateAPI adds a feedback template. Names are unique per teacher.
func CreateTemplateAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	db := config.GetDB()

	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	exists, err := database.TemplateNameExists(db, teacherID, req.Name, "")
	if err != nil {
		log.Printf("Error checking template name: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A template with this name already exists"})
	}

	template, err := database.CreateTemplate(db, &models.FeedbackTemplate{
		TeacherID: teacherID,
		Name:      req.Name,
		Content:   req.Content,
	})
	if err != nil {
		log.Printf("Error creating template: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": template})
}

// UpdateTemplateAPI edits a template.
func UpdateTemplateAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	templateID := c.Params("id")
	db := config.GetDB()

	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	exists, err := database.TemplateNameExists(db, teacherID, req.Name, templateID)
	if err != nil {
		log.Printf("Error checking template name: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A template with this name already exists"})
	}

	if err := database.UpdateTemplate(db, templateID, teacherID, req.Name, req.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		log.Printf("Error updating template %s: %v", templateID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return c.JSON(fiber.Map{"message": "Template updated"})
}

// DeleteTemplateAPI removes a template.
func DeleteTemplateAPI(c *fiber.Ctx) error {
	teacherID := c.Locals("user_id").(string)
	templateID := c.Params("id")

	if err := database.DeleteTemplate(config.GetDB(), templateID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		log.Printf("Error deleting template %s: %v", templateID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete template"})
	}
	return c.JSON(fiber.Map{"message": "Template deleted"})
}
