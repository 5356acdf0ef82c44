package models

import "time"

// FeedbackTemplate is a teacher-authored feedback format with {{variable}}
// placeholders.
type FeedbackTemplate struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	Name      string    `json:"name" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackHistory is one generated feedback message kept for later reuse.
type FeedbackHistory struct {
	ID              string    `json:"id"`
	TeacherID       string    `json:"teacher_id"`
	StudentName     string    `json:"student_name"`
	ClassName       string    `json:"class_name"`
	FeedbackContent string    `json:"feedback_content"`
	TemplateUsed    *string   `json:"template_used,omitempty"`
	TokenUsage      int       `json:"token_usage"`
	CreatedAt       time.Time `json:"created_at"`
}

// FeedbackRequest carries the lesson facts the model writes feedback from.
type FeedbackRequest struct {
	StudentName        string `json:"student_name" validate:"required"`
	ClassName          string `json:"class_name" validate:"required"`
	LessonContent      string `json:"lesson_content" validate:"required"`
	StudentPerformance string `json:"student_performance" validate:"required"`
	CustomFormat       string `json:"custom_format"`
}

// TokenUsage mirrors the usage block of a chat completion response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FeedbackResult is the generated feedback plus generation metadata.
type FeedbackResult struct {
	Feedback         string     `json:"feedback"`
	ProcessingTimeMS int64      `json:"processing_time_ms"`
	TokenUsage       TokenUsage `json:"token_usage"`
	EstimatedCost    float64    `json:"estimated_cost"`
}

// FeedbackHistoryStats summarizes a teacher's stored feedback history.
type FeedbackHistoryStats struct {
	TotalCount        int     `json:"total_count"`
	TotalTokens       int     `json:"total_tokens"`
	EstimatedCost     float64 `json:"estimated_cost"`
	MostActiveStudent string  `json:"most_active_student"`
	AverageLength     int     `json:"average_length"`
}
