package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// ErrOpenAIKeyMissing is returned when feedback generation is requested
// without an API key configured.
var ErrOpenAIKeyMissing = errors.New("openai api key is not configured")

const (
	defaultFeedbackModel = "gpt-4o-mini"
	feedbackMaxTokens    = 500
	feedbackTemperature  = 0.7
	feedbackPenalty      = 0.1
)

const feedbackSystemPrompt = `당신은 코딩 학원의 수석 강사입니다. 학부모님께 전달할 학생 수업 피드백을 작성합니다.
따뜻하고 전문적인 어조로, 학생의 성장 과정이 구체적으로 드러나도록 작성하세요.`

// FeedbackGenerator wraps the chat completion client used to write lesson
// feedback for parents.
type FeedbackGenerator struct {
	client *openai.Client
	model  string
}

// NewFeedbackGenerator builds a generator from an API key and model name.
func NewFeedbackGenerator(apiKey, model string) (*FeedbackGenerator, error) {
	if apiKey == "" {
		return nil, ErrOpenAIKeyMissing
	}
	if model == "" {
		model = defaultFeedbackModel
	}
	return &FeedbackGenerator{client: openai.NewClient(apiKey), model: model}, nil
}

// Model returns the configured model name.
func (g *FeedbackGenerator) Model() string {
	return g.model
}

// Generate writes one feedback message from the lesson facts in req.
func (g *FeedbackGenerator) Generate(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResult, error) {
	start := time.Now()
	prompt := buildFeedbackPrompt(req)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: feedbackSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:        feedbackMaxTokens,
		Temperature:      feedbackTemperature,
		PresencePenalty:  feedbackPenalty,
		FrequencyPenalty: feedbackPenalty,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("openai request failed (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	usage := models.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		// Some gateways strip the usage block; fall back to a rough count.
		usage.TotalTokens = EstimateTokens(prompt) + EstimateTokens(content)
	}
	return &models.FeedbackResult{
		Feedback:         content,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		TokenUsage:       usage,
		EstimatedCost:    EstimateCost(usage.TotalTokens, g.model),
	}, nil
}

// ValidateKey makes a cheap authenticated call to confirm the key works.
func (g *FeedbackGenerator) ValidateKey(ctx context.Context) error {
	_, err := g.client.ListModels(ctx)
	return err
}

func buildFeedbackPrompt(req models.FeedbackRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "학생 이름: %s\n", req.StudentName)
	fmt.Fprintf(&b, "수업명: %s\n", req.ClassName)
	fmt.Fprintf(&b, "수업 내용: %s\n", req.LessonContent)
	fmt.Fprintf(&b, "학생 성취도: %s\n\n", req.StudentPerformance)

	b.WriteString("위 내용을 바탕으로 학부모님께 보낼 피드백을 작성해 주세요.\n")
	b.WriteString("1. 오늘 배운 내용을 쉬운 말로 요약\n")
	b.WriteString("2. 학생이 잘한 점을 구체적으로 칭찬\n")
	b.WriteString("3. 보완이 필요한 부분을 부드럽게 언급\n")
	b.WriteString("4. 다음 수업 계획을 간단히 안내\n")
	b.WriteString("5. 전체 3~4문단, 존댓말 사용\n")

	if req.CustomFormat != "" {
		fmt.Fprintf(&b, "\n다음 형식을 따라 주세요:\n%s\n", req.CustomFormat)
	}
	return b.String()
}

// ReplaceTemplateVariables fills {{name}} placeholders in a template.
// Unknown placeholders are left as-is so a typo is visible in the output.
func ReplaceTemplateVariables(template string, vars map[string]string) string {
	for key, value := range vars {
		template = strings.ReplaceAll(template, "{{"+key+"}}", value)
	}
	return template
}

// EstimateTokens approximates token usage at four characters per token.
func EstimateTokens(text string) int {
	return int(math.Ceil(float64(len(text)) / 4))
}

// EstimateCost returns the estimated USD cost of a token count on a model.
func EstimateCost(tokens int, model string) float64 {
	perThousand := 0.002
	if model == defaultFeedbackModel {
		perThousand = 0.0003
	}
	return float64(tokens) / 1000 * perThousand
}

// SummarizeFeedbackHistory aggregates stored feedback for the history view.
func SummarizeFeedbackHistory(history []*models.FeedbackHistory, model string) models.FeedbackHistoryStats {
	stats := models.FeedbackHistoryStats{TotalCount: len(history)}
	if len(history) == 0 {
		return stats
	}

	perStudent := map[string]int{}
	var totalLength int
	for _, h := range history {
		stats.TotalTokens += h.TokenUsage
		totalLength += len([]rune(h.FeedbackContent))
		perStudent[h.StudentName]++
	}

	best := 0
	for name, count := range perStudent {
		if count > best {
			best = count
			stats.MostActiveStudent = name
		}
	}

	stats.EstimatedCost = EstimateCost(stats.TotalTokens, model)
	stats.AverageLength = totalLength / len(history)
	return stats
}
