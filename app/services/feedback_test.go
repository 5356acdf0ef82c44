package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

func TestNewFeedbackGeneratorRequiresKey(t *testing.T) {
	_, err := NewFeedbackGenerator("", "gpt-4o-mini")
	assert.ErrorIs(t, err, ErrOpenAIKeyMissing)

	g, err := NewFeedbackGenerator("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", g.Model())
}

func TestBuildFeedbackPrompt(t *testing.T) {
	req := models.FeedbackRequest{
		StudentName:        "김지민",
		ClassName:          "파이썬 기초",
		LessonContent:      "반복문과 리스트",
		StudentPerformance: "과제를 스스로 완성함",
	}

	prompt := buildFeedbackPrompt(req)
	assert.Contains(t, prompt, "김지민")
	assert.Contains(t, prompt, "파이썬 기초")
	assert.Contains(t, prompt, "반복문과 리스트")
	assert.NotContains(t, prompt, "형식을 따라")

	req.CustomFormat = "{{student_name}} 학생의 주간 리포트"
	prompt = buildFeedbackPrompt(req)
	assert.Contains(t, prompt, "형식을 따라")
	assert.Contains(t, prompt, "주간 리포트")
}

func TestReplaceTemplateVariables(t *testing.T) {
	template := "{{student_name}} 학생은 {{class_name}} 수업에서 {{week}}주차를 마쳤습니다."
	out := ReplaceTemplateVariables(template, map[string]string{
		"student_name": "김지민",
		"class_name":   "파이썬 기초",
		"week":         "3",
	})
	assert.Equal(t, "김지민 학생은 파이썬 기초 수업에서 3주차를 마쳤습니다.", out)

	// Unknown placeholders stay visible instead of vanishing.
	out = ReplaceTemplateVariables("{{student_nmae}} 학생", map[string]string{"student_name": "김지민"})
	assert.Equal(t, "{{student_nmae}} 학생", out)

	// Repeated placeholders are all filled.
	out = ReplaceTemplateVariables("{{n}}, {{n}}", map[string]string{"n": "x"})
	assert.Equal(t, "x, x", out)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("a", 100)))
}

func TestEstimateCost(t *testing.T) {
	assert.InDelta(t, 0.0003, EstimateCost(1000, "gpt-4o-mini"), 1e-9)
	assert.InDelta(t, 0.002, EstimateCost(1000, "gpt-4"), 1e-9)
	assert.InDelta(t, 0.00015, EstimateCost(500, "gpt-4o-mini"), 1e-9)
	assert.Zero(t, EstimateCost(0, "gpt-4o-mini"))
}

func TestSummarizeFeedbackHistory(t *testing.T) {
	history := []*models.FeedbackHistory{
		{StudentName: "김지민", FeedbackContent: strings.Repeat("가", 100), TokenUsage: 400},
		{StudentName: "김지민", FeedbackContent: strings.Repeat("나", 200), TokenUsage: 500},
		{StudentName: "박서준", FeedbackContent: strings.Repeat("다", 150), TokenUsage: 300},
	}

	stats := SummarizeFeedbackHistory(history, "gpt-4o-mini")
	assert.Equal(t, 3, stats.TotalCount)
	assert.Equal(t, 1200, stats.TotalTokens)
	assert.Equal(t, "김지민", stats.MostActiveStudent)
	assert.Equal(t, 150, stats.AverageLength)
	assert.InDelta(t, 0.00036, stats.EstimatedCost, 1e-9)

	assert.Equal(t, models.FeedbackHistoryStats{}, SummarizeFeedbackHistory(nil, "gpt-4o-mini"))
}
