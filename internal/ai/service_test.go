package ai

import (
	"errors"
	"testing"

	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/safety"
	"github.com/stretchr/testify/assert"
)

func TestFormatEmotion(t *testing.T) {
	block := formatEmotion(&emotion.Analysis{
		PrimaryEmotion:     "sad",
		Intensity:          7,
		Triggers:           []string{"work-related stress"},
		ClinicalIndicators: []string{"depression symptoms"},
	})

	assert.Contains(t, block, "Primary Emotion: sad")
	assert.Contains(t, block, "Intensity (1-10): 7")
	assert.Contains(t, block, "Triggers: work-related stress")
	assert.Contains(t, block, "Clinical Indicators: depression symptoms")
	assert.NotContains(t, block, "Pattern Changes")
}

func TestFormatEmotionNil(t *testing.T) {
	assert.Empty(t, formatEmotion(nil))
}

func TestFormatSafety(t *testing.T) {
	block := formatSafety(&safety.Assessment{
		RiskLevel:         safety.RiskCritical,
		Concerns:          []string{"self-harm risk"},
		EmergencyProtocol: true,
	})

	assert.Contains(t, block, "Risk Level: CRITICAL")
	assert.Contains(t, block, "Concerns: self-harm risk")
	assert.Contains(t, block, "Emergency Protocol: active")
}

func TestFormatKnowledge(t *testing.T) {
	block := formatKnowledge([]string{"Sleep hygiene matters.", "  Breathing exercises help.  "})

	assert.Contains(t, block, "- Sleep hygiene matters.")
	assert.Contains(t, block, "- Breathing exercises help.")
	assert.Empty(t, formatKnowledge(nil))
}

func TestAnalyzeOpenAIError(t *testing.T) {
	cases := []struct {
		err  string
		want string
	}{
		{"error, status code: 401, message: bad key", "Неверный API-ключ OpenAI."},
		{"error, status code: 429, message: rate limit", "Превышен лимит OpenAI."},
		{"error, status code: 400, message: unknown model", "Неверно указана модель."},
		{"error, status code: 500, message: oops", "Внутренняя ошибка OpenAI."},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, analyzeOpenAIError(errors.New(c.err)))
	}
}
