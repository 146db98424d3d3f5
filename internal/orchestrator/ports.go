package orchestrator

import (
	"context"
	"time"

	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/safety"
)

// ProcessResult — скоординированный ответ всех агентов
type ProcessResult struct {
	Response           string             `json:"response"`
	EmotionAnalysis    *emotion.Analysis  `json:"emotion_analysis,omitempty"`
	SafetyAssessment   *safety.Assessment `json:"safety_assessment,omitempty"`
	RequiresEscalation bool               `json:"requires_escalation"`
	Timestamp          time.Time          `json:"timestamp"`
}

type Service interface {
	ProcessMessage(ctx context.Context, userID, branch, text string) (ProcessResult, error)
	GetEmotionalTrends(ctx context.Context, userID string) (emotion.Trend, error)
	GetSafetySummary(ctx context.Context, userID string) (safety.Summary, error)
}
