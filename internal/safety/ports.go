package safety

import (
	"context"
	"time"
)

const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Assessment — оценка безопасности одного сообщения
type Assessment struct {
	RiskLevel         string    `json:"risk_level"`
	Concerns          []string  `json:"concerns"`
	EmergencyProtocol bool      `json:"emergency_protocol"`
	Blocked           bool      `json:"blocked"`
	RequiresReview    bool      `json:"requires_review"`
	Confidence        float64   `json:"confidence"`
	CreatedAt         time.Time `json:"created_at"`
}

// Summary — сводка по последним оценкам пользователя
type Summary struct {
	RiskLevelHistory            []string `json:"risk_level_history"`
	EmergencyProtocolsActivated int      `json:"emergency_protocols_activated"`
	CurrentRiskLevel            string   `json:"current_risk_level"`
}

type Service interface {
	Assess(ctx context.Context, userID, text string, emotionIntensity int) (Assessment, error)
	GetSummary(ctx context.Context, userID string, limit int) (Summary, error)
}

type HistoryRepo interface {
	Save(ctx context.Context, userID string, a Assessment) error
	Recent(ctx context.Context, userID string, limit int) ([]Assessment, error)
}
