package emotion

import (
	"context"
	"time"
)

// Analysis — разбор одного сообщения
type Analysis struct {
	PrimaryEmotion     string    `json:"primary_emotion"`
	SecondaryEmotions  []string  `json:"secondary_emotions"`
	Intensity          int       `json:"intensity"`
	Triggers           []string  `json:"triggers"`
	ClinicalIndicators []string  `json:"clinical_indicators"`
	PatternChanges     []string  `json:"pattern_changes"`
	Confidence         float64   `json:"confidence"`
	Compound           float64   `json:"compound"`
	CreatedAt          time.Time `json:"created_at"`
}

// Trend — агрегат по последним анализам пользователя
type Trend struct {
	PrimaryEmotions   []string `json:"primary_emotions"`
	IntensityTrend    []int    `json:"intensity_trend"`
	AverageIntensity  float64  `json:"average_intensity"`
	MostCommonEmotion string   `json:"most_common_emotion"`
}

type Service interface {
	Analyze(ctx context.Context, userID, text string) (Analysis, error)
	GetTrend(ctx context.Context, userID string, limit int) (Trend, error)
}

type HistoryRepo interface {
	Save(ctx context.Context, userID string, a Analysis) error
	Last(ctx context.Context, userID string) (*Analysis, error)
	Recent(ctx context.Context, userID string, limit int) ([]Analysis, error)
}
