package assessment

import (
	"context"
	"time"
)

const (
	SeverityMinimal  = "minimal"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Result — итог пройденного опросника
type Result struct {
	Score     int       `json:"score"`
	Severity  string    `json:"severity"`
	Escalated bool      `json:"escalated"`
	Resources string    `json:"resources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Record — сохранённый опросник
type Record struct {
	Answers   []int     `json:"answers"`
	Score     int       `json:"score"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	Save(ctx context.Context, userID string, r Record) error
	Recent(ctx context.Context, userID string, limit int) ([]Record, error)
}

type Service interface {
	Questions() []string
	Submit(ctx context.Context, userID string, answers []int) (Result, error)
	History(ctx context.Context, userID string, limit int) ([]Record, error)
}
