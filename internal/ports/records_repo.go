package ports

import (
	"context"
	"time"
)

// DTO для истории сообщений
type Record struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"` // user | assistant
	Kind      string    `json:"kind"` // text | voice
	Text      *string   `json:"text,omitempty"`
	AudioURL  *string   `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryState struct {
	UserID       string
	LastNRecords int // сколько последних записей вмещается в бюджет
	TotalTokens  int
	UpdatedAt    time.Time
}

// Репозиторий Postgres
type RecordRepo interface {
	CreateText(ctx context.Context, userID, role, text string) (int64, error)
	CreateVoice(ctx context.Context, userID, role, text, audioURL string) (int64, error)
	GetHistory(ctx context.Context, userID string) ([]Record, error)
	GetLastNRecords(ctx context.Context, userID string, n int) ([]Record, error)
	ListUsers(ctx context.Context) ([]string, error)

	UpsertHistoryState(ctx context.Context, userID string, lastN, totalTokens int) error
	GetHistoryState(ctx context.Context, userID string) (lastN, totalTokens int, err error)

	DeleteByUser(ctx context.Context, userID string) error
}
