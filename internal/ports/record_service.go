package ports

import "context"

type RecordService interface {
	AddText(ctx context.Context, userID, role, text string) (int64, error)
	AddVoice(ctx context.Context, userID, role, text, audioURL string) (int64, error)

	GetHistory(ctx context.Context, userID string) ([]Record, error)
	GetFittingHistory(ctx context.Context, userID string) ([]Record, error)
	RecalcHistoryState(ctx context.Context, userID string) error

	ListUsers(ctx context.Context) ([]string, error)
	DeleteUserHistory(ctx context.Context, userID string) error
}
