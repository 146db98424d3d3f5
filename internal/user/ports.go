package user

import "context"

// Infra — работа с БД
type Infra interface {
	// ResetUser — транзакционно стирает все данные пользователя
	ResetUser(ctx context.Context, userID string) error
}

// Service — бизнес-операции
type Service interface {
	ResetUser(ctx context.Context, userID string) error
}
