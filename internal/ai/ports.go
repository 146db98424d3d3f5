package ai

import (
	"context"

	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/safety"
)

// ReplyContext — контекст, который оркестратор собирает перед запросом к модели
type ReplyContext struct {
	Emotion   *emotion.Analysis
	Safety    *safety.Assessment
	Knowledge []string // выдержки из базы знаний
}

type Service interface {
	// GetReply получает ответ модели на новое сообщение пользователя.
	// Историю сервис сам подтягивает из БД.
	GetReply(ctx context.Context, userID, branch, userText string, rc ReplyContext) (string, error)
}
