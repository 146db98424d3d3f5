package domain

import (
	"context"
	"fmt"
	"log"

	"github.com/Vovarama1992/mental_support/internal/notificator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	tiktoken "github.com/pkoukk/tiktoken-go"
)

type recordService struct {
	repo     ports.RecordRepo
	notifier notificator.Notificator
}

func NewRecordService(repo ports.RecordRepo, n notificator.Notificator) ports.RecordService {
	return &recordService{
		repo:     repo,
		notifier: n,
	}
}

func (s *recordService) AddText(ctx context.Context, userID, role, text string) (int64, error) {
	id, err := s.repo.CreateText(ctx, userID, role, text)
	if err != nil {
		s.notifier.Notify(ctx, err,
			fmt.Sprintf("Ошибка записи текста в history: user=%s", userID))
		return 0, err
	}

	go func() {
		_ = s.RecalcHistoryState(context.Background(), userID)
	}()

	return id, nil
}

func (s *recordService) AddVoice(ctx context.Context, userID, role, text, audioURL string) (int64, error) {
	id, err := s.repo.CreateVoice(ctx, userID, role, text, audioURL)
	if err != nil {
		s.notifier.Notify(ctx, err,
			fmt.Sprintf("Ошибка записи voice record: user=%s url=%s", userID, audioURL))
		return 0, err
	}

	go func() {
		_ = s.RecalcHistoryState(context.Background(), userID)
	}()

	return id, nil
}

func (s *recordService) GetHistory(ctx context.Context, userID string) ([]ports.Record, error) {
	return s.repo.GetHistory(ctx, userID)
}

func (s *recordService) ListUsers(ctx context.Context) ([]string, error) {
	return s.repo.ListUsers(ctx)
}

func (s *recordService) RecalcHistoryState(ctx context.Context, userID string) error {
	records, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return err
	}

	enc, err := tiktoken.EncodingForModel("gpt-4o-mini")
	if err != nil {
		log.Printf("tokenizer init fail: %v", err)
		return err
	}

	limit := 90000
	totalTokens := 0
	lastN := 0

	for i := len(records) - 1; i >= 0; i-- {
		tokens := countTokens(records[i], enc)
		if totalTokens+tokens > limit {
			break
		}
		totalTokens += tokens
		lastN++
	}

	return s.repo.UpsertHistoryState(ctx, userID, lastN, totalTokens)
}

func countTokens(r ports.Record, enc *tiktoken.Tiktoken) int {
	if r.Text != nil {
		return len(enc.Encode(*r.Text, nil, nil))
	}
	return 0
}

func (s *recordService) GetFittingHistory(ctx context.Context, userID string) ([]ports.Record, error) {
	lastN, _, err := s.repo.GetHistoryState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lastN == 0 {
		return nil, nil
	}

	return s.repo.GetLastNRecords(ctx, userID, lastN)
}

func (s *recordService) DeleteUserHistory(ctx context.Context, userID string) error {
	err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		s.notifier.Notify(ctx, err,
			fmt.Sprintf("Ошибка очистки истории: user=%s", userID))
		return err
	}

	// сбрасываем state
	return s.repo.UpsertHistoryState(ctx, userID, 0, 0)
}
