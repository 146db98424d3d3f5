package assessment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Vovarama1992/mental_support/internal/metrics"
	"github.com/Vovarama1992/mental_support/internal/notificator"
)

// Ответы по шкале частоты: 0 — совсем нет, 3 — почти каждый день.
const maxAnswer = 3

// индекс вопроса про самоповреждение
const selfHarmQuestion = 4

type service struct {
	questions []string
	resources string
	repo      Repo
	notifier  notificator.Notificator
}

func NewService(questions []string, resources string, repo Repo, n notificator.Notificator) Service {
	return &service{
		questions: questions,
		resources: resources,
		repo:      repo,
		notifier:  n,
	}
}

func (s *service) Questions() []string {
	return s.questions
}

func (s *service) Submit(ctx context.Context, userID string, answers []int) (Result, error) {
	if len(answers) != len(s.questions) {
		return Result{}, fmt.Errorf("expected %d answers, got %d", len(s.questions), len(answers))
	}

	score := 0
	for i, a := range answers {
		if a < 0 || a > maxAnswer {
			return Result{}, fmt.Errorf("answer %d out of range 0..%d", i+1, maxAnswer)
		}
		score += a
	}

	res := Result{
		Score:     score,
		Severity:  severity(score, len(s.questions)),
		CreatedAt: time.Now(),
	}

	if selfHarmQuestion < len(answers) && answers[selfHarmQuestion] > 0 {
		res.Escalated = true
		res.Resources = s.resources

		go func() {
			_ = s.notifier.Alert(context.Background(),
				fmt.Sprintf("Опросник: user=%s отметил мысли о самоповреждении (score=%d, severity=%s)",
					userID, score, res.Severity))
		}()
		metrics.IncEscalation()
	}

	rec := Record{
		Answers:   answers,
		Score:     score,
		Severity:  res.Severity,
		CreatedAt: res.CreatedAt,
	}
	if err := s.repo.Save(ctx, userID, rec); err != nil {
		log.Printf("[assessment] save fail: user=%s err=%v", userID, err)
	}

	metrics.IncAssessmentCompleted()
	metrics.IncInteraction("assessment")

	return res, nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]Record, error) {
	return s.repo.Recent(ctx, userID, limit)
}

// severity — пороги от максимума шкалы
func severity(score, questions int) string {
	max := questions * maxAnswer
	switch {
	case score <= max/4:
		return SeverityMinimal
	case score <= max/2:
		return SeverityMild
	case score <= max*3/4:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}
