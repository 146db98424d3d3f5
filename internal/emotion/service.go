package emotion

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Vovarama1992/mental_support/internal/metrics"
	"github.com/jonreiter/govader"
)

type service struct {
	analyzer *govader.SentimentIntensityAnalyzer
	repo     HistoryRepo
}

func NewService(repo HistoryRepo) Service {
	return &service{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		repo:     repo,
	}
}

// Analyze — оценка эмоций по VADER + эвристики по ключевым словам
func (s *service) Analyze(ctx context.Context, userID, text string) (Analysis, error) {
	scores := s.analyzer.PolarityScores(text)
	compound := scores.Compound

	a := Analysis{
		Compound:  compound,
		CreatedAt: time.Now(),
	}

	// 1) базовая эмоция по compound и доле нейтральных слов
	switch {
	case compound >= 0.5:
		a.PrimaryEmotion = "happy"
		a.SecondaryEmotions = []string{"content", "satisfied"}
	case compound <= -0.5:
		a.PrimaryEmotion = "sad"
		a.SecondaryEmotions = []string{"disappointed", "frustrated"}
	case scores.Neutral >= 0.8:
		a.PrimaryEmotion = "neutral"
		a.SecondaryEmotions = []string{"calm", "balanced"}
	default:
		a.PrimaryEmotion = "mixed"
	}

	// 2) интенсивность 1..10
	a.Intensity = clampIntensity(compound)

	// 3) триггеры и клинические индикаторы по ключевым словам
	lower := strings.ToLower(text)
	a.Triggers = detectTriggers(lower)
	a.ClinicalIndicators = detectClinicalIndicators(lower)

	// 4) сравниваем с прошлым состоянием
	prev, err := s.repo.Last(ctx, userID)
	if err != nil {
		log.Printf("[emotion] last analysis fail: user=%s err=%v", userID, err)
	}
	a.PatternChanges = patternChanges(prev, a)

	// 5) уверенность
	a.Confidence = calcConfidence(a)

	if err := s.repo.Save(ctx, userID, a); err != nil {
		log.Printf("[emotion] save fail: user=%s err=%v", userID, err)
	}

	metrics.SetEmotionIntensity(a.PrimaryEmotion, float64(a.Intensity))

	return a, nil
}

func (s *service) GetTrend(ctx context.Context, userID string, limit int) (Trend, error) {
	history, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return Trend{}, fmt.Errorf("emotion history: %w", err)
	}
	return buildTrend(history), nil
}

func buildTrend(history []Analysis) Trend {
	t := Trend{MostCommonEmotion: "unknown"}
	if len(history) == 0 {
		return t
	}

	counts := map[string]int{}
	total := 0
	for _, a := range history {
		t.PrimaryEmotions = append(t.PrimaryEmotions, a.PrimaryEmotion)
		t.IntensityTrend = append(t.IntensityTrend, a.Intensity)
		counts[a.PrimaryEmotion]++
		total += a.Intensity
	}

	t.AverageIntensity = float64(total) / float64(len(history))

	best := 0
	for emo, n := range counts {
		if n > best {
			best = n
			t.MostCommonEmotion = emo
		}
	}

	return t
}

func clampIntensity(compound float64) int {
	v := int(math.Abs(compound) * 10)
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func detectTriggers(lower string) []string {
	var out []string
	if strings.Contains(lower, "work") || strings.Contains(lower, "job") {
		out = append(out, "work-related stress")
	}
	if strings.Contains(lower, "family") || strings.Contains(lower, "parent") {
		out = append(out, "family dynamics")
	}
	if strings.Contains(lower, "health") || strings.Contains(lower, "sick") {
		out = append(out, "health concerns")
	}
	return out
}

func detectClinicalIndicators(lower string) []string {
	var out []string
	if strings.Contains(lower, "depressed") || strings.Contains(lower, "hopeless") {
		out = append(out, "depression symptoms")
	}
	if strings.Contains(lower, "anxious") || strings.Contains(lower, "worried") {
		out = append(out, "anxiety symptoms")
	}
	if strings.Contains(lower, "angry") || strings.Contains(lower, "frustrated") {
		out = append(out, "emotional dysregulation")
	}
	return out
}

func patternChanges(prev *Analysis, cur Analysis) []string {
	if prev == nil {
		return nil
	}

	var out []string
	if prev.PrimaryEmotion != cur.PrimaryEmotion {
		out = append(out, fmt.Sprintf("shift from %s to %s", prev.PrimaryEmotion, cur.PrimaryEmotion))
	}
	switch delta := cur.Intensity - prev.Intensity; {
	case delta >= 3:
		out = append(out, "intensity spike")
	case delta <= -3:
		out = append(out, "intensity drop")
	}
	return out
}

// calcConfidence — неполный разбор снижает уверенность, смешанная картина сильнее всего
func calcConfidence(a Analysis) float64 {
	confidence := 1.0

	if len(a.Triggers) == 0 || len(a.SecondaryEmotions) == 0 {
		confidence *= 0.8
	}
	if a.PrimaryEmotion == "mixed" {
		confidence *= 0.5
	}

	return confidence
}
