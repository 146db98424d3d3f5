package safety

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/Vovarama1992/mental_support/internal/metrics"
	"github.com/Vovarama1992/mental_support/internal/notificator"
	mapset "github.com/deckarep/golang-set"
)

// crisisPhrases — прямые сигналы суицидального риска
var crisisPhrases = []string{
	"kill myself",
	"suicide",
	"end my life",
	"want to die",
	"wanna die",
	"hurt myself",
	"harm myself",
	"self-harm",
	"no reason to live",
	"better off dead",
	"end it all",
}

var violencePhrases = []string{
	"hurt someone",
	"kill someone",
	"being abused",
	"abusing me",
	"hits me",
	"violent",
}

// categoryKeywords — по ключевому слову определяем запрещённую категорию
var categoryKeywords = map[string][]string{
	"harmful":        {"weapon", "bomb", "poison someone"},
	"unsafe":         {"overdose instructions", "lethal dose"},
	"toxic":          {"hate speech", "slur"},
	"explicit":       {"explicit content", "nsfw"},
	"biased":         {"stereotype"},
	"discriminatory": {"racist joke", "sexist joke"},
}

var riskRank = map[string]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

type service struct {
	cfg      config.SafetyConfig
	blocked  mapset.Set
	repo     HistoryRepo
	notifier notificator.Notificator
}

func NewService(cfg config.SafetyConfig, repo HistoryRepo, n notificator.Notificator) Service {
	blocked := mapset.NewSet()
	for _, c := range cfg.BlockedCategories {
		blocked.Add(c)
	}

	return &service{
		cfg:      cfg,
		blocked:  blocked,
		repo:     repo,
		notifier: n,
	}
}

// Assess — правила по фразам + эскалация по эмоциональной интенсивности
func (s *service) Assess(ctx context.Context, userID, text string, emotionIntensity int) (Assessment, error) {
	lower := strings.ToLower(text)

	a := Assessment{
		RiskLevel:  RiskLow,
		Confidence: 0.75,
		CreatedAt:  time.Now(),
	}

	// 1) кризисные фразы
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			a.RiskLevel = RiskCritical
			a.EmergencyProtocol = true
			a.Confidence = 0.95
			a.Concerns = append(a.Concerns, "self-harm risk")
			break
		}
	}

	// 2) насилие
	if riskRank[a.RiskLevel] < riskRank[RiskHigh] {
		for _, phrase := range violencePhrases {
			if strings.Contains(lower, phrase) {
				a.RiskLevel = RiskHigh
				a.Confidence = 0.85
				a.Concerns = append(a.Concerns, "violence or abuse mention")
				break
			}
		}
	}

	// 3) запрещённые категории
	for category, keywords := range categoryKeywords {
		if !s.blocked.Contains(category) {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				a.Blocked = true
				a.Concerns = append(a.Concerns, "blocked category: "+category)
				if riskRank[a.RiskLevel] < riskRank[RiskMedium] {
					a.RiskLevel = RiskMedium
					a.Confidence = 0.85
				}
				break
			}
		}
	}

	// 4) высокая интенсивность сама по себе поднимает риск
	if emotionIntensity >= 8 && riskRank[a.RiskLevel] < riskRank[RiskMedium] {
		a.RiskLevel = RiskMedium
		a.Confidence = 0.6
		a.Concerns = append(a.Concerns, "elevated emotional intensity")
	}

	if s.cfg.RequireHumanReview && riskRank[a.RiskLevel] >= riskRank[RiskHigh] {
		a.RequiresReview = true
	}

	if a.RiskLevel != RiskLow || a.Blocked {
		metrics.IncSafetyFlag(a.RiskLevel)
	}

	if err := s.repo.Save(ctx, userID, a); err != nil {
		log.Printf("[safety] save fail: user=%s err=%v", userID, err)
	}

	if a.EmergencyProtocol {
		go func(a Assessment) {
			_ = s.notifier.Alert(context.Background(),
				fmt.Sprintf("Кризисное сообщение: user=%s risk=%s concerns=%s",
					userID, a.RiskLevel, strings.Join(a.Concerns, ", ")))
		}(a)
	}

	return a, nil
}

func (s *service) GetSummary(ctx context.Context, userID string, limit int) (Summary, error) {
	history, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return Summary{}, fmt.Errorf("safety history: %w", err)
	}

	sum := Summary{CurrentRiskLevel: "UNKNOWN"}
	for _, a := range history {
		sum.RiskLevelHistory = append(sum.RiskLevelHistory, a.RiskLevel)
		if a.EmergencyProtocol {
			sum.EmergencyProtocolsActivated++
		}
	}
	if n := len(sum.RiskLevelHistory); n > 0 {
		sum.CurrentRiskLevel = sum.RiskLevelHistory[n-1]
	}

	return sum, nil
}
