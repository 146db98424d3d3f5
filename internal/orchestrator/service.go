package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/Vovarama1992/mental_support/internal/ai"
	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/kb"
	"github.com/Vovarama1992/mental_support/internal/metrics"
	"github.com/Vovarama1992/mental_support/internal/safety"
)

const fallbackReply = "I apologize, but I'm having trouble processing your message. Please try again."

// сколько последних анализов берём в тренды
const trendWindow = 50

type service struct {
	emotion   emotion.Service
	safety    safety.Service
	chat      ai.Service
	kb        kb.Service
	safetyCfg config.SafetyConfig
	resources string
}

func New(
	emotionSvc emotion.Service,
	safetySvc safety.Service,
	chatSvc ai.Service,
	kbSvc kb.Service,
	safetyCfg config.SafetyConfig,
	resources string,
) Service {
	return &service{
		emotion:   emotionSvc,
		safety:    safetySvc,
		chat:      chatSvc,
		kb:        kbSvc,
		safetyCfg: safetyCfg,
		resources: resources,
	}
}

// ProcessMessage — конвейер: эмоции → безопасность → база знаний → ответ
func (s *service) ProcessMessage(ctx context.Context, userID, branch, text string) (ProcessResult, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveResponseTime(time.Since(start))
	}()

	if branch == "" {
		branch = "text"
	}
	metrics.IncInteraction(branch)

	result := ProcessResult{Timestamp: time.Now()}

	// 1) эмоции
	emotionData, err := s.emotion.Analyze(ctx, userID, text)
	if err != nil {
		log.Printf("[orchestrator] emotion fail: user=%s err=%v", userID, err)
	} else {
		result.EmotionAnalysis = &emotionData
	}

	// 2) безопасность
	intensity := 0
	if result.EmotionAnalysis != nil {
		intensity = result.EmotionAnalysis.Intensity
	}
	safetyData, err := s.safety.Assess(ctx, userID, text, intensity)
	if err != nil {
		log.Printf("[orchestrator] safety fail: user=%s err=%v", userID, err)
	} else {
		result.SafetyAssessment = &safetyData
	}

	s.logInteraction(userID, result)

	// 3) запрещённый контент — отвечаем фиксированно, без модели
	if result.SafetyAssessment != nil && result.SafetyAssessment.Blocked {
		result.Response = s.safetyCfg.FallbackBlocked
		return result, nil
	}

	// 4) выдержки из базы знаний
	snippets, err := s.kb.Snippets(ctx, text, 0)
	if err != nil {
		log.Printf("[orchestrator] kb fail: user=%s err=%v", userID, err)
	}

	// 5) ответ модели
	reply, err := s.chat.GetReply(ctx, userID, branch, text, ai.ReplyContext{
		Emotion:   result.EmotionAnalysis,
		Safety:    result.SafetyAssessment,
		Knowledge: snippets,
	})
	if err != nil {
		log.Printf("[orchestrator] chat fail: user=%s err=%v", userID, err)
		result.Response = fallbackReply
		return result, nil
	}
	result.Response = reply

	// 6) эскалация — прикладываем кризисные ресурсы
	if result.SafetyAssessment != nil && result.SafetyAssessment.EmergencyProtocol {
		result.RequiresEscalation = true
		result.Response += "\n\n" + s.resources
		metrics.IncEscalation()
	}

	return result, nil
}

func (s *service) logInteraction(userID string, r ProcessResult) {
	if r.SafetyAssessment != nil && r.SafetyAssessment.EmergencyProtocol {
		log.Printf("[orchestrator] EMERGENCY PROTOCOL: user=%s concerns=%v",
			userID, r.SafetyAssessment.Concerns)
	}

	lowConfidence := (r.EmotionAnalysis != nil && r.EmotionAnalysis.Confidence < 0.5) ||
		(r.SafetyAssessment != nil && r.SafetyAssessment.Confidence < 0.5)
	if lowConfidence {
		log.Printf("[orchestrator] low confidence analysis: user=%s", userID)
	}
}

func (s *service) GetEmotionalTrends(ctx context.Context, userID string) (emotion.Trend, error) {
	return s.emotion.GetTrend(ctx, userID, trendWindow)
}

func (s *service) GetSafetySummary(ctx context.Context, userID string) (safety.Summary, error) {
	return s.safety.GetSummary(ctx, userID, trendWindow)
}
