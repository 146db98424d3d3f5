package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/notificator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/profile"
	"github.com/Vovarama1992/mental_support/internal/safety"
	openai "github.com/sashabaranov/go-openai"
)

type AiService struct {
	openaiClient  *OpenAIClient
	recordService ports.RecordService
	profileRepo   profile.Repo
	Notifier      notificator.Notificator
}

func NewAiService(
	client *OpenAIClient,
	recordSvc ports.RecordService,
	profileRepo profile.Repo,
	notifier notificator.Notificator,
) *AiService {
	return &AiService{
		openaiClient:  client,
		recordService: recordSvc,
		profileRepo:   profileRepo,
		Notifier:      notifier,
	}
}

// диагностика ошибок GPT
func analyzeOpenAIError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Неверный API-ключ OpenAI."
	case strings.Contains(msg, "status code: 404"):
		return "Модель не найдена."
	case strings.Contains(msg, "status code: 429"):
		return "Превышен лимит OpenAI."
	case strings.Contains(msg, "status code: 400") && strings.Contains(msg, "model"):
		return "Неверно указана модель."
	case strings.Contains(msg, "status code: 400"):
		return "Некорректный запрос к OpenAI."
	case strings.Contains(msg, "status code: 500"):
		return "Внутренняя ошибка OpenAI."
	}
	return "Неизвестная ошибка OpenAI: " + err.Error()
}

// уведомления
func (s *AiService) notifyConfigError(ctx context.Context, err error) {
	s.Notifier.Notify(ctx, err,
		fmt.Sprintf("Ошибка конфигурации профиля ассистента: %v", err))
}

func (s *AiService) notifyGptError(ctx context.Context, model string, err error) {
	diag := analyzeOpenAIError(err)
	s.Notifier.Notify(ctx, err,
		fmt.Sprintf("Ошибка GPT\nМодель: %s\n%v\n\n%s", model, err, diag))
}

// === главный метод ===
func (s *AiService) GetReply(
	ctx context.Context,
	userID string,
	branch string, // может быть пустым
	userText string,
	rc ReplyContext,
) (string, error) {

	if branch == "" {
		branch = "text"
	}

	start := time.Now()
	log.Printf("[ai] >>> START user=%s branch=%s", userID, branch)

	// 1) профиль ассистента
	prof, err := s.profileRepo.Get(ctx)
	if err != nil {
		s.notifyConfigError(ctx, err)
		return "", err
	}

	// 2) стилевой промпт по ветке
	var stylePrompt string
	switch branch {
	case "voice":
		stylePrompt = prof.VoiceStylePrompt
	default:
		stylePrompt = prof.TextStylePrompt
	}

	stylePrompt = strings.TrimSpace(stylePrompt)
	if stylePrompt == "" {
		stylePrompt = "You are a compassionate mental health support assistant."
	}

	// 3) full style prompt
	fullStyle := stylePrompt + `
Limit: keep the reply under 3000 characters.
Be warm and concrete; reflect back what the user actually said.`

	// 4) координационный супер-промпт
	superPrompt := `This is a coordination prompt.
You are the reply model of a mental health support assistant.

The conversation history and the last user message follow. System messages may
also carry an emotional analysis, a safety assessment and knowledge base
excerpts prepared for the last message. Treat them as background context: never
quote them, never mention that they exist.

Ground your reply in the user's own words first and the context second.
Never diagnose a condition and never give medication advice.
If the safety assessment reports an active emergency protocol, acknowledge the
user's pain directly and encourage them to use the crisis resources that will
be attached to your reply.`

	// 5) история
	history, _ := s.recordService.GetFittingHistory(ctx, userID)
	log.Printf("[ai] history entries: %d", len(history))

	// 6) формируем messages
	messages := []openai.ChatCompletionMessage{
		{Role: "system", Content: superPrompt},
		{Role: "system", Content: "Style prompt: " + fullStyle},
	}

	if block := formatEmotion(rc.Emotion); block != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: "system", Content: block})
	}
	if block := formatSafety(rc.Safety); block != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: "system", Content: block})
	}
	if block := formatKnowledge(rc.Knowledge); block != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: "system", Content: block})
	}

	for _, r := range history {
		role := "user"
		if r.Role == "assistant" {
			role = "assistant"
		}

		if r.Text != nil {
			txt := strings.TrimSpace(*r.Text)
			if txt != "" {
				messages = append(messages, openai.ChatCompletionMessage{
					Role:    role,
					Content: txt,
				})
			}
		}
	}

	// 7) последнее сообщение
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    "user",
		Content: userText,
	})

	// 8) GPT
	ctxGPT, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	reply, err := s.openaiClient.GetCompletion(ctxGPT, messages, prof.Model)
	log.Printf("[ai][%.1fs] GPT done err=%v", time.Since(start).Seconds(), err)

	if err != nil {
		s.notifyGptError(ctx, prof.Model, err)
		return "", err
	}

	return reply, nil
}

func formatEmotion(a *emotion.Analysis) string {
	if a == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Emotional context for the last user message:\n")
	fmt.Fprintf(&b, "Primary Emotion: %s\n", a.PrimaryEmotion)
	fmt.Fprintf(&b, "Intensity (1-10): %d\n", a.Intensity)
	if len(a.Triggers) > 0 {
		fmt.Fprintf(&b, "Triggers: %s\n", strings.Join(a.Triggers, ", "))
	}
	if len(a.ClinicalIndicators) > 0 {
		fmt.Fprintf(&b, "Clinical Indicators: %s\n", strings.Join(a.ClinicalIndicators, ", "))
	}
	if len(a.PatternChanges) > 0 {
		fmt.Fprintf(&b, "Pattern Changes: %s\n", strings.Join(a.PatternChanges, ", "))
	}
	return b.String()
}

func formatSafety(a *safety.Assessment) string {
	if a == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Safety assessment for the last user message:\n")
	fmt.Fprintf(&b, "Risk Level: %s\n", a.RiskLevel)
	if len(a.Concerns) > 0 {
		fmt.Fprintf(&b, "Concerns: %s\n", strings.Join(a.Concerns, ", "))
	}
	if a.EmergencyProtocol {
		b.WriteString("Emergency Protocol: active\n")
	}
	return b.String()
}

func formatKnowledge(snippets []string) string {
	if len(snippets) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Knowledge base excerpts relevant to the last user message:\n")
	for _, s := range snippets {
		b.WriteString("- " + strings.TrimSpace(s) + "\n")
	}
	return b.String()
}
