package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/profile"
	"github.com/Vovarama1992/mental_support/internal/textrules"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hChat *ChatHandler,
	hVoice *VoiceHandler,
	hHistory *HistoryHandler,
	hAssessment *AssessmentHandler,
	hKB *KBHandler,
	hManifest *ManifestHandler,
	hProfile *profile.Handler,
	hRules *textrules.Handler,
	hAuth *AuthHandler,
	authSvc ports.AuthService,
) {
	// --- auth ---
	r.With(httputil.RecoverMiddleware).
		Post("/auth/login", hAuth.Login)

	// --- кризисные контакты: без авторизации ---
	r.With(httputil.RecoverMiddleware).
		Get("/resources", hManifest.GetResources)

	// --- protected ---
	r.Route("/", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			AuthMiddleware(authSvc),
		)

		// --- диалог ---
		pr.With(httprate.LimitByIP(30, time.Minute)).Post("/chat", hChat.Chat)
		pr.With(httprate.LimitByIP(10, time.Minute)).Post("/voice", hVoice.Voice)

		// --- история ---
		pr.Get("/history/{user_id}", hHistory.GetHistory)
		pr.Delete("/history/{user_id}", hHistory.DeleteHistory)
		pr.Get("/users", hHistory.ListUsers)

		// --- аналитика ---
		pr.Get("/trends/{user_id}", hChat.GetTrends)
		pr.Get("/safety/{user_id}", hChat.GetSafetySummary)

		// --- опросник ---
		pr.Get("/assessment", hAssessment.GetQuestions)
		pr.Post("/assessment", hAssessment.Submit)
		pr.Get("/assessment/history/{user_id}", hAssessment.GetHistory)

		// --- база знаний ---
		pr.Post("/kb/documents", hKB.AddDocument)
		pr.Post("/kb/search", hKB.Search)
		pr.Post("/kb/crawl", hKB.Crawl)

		// --- профиль ассистента ---
		pr.Get("/profile", hProfile.Get)
		pr.Patch("/profile", hProfile.Update)

		// --- правила произношения ---
		pr.Get("/tts-rules", hRules.List)
		pr.Post("/tts-rules", hRules.Add)
		pr.Delete("/tts-rules", hRules.Delete)

		// --- манифест моделей ---
		pr.Get("/requirements", hManifest.GetRequirements)
	})
}
