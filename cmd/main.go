package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/mental_support/internal/ai"
	"github.com/Vovarama1992/mental_support/internal/assessment"
	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/Vovarama1992/mental_support/internal/crawler"
	"github.com/Vovarama1992/mental_support/internal/delivery"
	"github.com/Vovarama1992/mental_support/internal/domain"
	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/infra"
	"github.com/Vovarama1992/mental_support/internal/kb"
	"github.com/Vovarama1992/mental_support/internal/manifest"
	"github.com/Vovarama1992/mental_support/internal/metrics"
	"github.com/Vovarama1992/mental_support/internal/notificator"
	"github.com/Vovarama1992/mental_support/internal/orchestrator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/profile"
	"github.com/Vovarama1992/mental_support/internal/safety"
	"github.com/Vovarama1992/mental_support/internal/speech"
	"github.com/Vovarama1992/mental_support/internal/textrules"
	"github.com/Vovarama1992/mental_support/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG / DB INIT
	// =========================================================================

	_ = godotenv.Load()

	settings := config.Load()
	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	db, err := sql.Open("postgres", settings.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}
	defer db.Close()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// MODEL MANIFEST
	// =========================================================================

	man, err := manifest.ParseFile(settings.ManifestPath)
	if err != nil {
		log.Printf("[manifest] parse fail: %v", err)
	} else {
		log.Printf("[manifest] %d model packages pinned (%s)", man.Len(), man.Path)
		for _, req := range man.Requirements {
			log.Printf("[manifest]   %s", req)
		}
		metrics.SetManifestPackages(man.Len())
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	s3Client, err := infra.NewS3Client()
	if err != nil {
		log.Fatalf("failed to init s3: %v", err)
	}

	// =========================================================================
	// REPOSITORIES
	// =========================================================================

	recordRepo := infra.NewRecordRepo(db)
	profileRepo := profile.NewRepo(db)
	emotionRepo := emotion.NewPostgresHistoryRepo(db)
	safetyRepo := safety.NewPostgresHistoryRepo(db)
	kbStore := kb.NewPostgresStore(db, settings.Vector)
	rulesRepo := textrules.NewRepo(db)
	assessmentRepo := assessment.NewPostgresRepo(db)
	userInfra := user.NewInfra(db)
	var authRepo ports.AuthRepo = infra.NewAuthRepo(db)

	// =========================================================================
	// ADMIN ALERTS
	// =========================================================================

	notifInfra := notificator.NewInfra(nil, settings.AdminChatIDs)
	notifService := notificator.NewService(notifInfra)

	if token := os.Getenv("ADMIN_BOT_TOKEN"); token != "" {
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Printf("[notificator] bot init fail: %v", err)
		} else {
			notifInfra.SetBot(bot)
		}
	}

	// =========================================================================
	// CLIENTS (LLM / STT / TTS / SEARCH)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient(settings.LLM, settings.Embedding)

	var sttClient speech.STTClient = ai.NewWhisperClient()
	if settings.Speech.STTProvider == "deepgram" {
		sttClient = ai.NewDeepgramClient()
	}

	var ttsClient speech.TTSClient = speech.NewZonosTTSClient()
	if settings.Speech.TTSProvider == "elevenlabs" {
		ttsClient = speech.NewElevenLabsClient()
	}

	serpClient := crawler.NewSerpClient()

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	s3Service := domain.NewS3Service(s3Client)
	authService := domain.NewAuthService(authRepo, settings.AuthSecret)
	recordService := domain.NewRecordService(recordRepo, notifService)
	userService := user.NewService(userInfra)
	rulesService := textrules.NewService(rulesRepo)

	profileService := profile.NewService(profileRepo, settings.LLM, settings.Speech)
	if err := profileService.EnsureDefault(context.Background()); err != nil {
		log.Fatalf("failed to ensure default profile: %v", err)
	}

	speechService := speech.NewService(sttClient, ttsClient, settings.Speech)

	emotionService := emotion.NewService(emotionRepo)
	safetyService := safety.NewService(settings.Safety, safetyRepo, notifService)
	kbService := kb.NewService(kbStore, openAIClient, settings.Vector, settings.Embedding)
	crawlerService := crawler.NewService(serpClient, kbService, settings.Crawler)

	aiService := ai.NewAiService(
		openAIClient,
		recordService,
		profileRepo,
		notifService,
	)

	orchestratorService := orchestrator.New(
		emotionService,
		safetyService,
		aiService,
		kbService,
		settings.Safety,
		settings.CrisisResources,
	)

	assessmentService := assessment.NewService(
		settings.AssessmentQuestions,
		settings.CrisisResources,
		assessmentRepo,
		notifService,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	chatHandler := delivery.NewChatHandler(orchestratorService, recordService, zl)
	voiceHandler := delivery.NewVoiceHandler(
		orchestratorService,
		recordService,
		speechService,
		rulesService,
		profileService,
		s3Service,
		settings.AudioDir(),
		zl,
	)
	historyHandler := delivery.NewHistoryHandler(recordService, userService, zl)
	assessmentHandler := delivery.NewAssessmentHandler(assessmentService, zl)
	kbHandler := delivery.NewKBHandler(kbService, crawlerService, zl)
	manifestHandler := delivery.NewManifestHandler(man, settings.CrisisResources)
	profileHandler := profile.NewHandler(profileService)
	rulesHandler := textrules.NewHandler(rulesRepo)
	authHandler := delivery.NewAuthHandler(authService)

	// ROUTES
	delivery.RegisterRoutes(
		r,
		chatHandler,
		voiceHandler,
		historyHandler,
		assessmentHandler,
		kbHandler,
		manifestHandler,
		profileHandler,
		rulesHandler,
		authHandler,
		authService,
	)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	if settings.PrometheusEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	if len(settings.Crawler.RefreshTopics) > 0 {
		go func() {
			ticker := time.NewTicker(settings.Crawler.RefreshEvery)
			defer ticker.Stop()

			for range ticker.C {
				added, err := crawlerService.RefreshKB(context.Background())
				if err != nil {
					log.Printf("[kb-refresh] error: %v", err)
					continue
				}
				log.Printf("[kb-refresh] added %d pages", added)
			}
		}()
	}

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + settings.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "mental_support",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
