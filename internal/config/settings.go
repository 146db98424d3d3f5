package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	AppName    = "Mental Health Support Bot"
	AppVersion = "1.0.0"
)

type LLMConfig struct {
	Model             string
	Temperature       float32
	TopP              float32
	MaxResponseTokens int
}

type EmbeddingConfig struct {
	Model     string
	Dimension int
}

type VectorConfig struct {
	Table string
	TopK  int
}

type SafetyConfig struct {
	MaxToxicity        float64
	BlockedCategories  []string
	RequireHumanReview bool
	MaxRetries         int

	// фиксированные ответы на случай ошибки/блокировки
	FallbackError   string
	FallbackBlocked string
	FallbackReview  string
}

type CrawlerConfig struct {
	MaxResults     int
	MaxDepth       int
	AllowedDomains []string
	UserAgent      string
	Timeout        time.Duration
	RefreshTopics  []string
	RefreshEvery   time.Duration
}

type SpeechConfig struct {
	STTProvider     string // "whisper" | "deepgram"
	TTSProvider     string // "local" | "elevenlabs"
	VoiceID         string
	MaxVoiceSeconds int
}

// Settings — конфигурация приложения (env + дефолты)
type Settings struct {
	Debug       bool
	Port        string
	DatabaseURL string
	DataDir     string

	LLM       LLMConfig
	Embedding EmbeddingConfig
	Vector    VectorConfig
	Safety    SafetyConfig
	Crawler   CrawlerConfig
	Speech    SpeechConfig

	ManifestPath      string
	PrometheusEnabled bool
	LogLevel          string

	AuthSecret   string
	AdminChatIDs []int64

	AssessmentQuestions []string
	CrisisResources     string
}

func Load() *Settings {
	s := &Settings{
		Debug:       getBool("DEBUG", false),
		Port:        getStr("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     getStr("DATA_DIR", "data"),

		LLM: LLMConfig{
			Model:             getStr("MODEL_NAME", "gpt-4o-mini"),
			Temperature:       float32(getFloat("TEMPERATURE", 0.7)),
			TopP:              float32(getFloat("TOP_P", 0.9)),
			MaxResponseTokens: getInt("MAX_RESPONSE_TOKENS", 2000),
		},
		Embedding: EmbeddingConfig{
			Model:     getStr("EMBEDDING_MODEL", "text-embedding-3-small"),
			Dimension: getInt("EMBEDDING_DIMENSION", 1536),
		},
		Vector: VectorConfig{
			Table: getStr("KB_TABLE", "mental_health_kb"),
			TopK:  getInt("KB_TOP_K", 5),
		},
		Safety: SafetyConfig{
			MaxToxicity: getFloat("MAX_TOXICITY", 0.7),
			BlockedCategories: getList("BLOCKED_CATEGORIES",
				"harmful", "unsafe", "toxic", "explicit", "biased", "discriminatory"),
			RequireHumanReview: getBool("REQUIRE_HUMAN_REVIEW", true),
			MaxRetries:         getInt("MAX_RETRIES", 3),

			FallbackError:   "I apologize, but I'm having trouble processing your request safely.",
			FallbackBlocked: "I apologize, but I cannot provide that type of content or assistance.",
			FallbackReview:  "This request requires human review for safety purposes.",
		},
		Crawler: CrawlerConfig{
			MaxResults: getInt("CRAWLER_MAX_RESULTS", 10),
			MaxDepth:   getInt("CRAWLER_MAX_DEPTH", 2),
			AllowedDomains: getList("CRAWLER_ALLOWED_DOMAINS",
				"nimh.nih.gov", "who.int", "mayoclinic.org", "psychiatry.org"),
			UserAgent:     fmt.Sprintf("MentalHealthBot/%s", AppVersion),
			Timeout:       10 * time.Second,
			RefreshTopics: getList("KB_TOPICS"),
			RefreshEvery:  time.Duration(getInt("KB_REFRESH_HOURS", 12)) * time.Hour,
		},
		Speech: SpeechConfig{
			STTProvider:     getStr("STT_PROVIDER", "whisper"),
			TTSProvider:     getStr("TTS_PROVIDER", "local"),
			VoiceID:         getStr("TTS_VOICE_ID", "default"),
			MaxVoiceSeconds: getInt("MAX_VOICE_SECONDS", 300),
		},

		ManifestPath:      getStr("MODEL_MANIFEST", "requirements.txt"),
		PrometheusEnabled: getBool("PROMETHEUS_ENABLED", false),
		LogLevel:          getStr("LOG_LEVEL", "INFO"),

		AuthSecret:   os.Getenv("AUTH_SECRET"),
		AdminChatIDs: getInt64List("ADMIN_CHAT_IDS"),

		AssessmentQuestions: []string{
			"Have you been feeling down or depressed?",
			"Do you have trouble sleeping or sleeping too much?",
			"Have you lost interest in activities you used to enjoy?",
			"Do you feel anxious or worried most of the time?",
			"Have you had thoughts of harming yourself?",
		},
		CrisisResources: crisisResources,
	}

	return s
}

const crisisResources = `**Emergency Resources:**
- National Crisis Hotline: 988
- Emergency Services: 911
- Crisis Text Line: Text HOME to 741741

**Additional Support:**
- National Alliance on Mental Health: 1-800-950-NAMI
- Substance Abuse and Mental Health Services: 1-800-662-HELP`

// Validate — проверка обязательных настроек + создание директорий
func (s *Settings) Validate() error {
	if s.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if s.LLM.Model == "" || s.Embedding.Model == "" {
		return fmt.Errorf("model settings must not be empty")
	}
	if s.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	for _, dir := range []string{s.DataDir, filepath.Join(s.DataDir, "audio")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func (s *Settings) AudioDir() string {
	return filepath.Join(s.DataDir, "audio")
}

func getStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true")
}

func getList(key string, def ...string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getInt64List(key string) []int64 {
	var out []int64
	for _, p := range getList(key) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
