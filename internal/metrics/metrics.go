package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interactionTypes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_interaction_types",
		Help: "Count of different interaction types",
	}, []string{"type"}) // type=text|voice|assessment

	responseTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "response_time_seconds",
		Help:    "Time taken to generate responses",
		Buckets: []float64{0.1, 0.5, 1, 2, 5},
	})

	emotionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "user_emotion_intensity",
		Help: "Intensity of detected emotions",
	}, []string{"emotion"})

	safetyFlags = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safety_flag_triggers",
		Help: "Count of triggered safety flags",
	}, []string{"severity_level"})

	assessmentCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_completed",
		Help: "Number of completed assessments",
	})

	embeddingTime = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "embedding_generation_time",
		Help: "Time spent generating text embeddings",
	})

	escalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emergency_escalations_total",
		Help: "Total number of emergency protocol activations",
	})

	crawlerFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_page_fetches_total",
		Help: "Crawler page fetch attempts by outcome",
	}, []string{"outcome"}) // outcome=success|error|blocked

	manifestPackages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "model_manifest_packages",
		Help: "Number of model packages pinned in the manifest",
	})
)

func IncInteraction(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	interactionTypes.WithLabelValues(kind).Inc()
}

func ObserveResponseTime(d time.Duration) {
	responseTime.Observe(d.Seconds())
}

func SetEmotionIntensity(emotion string, intensity float64) {
	if emotion == "" {
		emotion = "unknown"
	}
	emotionGauge.WithLabelValues(emotion).Set(intensity)
}

func IncSafetyFlag(severity string) {
	if severity == "" {
		severity = "UNKNOWN"
	}
	safetyFlags.WithLabelValues(severity).Inc()
}

func IncAssessmentCompleted() {
	assessmentCompleted.Inc()
}

func ObserveEmbeddingTime(d time.Duration) {
	embeddingTime.Observe(d.Seconds())
}

func IncEscalation() {
	escalationsTotal.Inc()
}

func IncCrawlerFetch(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	crawlerFetches.WithLabelValues(outcome).Inc()
}

func SetManifestPackages(n int) {
	manifestPackages.Set(float64(n))
}
