package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// IdentifyAttemptsTotal counts provider calls made by the identify
	// chain, labeled by provider and outcome.
	IdentifyAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plantcare",
		Subsystem: "identify",
		Name:      "provider_attempts_total",
		Help:      "Total identification attempts per provider, labeled by result.",
	}, []string{"provider", "result"})

	// IdentifyFallbacksTotal counts runs where the primary provider failed
	// and the chain advanced to a secondary provider.
	IdentifyFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plantcare",
		Subsystem: "identify",
		Name:      "fallbacks_total",
		Help:      "Total identification runs that fell back past the primary provider.",
	})

	// IdentifyFailuresTotal counts runs where every provider failed.
	IdentifyFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plantcare",
		Subsystem: "identify",
		Name:      "failures_total",
		Help:      "Total identification runs where all providers failed.",
	})

	// IdentifyDurationSeconds is end-to-end chain duration per run.
	IdentifyDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "plantcare",
		Subsystem: "identify",
		Name:      "duration_seconds",
		Help:      "End-to-end duration of an identification run, labeled by result.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"result"})

	// HealthAssessmentsTotal counts health-assessment calls by result.
	HealthAssessmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plantcare",
		Subsystem: "health",
		Name:      "assessments_total",
		Help:      "Total plant health assessments, labeled by result.",
	}, []string{"result"})

	// ChatMessagesTotal counts assistant messages by result.
	ChatMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plantcare",
		Subsystem: "chat",
		Name:      "messages_total",
		Help:      "Total chat assistant messages, labeled by result.",
	}, []string{"result"})
)

// Register registers service metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			IdentifyAttemptsTotal,
			IdentifyFallbacksTotal,
			IdentifyFailuresTotal,
			IdentifyDurationSeconds,
			HealthAssessmentsTotal,
			ChatMessagesTotal,
		)
	})
}
