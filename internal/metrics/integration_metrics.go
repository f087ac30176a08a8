package metrics

import (
	"time"

	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы вызова интеграции
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// IntegrationMetrics интерфейс для метрик вызовов внешних интеграций
type IntegrationMetrics interface {
	ObserveCall(integration, provider, outcome string, duration time.Duration)
	IncSubmission(kind, outcome string)
}

type integrationMetrics struct {
	log         *logger.Logger
	calls       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
}

// NewIntegrationMetrics регистрирует метрики интеграций в registry
func NewIntegrationMetrics(registry *prometheus.Registry, log *logger.Logger) IntegrationMetrics {
	calls := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_calls_total",
			Help: "The total number of outbound integration calls",
		},
		[]string{"integration", "provider", "outcome"},
	)

	duration := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "integration_call_duration_seconds",
			Help:    "Outbound integration call latency",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms .. 6.4s
		},
		[]string{"integration", "provider"},
	)

	submissions := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "The total number of processed form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	return &integrationMetrics{
		log:         log,
		calls:       calls,
		duration:    duration,
		submissions: submissions,
	}
}

// ObserveCall учитывает один вызов интеграции
func (m *integrationMetrics) ObserveCall(integration, provider, outcome string, duration time.Duration) {
	m.calls.WithLabelValues(integration, provider, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.duration.WithLabelValues(integration, provider).Observe(duration.Seconds())
	}
}

// IncSubmission учитывает обработанную заявку (booking, contact, payment)
func (m *integrationMetrics) IncSubmission(kind, outcome string) {
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

type nopMetrics struct{}

// NewNop метрики-заглушка для тестов и CLI
func NewNop() IntegrationMetrics { return nopMetrics{} }

func (nopMetrics) ObserveCall(string, string, string, time.Duration) {}
func (nopMetrics) IncSubmission(string, string) {}

// Outcome переводит признак успеха в значение метки
func Outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
