package metrics

import (
	"runtime"
	"time"

	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SystemMetrics интерфейс для системных метрик
type SystemMetrics interface {
	Record()
	StartRecording(interval time.Duration)
	Stop()
}

type systemMetrics struct {
	log        *logger.Logger
	goroutines prometheus.Gauge
	uptime     prometheus.Gauge
	startedAt  time.Time
	stopCh     chan struct{}
}

// NewSystemMetrics регистрирует Go/process коллекторы и метрики процесса сервиса
func NewSystemMetrics(registry *prometheus.Registry, log *logger.Logger) SystemMetrics {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	goroutines := promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "service_goroutines",
			Help: "Current number of goroutines",
		},
	)

	uptime := promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "service_uptime_seconds",
			Help: "Seconds since the service started",
		},
	)

	return &systemMetrics{
		log:        log,
		goroutines: goroutines,
		uptime:     uptime,
		startedAt:  time.Now(),
		stopCh:     make(chan struct{}),
	}
}

// Record снимает текущие значения
func (m *systemMetrics) Record() {
	m.goroutines.Set(float64(runtime.NumGoroutine()))
	m.uptime.Set(time.Since(m.startedAt).Seconds())
}

// StartRecording начинает запись метрик с заданным интервалом
func (m *systemMetrics) StartRecording(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Record()
			case <-m.stopCh:
				return
			}
		}
	}()
	m.log.Info("System metrics recording started with interval %s", interval)
}

// Stop останавливает запись метрик
func (m *systemMetrics) Stop() {
	close(m.stopCh)
	m.log.Info("System metrics recording stopped")
}
