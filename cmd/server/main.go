package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medusa-studio/booking-api/config"
	"github.com/medusa-studio/booking-api/internal/api/rest"
	"github.com/medusa-studio/booking-api/internal/api/rest/handlers"
	"github.com/medusa-studio/booking-api/internal/events"
	"github.com/medusa-studio/booking-api/internal/integration/crm"
	"github.com/medusa-studio/booking-api/internal/integration/email"
	"github.com/medusa-studio/booking-api/internal/integration/payment"
	"github.com/medusa-studio/booking-api/internal/integration/transport"
	"github.com/medusa-studio/booking-api/internal/metrics"
	"github.com/medusa-studio/booking-api/internal/registry"
	"github.com/medusa-studio/booking-api/internal/repository"
	"github.com/medusa-studio/booking-api/internal/service"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	// Загрузка конфигурации
	cfg, err := config.Load(*envPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Prometheus
	promRegistry := prometheus.NewRegistry()
	integrationMetrics := metrics.NewIntegrationMetrics(promRegistry, log)
	systemMetrics := metrics.NewSystemMetrics(promRegistry, log)

	systemMetrics.StartRecording(15 * time.Second)
	defer systemMetrics.Stop()

	reg := registry.New(cfg.Integrations.Values)
	client := transport.New(cfg.Integrations.Timeout, log)

	// Кэш токенов CRM: Redis, если настроен, иначе в памяти процесса
	var tokenCache repository.TokenCache = repository.NewMemoryTokenCache()
	if cfg.Redis.Enabled() {
		redisClient, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Warnw("Redis unavailable, using in-memory token cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			redisCache := repository.NewRedisCacheRepository(redisClient, log)
			defer redisCache.Close()
			tokenCache = redisCache
		}
	}

	publisher := newPublisher(cfg.Kafka, log)
	defer publisher.Close()

	emailAdapter := email.NewAdapter(reg, client, log, email.WithMetrics(integrationMetrics))
	paymentAdapter := payment.NewAdapter(reg, client, log,
		payment.WithReturnURL(cfg.Integrations.ReturnURL),
		payment.WithMetrics(integrationMetrics),
	)
	crmAdapter := crm.NewAdapter(reg, client, cfg.Integrations.ZohoRegion, log,
		crm.WithTokenCache(tokenCache),
		crm.WithMetrics(integrationMetrics),
	)

	log.Infow("Integrations configured",
		"email", emailAdapter.Configured(),
		"payments", paymentAdapter.Configured(),
		"crm", crmAdapter.Configured(),
		"events", cfg.Kafka.Enabled(),
	)

	deps := service.Deps{
		Email:   emailAdapter,
		CRM:     crmAdapter,
		Events:  publisher,
		Metrics: integrationMetrics,
		Studio:  cfg.Studio,
		Log:     log,
	}

	if cfg.Logging.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.SetupRouter(cfg, rest.Handlers{
		Booking: handlers.NewBookingHandler(service.NewBookingService(deps, service.NewIDGenerator()), log),
		Contact: handlers.NewContactHandler(service.NewContactService(deps), log),
		Payment: handlers.NewPaymentHandler(service.NewPaymentService(deps, paymentAdapter), log),
		Health:  handlers.NewHealthHandler(emailAdapter, paymentAdapter, crmAdapter),
	}, promRegistry, log)

	server := rest.NewServer(router, cfg.Server, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}

// newPublisher Kafka издатель событий; без брокеров или при ошибке подключения события не отправляются
func newPublisher(cfg config.KafkaConfig, log *logger.Logger) events.Publisher {
	if !cfg.Enabled() {
		return events.NewNopPublisher()
	}

	producerCfg := events.DefaultProducerConfig()
	spec := events.TopicSpec{Name: cfg.Topic, NumPartitions: 3, ReplicationFactor: 1}
	if err := events.EnsureTopic(cfg.Brokers, spec, producerCfg, log); err != nil {
		log.Warnw("Failed to ensure events topic", "topic", cfg.Topic, "error", err)
	}

	publisher, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, producerCfg, log)
	if err != nil {
		log.Warnw("Kafka unavailable, events disabled", "brokers", cfg.Brokers, "error", err)
		return events.NewNopPublisher()
	}
	return publisher
}
