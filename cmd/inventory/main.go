package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/tair/cafe-inventory/internal/config"
	"github.com/tair/cafe-inventory/internal/inventory"
	"github.com/tair/cafe-inventory/internal/inventory/audit"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/kafka"
	"github.com/tair/cafe-inventory/pkg/logger"
	"github.com/tair/cafe-inventory/pkg/ratelimit"
	"github.com/tair/cafe-inventory/pkg/tracing"
)

const serviceName = "cafe-inventory"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting café inventory service")

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    serviceName,
		Enabled:        cfg.TracingEnabled,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions, limiter, closeBackends := setupBackends(ctx, cfg, reg)
	defer closeBackends()

	var sinks []audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)

		logger.Logger.Info().
			Strs("brokers", cfg.KafkaBrokers).
			Str("topic", cfg.KafkaAuditTopic).
			Msg("Activity log mirrored to Kafka")
	}

	// Initialize application with Wire DI
	app, err := inventory.InitializeApp(cfg, sessions, limiter, reg, sinks)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Store.Close()

	if _, err := inventory.SeedAdmin(app.Store, cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	if app.Store.CountUsers() == 0 {
		logger.Logger.Warn().Msg("No users exist; set ADMIN_PASSWORD or register through /api/register")
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

// setupBackends picks Redis for sessions and login throttling when
// REDIS_ADDR is set and in-process stores otherwise. The returned func
// releases them.
func setupBackends(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (session.Store, ratelimit.Limiter, func()) {
	var limiter ratelimit.Limiter

	if cfg.RedisAddr == "" {
		store := session.NewMemoryStore(nil)
		store.Instrument(reg)
		go store.RunSweeper(ctx, cfg.SessionSweepInterval)

		if cfg.LoginRateLimit > 0 {
			limiter = ratelimit.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, nil)
		}

		logger.Logger.Info().
			Dur("sweep_interval", cfg.SessionSweepInterval).
			Msg("Using in-memory session store")
		return store, limiter, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}

	if cfg.LoginRateLimit > 0 {
		limiter = ratelimit.NewRedisLimiter(client, cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	store := session.NewRedisStore(client, nil)
	logger.Logger.Info().
		Str("addr", cfg.RedisAddr).
		Str("generation", store.Generation()).
		Msg("Using Redis session store")
	return store, limiter, func() {
		if err := client.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
