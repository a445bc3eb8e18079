package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"figaro/internal/api"
	"figaro/internal/calendar"
	"figaro/internal/config"
	"figaro/internal/dashboard"
	"figaro/internal/export"
	"figaro/internal/hours"
	"figaro/internal/logging"
	"figaro/internal/metrics"
	"figaro/internal/session"
	signalbus "figaro/internal/signal"
	"figaro/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	ctx, stop := signalContext()
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(cfg.Monitoring.PrometheusPort, &logger)
	}

	sessions, redisClient, err := initSession(ctx, cfg, &logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	client := api.NewClient(cfg.Backend, &logger)
	bus := signalbus.NewBus()
	st := store.New(client, sessions, bus, &logger)
	editor := hours.NewEditor(client, sessions, st, &logger)
	exporter := export.NewExporter(client, cfg.Exports.Path, &logger)

	bus.Subscribe(store.SignalNavigateLogin, func(string) {
		logger.Warn().Msg("session expired, routing to login")
	})

	admin := dashboard.NewAdmin(client, sessions, st, editor, calendar.Italian, &logger)
	customer := dashboard.NewCustomer(client, sessions, st, &logger)

	switch {
	case sessions.IsAdmin():
		if err := admin.Init(ctx); err != nil {
			return err
		}
		if _, err := exporter.ExportDay(ctx, admin.SelectedDate()); err != nil {
			logger.Warn().Err(err).Msg("agenda export failed")
		}
	case sessions.IsAuthenticated():
		customer.Load(ctx)
	default:
		logger.Info().Msg("no active session, waiting for login")
	}

	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("dashboard engine running")
	<-ctx.Done()
	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := logging.Component(baseLogger, "dashboard-main")

	return cfg, logger, closer, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func initSession(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*session.Provider, *redis.Client, error) {
	var (
		sessionStore session.Store
		redisClient  *redis.Client
	)

	switch cfg.Session.Storage {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory session store")
			_ = redisClient.Close()
			redisClient = nil
			sessionStore = session.NewMemoryStore()
			break
		}
		ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
		sessionStore = session.NewRedisStore(redisClient, cfg.Session.RedisKey, ttl)
	default:
		sessionStore = session.NewMemoryStore()
	}

	provider := session.NewProvider(sessionStore, logger)
	if err := provider.RefreshFromStorage(ctx); err != nil {
		return nil, redisClient, fmt.Errorf("restore session: %w", err)
	}
	return provider, redisClient, nil
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
