package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/config"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/db"
	apphttp "github.com/WailSalutem-Health-Care/speech-therapy-service/internal/http"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/telemetry"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Errorw("speech-therapy-service stopped with error", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	logger.Infow("speech-therapy-service starting", "env", cfg.Env, "port", cfg.Port)

	if err := logging.InitSentry(cfg.SentryDSN, cfg.Env, version); err != nil {
		logger.Warnw("Sentry disabled", "error", err)
	}
	defer logging.FlushSentry()

	ctx := context.Background()

	if cfg.OTelEnabled {
		provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig(cfg.Env), logger)
		if err != nil {
			logger.Warnw("OpenTelemetry disabled", "error", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warnw("OpenTelemetry shutdown failed", "error", err)
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := db.MigrateUp(database); err != nil {
			return err
		}
		logger.Info("✓ Database migrations applied")
	}

	var publisher messaging.PublisherInterface
	if cfg.RabbitMQURL != "" {
		p, err := messaging.NewPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warnw("RabbitMQ unavailable, domain events disabled", "error", err)
		} else {
			defer p.Close()
			publisher = p
		}
	} else {
		logger.Info("RABBITMQ_URL not set, domain events disabled")
	}

	handler := apphttp.SetupRouter(apphttp.Dependencies{
		Config:    cfg,
		DB:        database,
		Logger:    logger,
		Publisher: publisher,
		Metrics:   metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("🚀 Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Infow("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
