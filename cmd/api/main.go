package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/multi-auth-api/internal/api/http"
	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/config"
	"github.com/spec-kit/multi-auth-api/internal/events"
	"github.com/spec-kit/multi-auth-api/internal/observability"
	"github.com/spec-kit/multi-auth-api/internal/service"
	"github.com/spec-kit/multi-auth-api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService, err := service.NewAuthServiceFromConfig(cfg.Auth, dispatcher)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	guards := auth.NewGuards(
		authService.TokenManager(),
		auth.NewStaticTokenVerifier(cfg.Auth.SimpleAPIToken),
		dispatcher,
	)

	app := httptransport.NewApp(httptransport.Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Auth:    authService,
		Guards:  guards,
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env_state", cfg.App.EnvState),
			zap.String("algorithm", cfg.Auth.Algorithm),
			zap.Duration("token_ttl", cfg.Auth.AccessTokenTTL()),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
