package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askarovb/auth-service/config"
	"github.com/askarovb/auth-service/internal/cleanup"
	"github.com/askarovb/auth-service/internal/email"
	"github.com/askarovb/auth-service/internal/health"
	"github.com/askarovb/auth-service/internal/infrastructure/memory"
	"github.com/askarovb/auth-service/internal/infrastructure/postgres"
	ctxlog "github.com/askarovb/auth-service/internal/log"
	"github.com/askarovb/auth-service/internal/metrics"
	httptransport "github.com/askarovb/auth-service/internal/transport/http"
	"github.com/askarovb/auth-service/internal/transport/http/handler"
	"github.com/askarovb/auth-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	jwtTTL := time.Duration(cfg.JWTTTLHours) * time.Hour

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, sender, usecase.AuthConfig{
		JWTKey:               []byte(cfg.JWTSecret),
		JWTTTL:               jwtTTL,
		BcryptCost:           cfg.BcryptCost,
		ResetTokenTTL:        time.Duration(cfg.ResetTokenTTLMin) * time.Minute,
		BaseURL:              cfg.BaseURL,
		RequireVerifiedLogin: cfg.RequireVerifiedLogin,
	})
	authHandler := handler.NewAuthHandler(authUsecase, jwtTTL, logger)

	// Demo CRUD
	cityRepo := memory.NewCityRepository()
	cityUsecase := usecase.NewCityUsecase(cityRepo)
	cityHandler := handler.NewCityHandler(cityUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	reaper, err := cleanup.NewReaper(userRepo, cfg.CleanupCron, logger)
	if err != nil {
		stop()
		log.Fatalf("reaper: %v", err)
	}
	go reaper.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, cityHandler, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
