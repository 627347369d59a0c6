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

	"github.com/ErlanBelekov/portfolio/config"
	"github.com/ErlanBelekov/portfolio/internal/health"
	"github.com/ErlanBelekov/portfolio/internal/housekeeping"
	"github.com/ErlanBelekov/portfolio/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/portfolio/internal/log"
	"github.com/ErlanBelekov/portfolio/internal/metrics"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Dependency{Name: "postgres", Pinger: pool},
	)

	purger, err := housekeeping.NewPurger(postgres.NewChallengeRepository(pool), logger, cfg.OTPPurgeCron, cfg.OTPPurgeGrace)
	if err != nil {
		stop()
		log.Fatalf("purger: %v", err)
	}
	purger.Purge(ctx)

	done := make(chan struct{})
	go func() {
		purger.Start(ctx)
		close(done)
	}()

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("housekeeper shut down")
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
