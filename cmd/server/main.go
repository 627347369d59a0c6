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
	"github.com/ErlanBelekov/portfolio/internal/email"
	"github.com/ErlanBelekov/portfolio/internal/health"
	"github.com/ErlanBelekov/portfolio/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/portfolio/internal/log"
	"github.com/ErlanBelekov/portfolio/internal/metrics"
	"github.com/ErlanBelekov/portfolio/internal/session"
	httptransport "github.com/ErlanBelekov/portfolio/internal/transport/http"
	"github.com/ErlanBelekov/portfolio/internal/transport/http/handler"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
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

	if err := postgres.Migrate(pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}
	logger.Info("db connected and migrated")

	// The queue outlives the signal context; it is drained after the HTTP server stops.
	queueCtx, stopQueue := context.WithCancel(context.Background())
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	queue := email.NewQueue(sender, logger, cfg.EmailWorkers, cfg.EmailQueueSize)
	queue.Start(queueCtx)

	challengeRepo := postgres.NewChallengeRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	blogRepo := postgres.NewBlogRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	authUsecase := usecase.NewAuthUsecase(challengeRepo, profileRepo, queue, logger,
		usecase.WithAdminEmail(cfg.AdminEmail),
		usecase.WithSiteName(cfg.SiteName),
	)
	projectUsecase := usecase.NewProjectUsecase(projectRepo)
	blogUsecase := usecase.NewBlogUsecase(blogRepo)
	profileUsecase := usecase.NewProfileUsecase(profileRepo)
	contactUsecase := usecase.NewContactUsecase(contactRepo, profileRepo, queue, logger, cfg.AdminEmail)

	sessions := session.NewManager(
		session.WithSecure(cfg.IsProduction()),
		session.WithSigningKey(cfg.SessionSigningKey),
	)

	handlers := httptransport.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase, sessions, logger),
		Project: handler.NewProjectHandler(projectUsecase, logger),
		Blog:    handler.NewBlogHandler(blogUsecase, logger),
		Profile: handler.NewProfileHandler(profileUsecase, logger),
		Contact: handler.NewContactHandler(contactUsecase, logger),
		Page: handler.NewPageHandler(handler.PageDeps{
			SiteName: cfg.SiteName,
			Auth:     authUsecase,
			Sessions: sessions,
			Profiles: profileUsecase,
			Projects: projectUsecase,
			Blogs:    blogUsecase,
			Contacts: contactUsecase,
		}, logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Dependency{Name: "postgres", Pinger: pool},
		health.Dependency{Name: "email_queue", Pinger: queue},
	)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, handlers, sessions, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
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

	stopQueue()
	queue.Wait()

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
