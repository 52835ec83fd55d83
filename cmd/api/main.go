package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/finboard-io/engine/internal/api"
	"github.com/finboard-io/engine/internal/api/handlers"
	"github.com/finboard-io/engine/internal/report"
	"github.com/finboard-io/engine/internal/repository"
	"github.com/finboard-io/engine/pkg/config"
	"github.com/finboard-io/engine/pkg/database"
	"github.com/finboard-io/engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting Finboard engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to the database backend. A failed connection is not fatal:
	// the service stays up, answers health checks, and every persistence
	// call soft-fails until a restart with working credentials.
	ctx := context.Background()
	db := database.Open(ctx, cfg.DatabaseURL, cfg.AppEnv)
	if db.Connected() {
		log.Info("database connected")
	}

	// Repositories share the single backend handle
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	graphRepo := repository.NewGraphRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Reporting agent bridge
	gen := report.NewGenerator(cfg.AgentAPIKey, cfg.AgentBaseURL, cfg.AgentModel, log)
	if !gen.Available() {
		log.Warn("AGENT_API_KEY not set, report generation disabled")
	}

	router := api.NewRouter(api.Dependencies{
		HealthHandler:   handlers.NewHealthHandler(db),
		UsersHandler:    handlers.NewUsersHandler(userRepo, log),
		ProjectsHandler: handlers.NewProjectsHandler(projectRepo, userRepo, log),
		GraphsHandler:   handlers.NewGraphsHandler(graphRepo, log),
		EventsHandler:   handlers.NewEventsHandler(eventRepo),
		ReportsHandler:  handlers.NewReportsHandler(gen, eventRepo, log),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
