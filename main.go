package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/handler"
	"github.com/workpulse/workpulse/internal/repository/sqlite"
	"github.com/workpulse/workpulse/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	sessions := sqlite.NewSessionRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	projects := sqlite.NewProjectRepository(db)
	employees := sqlite.NewEmployeeRepository(db)
	users := sqlite.NewUserRepository(db)
	windows := sqlite.NewWindowRepository(db)
	screenshots := sqlite.NewScreenshotRepository(db)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:        service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Tracking:    service.NewTrackingService(sessions, tasks, projects),
		Analytics:   service.NewAnalyticsService(windows),
		Screenshots: service.NewScreenshotService(screenshots),
		Telemetry:   service.NewTelemetryService(windows, screenshots, employees, cfg.DefaultTeamID, cfg.DefaultOrganizationID),
		Env:         cfg.Env,
		Production:  cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.CORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
