package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/di"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	// Reload the journal from the mirror so a restart does not lose history
	if cfg.MirrorEnabled {
		count, err := container.Sync.Hydrate(ctx)
		if err != nil {
			logger.Warn("Journal hydration failed, starting empty", zap.Error(err))
		} else {
			logger.Info("Journal hydrated from mirror", zap.Int("entries", count))
		}
	}

	watcher, err := config.NewWatcher(cfg, logger)
	if err != nil {
		logger.Warn("Configuration watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Stop()
		// Most settings are read once at startup; a changed file takes full
		// effect on the next restart
		watcher.OnChange(func(updated *config.Config) {
			logger.Info("Configuration file reloaded, restart to apply startup settings",
				zap.String("log_level", updated.LogLevel),
				zap.Bool("mirror_enabled", updated.MirrorEnabled),
			)
		})
	}

	if cfg.SchedulerEnabled {
		if _, err := container.Reminders.ScheduleDailyReminder(cfg.DailyReminderTime, cfg.ReminderRecipient); err != nil {
			logger.Warn("Daily reminder not scheduled", zap.Error(err))
		}
		container.Reminders.Start(ctx)
		defer container.Reminders.Stop()
	}

	handler := container.Router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
