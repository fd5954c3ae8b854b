package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"newsletter-go/internal/app"
	"newsletter-go/internal/config"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/pg"
	"newsletter-go/internal/telemetry"
)

func newLogger(cfg *config.Config) *logging.ContextLogger {
	level, enabled := logging.ParseLevel(cfg.App.LogLevel, logrus.InfoLevel)
	logger := logging.NewLogger(level)
	if !enabled {
		logger.SetOutput(io.Discard)
	}
	return logger
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error parsing configuration: %w", err)
	}
	logger := newLogger(cfg)

	var traceOut io.Writer
	if cfg.App.TraceExport {
		traceOut = os.Stdout
	}
	tp, err := telemetry.InitTracing(cfg.App.ServiceName, cfg.App.ServiceVersion, traceOut)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := telemetry.ShutdownTracing(context.Background(), tp); err != nil {
			logger.WithError(err).Error("Error shutting down tracer provider")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.WithError(err).Error("Error closing storage")
		}
	}()

	application := app.Build(&app.Config{
		ServiceName:    cfg.App.ServiceName,
		ServiceVersion: cfg.App.ServiceVersion,
		Port:           cfg.App.Port,
		Logger:         logger,
		TracerProvider: tp,
		GinMode:        cfg.App.GinMode,
		HTTPLogLevel:   cfg.App.HTTPLogLevel,
		Repository:     repo,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error starting HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func migrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error parsing configuration: %w", err)
	}
	if cfg.StorageDriver != config.StorageDriverPostgres {
		return fmt.Errorf("migrations only apply to the postgres storage driver, got %q", cfg.StorageDriver)
	}
	logger := newLogger(cfg)

	db, err := pg.Connect(cmd.Context(), cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := pg.Migrate(cmd.Context(), db, cfg.Postgres, logger); err != nil {
		return err
	}

	logger.Info("Migrations applied")
	return nil
}
