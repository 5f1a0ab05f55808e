package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/olasslabs/olass-backend/internal/app/emailsender"
	"github.com/olasslabs/olass-backend/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting email sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := emailsender.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize email sender app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("email sender app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("email sender app stopped gracefully")
}
