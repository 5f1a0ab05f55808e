package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olasslabs/olass-backend/internal/config"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/rabbitmq"
	exporterservice "github.com/olasslabs/olass-backend/internal/services/exporter"
	onboardingservice "github.com/olasslabs/olass-backend/internal/services/onboarding"
	"github.com/olasslabs/olass-backend/internal/storage/repository"
)

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting export-scheduler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()
	if err := waitForDB(db); err != nil {
		logger.Error("database is not ready", sl.Err(err))
		os.Exit(1)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEmailQueues())
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
	}()

	inserter, closeBQ, err := exporterservice.NewBigQueryInserter(ctx, cfg.BigQuery)
	if err != nil {
		logger.Error("failed to create BigQuery inserter", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = closeBQ()
	}()

	exporterService := exporterservice.NewExporterService(db, inserter, cfg.BigQuery.MaxRowsPerRequest, logger)
	onboardingService := onboardingservice.NewOnboardingService(db, rabbitmq.NewPublisher(ch), logger)

	c := cron.New()
	_, err = c.AddFunc(cfg.Jobs.ProfileExportCronSpec, func() {
		day := time.Now().AddDate(0, 0, -1)
		if err := exporterService.ExportDailyProfiles(ctx, day); err != nil {
			logger.Error("profile export failed", sl.Err(err))
		}
	})
	if err != nil {
		logger.Error("failed to schedule profile export", sl.Err(err))
		os.Exit(1)
	}
	_, err = c.AddFunc(cfg.Jobs.OnboardingCronSpec, func() {
		if err := onboardingService.DispatchOnboardingEmails(ctx); err != nil {
			logger.Error("onboarding dispatch failed", sl.Err(err))
		}
	})
	if err != nil {
		logger.Error("failed to schedule onboarding dispatch", sl.Err(err))
		os.Exit(1)
	}

	c.Start()
	logger.Info("export-scheduler started",
		slog.String("profile_export", cfg.Jobs.ProfileExportCronSpec),
		slog.String("onboarding", cfg.Jobs.OnboardingCronSpec))

	<-ctx.Done()
	c.Stop()
	logger.Info("export-scheduler stopped gracefully")
}
