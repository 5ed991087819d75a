package main

import (
	"context"
	"errors"
	"os"
	"time"

	"finvault/internal/amqp"
	"finvault/internal/cli"
	applog "finvault/internal/log"
	"finvault/internal/sheets"
	gsheet "finvault/internal/sheets/google"
	"finvault/internal/sheets/memory"
	"finvault/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting finvault-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	var mirror sheets.TransactionMirror
	if cfg.SheetsEnabled() {
		client, err := gsheet.New(context.Background(), gsheet.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		mirror = memory.New()
		logger.Info("Google Sheets disabled - mirroring into memory")
	}

	syncWorker := worker.NewSyncWorker(repo, mirror, cfg.SyncBatchSize)
	processor := worker.NewPendingProcessor(syncWorker, cfg.SyncInterval)

	digest := worker.NewDigestJob(repo, cli.InitMailer(logger, cfg))

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		amqpClient = c
	} else {
		logger.Info("AMQP disabled - relying on periodic sync only")
	}

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	scheduler, err := worker.NewScheduler(jobCtx, cfg.DigestSchedule, digest)
	if err != nil {
		logger.Error("Failed to schedule digest", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := processor.Stop(shutdownCtx); err != nil {
			logger.Warn("Pending processor stop error", applog.FieldError, err)
		}
		scheduler.Stop(shutdownCtx)
		cancelJobs()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", applog.FieldError, err)
			}
		}
	})

	scheduler.Start()
	logger.Info("Digest scheduled", "schedule", cfg.DigestSchedule)

	// Catches up on anything left pending before the first event arrives.
	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start pending processor", applog.FieldError, err)
		os.Exit(1)
	}

	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeTransactionEvents(ctx, syncWorker.HandleEvent)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
		}()
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
