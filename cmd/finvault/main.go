package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"finvault/internal/amqp"
	"finvault/internal/cache"
	"finvault/internal/cli"
	apphttp "finvault/internal/http"
	applog "finvault/internal/log"
	"finvault/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	logger.Info("Starting finvault")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	insightsCache := cache.NewLRUCache[any](cfg.InsightsCacheSize, cfg.InsightsCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(insightsCache)
	cacheManager.StartCleanup(time.Minute)

	// Events are best effort; without a broker the ledger still works.
	var publisher services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, transaction events disabled", applog.FieldError, err)
		} else {
			amqpClient = c
			publisher = c
			logger.Info("AMQP publisher connected", "exchange", cfg.AMQPExchange)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	mailer := cli.InitMailer(logger, cfg)

	insightsSvc := services.NewInsightsService(repo, insightsCache)
	deps := apphttp.Deps{
		Auth:     services.NewAuthService(repo, mailer, cfg.JWTSecret, cfg.JWTTTL),
		Ledger:   services.NewLedgerService(repo, publisher, insightsSvc),
		Tax:      services.NewTaxService(repo),
		Insights: insightsSvc,
		DB:       repo,
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	}, deps)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cacheManager.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", applog.FieldError, err)
			}
		}
	})

	logger.Info("Starting HTTP server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
