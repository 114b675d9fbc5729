package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/dkonya/methu-forecast/internal/adapter/http"
	kafkaadapter "github.com/dkonya/methu-forecast/internal/adapter/kafka"
	"github.com/dkonya/methu-forecast/internal/adapter/methu"
	"github.com/dkonya/methu-forecast/internal/config"
	"github.com/dkonya/methu-forecast/internal/observability"
	"github.com/dkonya/methu-forecast/internal/refresh"
	"github.com/dkonya/methu-forecast/internal/scrape"
)

func main() {
	// A .env file is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := methu.NewClient(cfg.BaseURL, cfg.FetchTimeout, logger)
	resolver := methu.NewCachedResolver(client, cfg.ResolverCacheSize, metrics)
	scraper := scrape.New(scrape.DefaultVocabulary(), nil)
	store := refresh.NewStore()

	var publisher refresh.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	refresher := refresh.New(
		cfg.Settlements,
		cfg.ScanInterval,
		resolver,
		client,
		scraper,
		publisher,
		store,
		logger,
		metrics,
		nil,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, refresher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
