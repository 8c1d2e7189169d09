package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"story_aggregator/internal/config"
	"story_aggregator/internal/metrics"
	"story_aggregator/internal/publisher"
	"story_aggregator/internal/scheduler"
	"story_aggregator/internal/scraper"
	"story_aggregator/internal/service"
	"story_aggregator/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:      cfg.RabbitMQ.URL,
		Exchange: cfg.RabbitMQ.Exchange,
		Events: publisher.Binding{
			RoutingKey: cfg.RabbitMQ.EventsRoutingKey,
			QueueName:  cfg.RabbitMQ.EventsQueue,
		},
		Scrape: publisher.Binding{
			RoutingKey: cfg.RabbitMQ.ScrapeRoutingKey,
			QueueName:  cfg.RabbitMQ.ScrapeQueue,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	storyStore := postgres.NewStoryStore(db)
	tenantStore := postgres.NewTenantStore(db)

	storyScraper := scraper.New(scraper.Config{
		Timeout:        cfg.Scraper.Timeout,
		UserAgent:      cfg.Scraper.UserAgent,
		MaxBodyBytes:   cfg.Scraper.MaxBodyBytes,
		MaxAttempts:    cfg.Scraper.Retry.MaxAttempts,
		InitialBackoff: cfg.Scraper.Retry.InitialBackoff,
		MaxBackoff:     cfg.Scraper.Retry.MaxBackoff,
	}, storyStore, tenantStore, logger)
	worker := scraper.NewWorker(storyScraper, logger)

	backfillService := service.NewBackfillService(
		storyStore,
		rabbitMQ,
		collector,
		logger,
		cfg.Backfill,
	)
	sched := scheduler.NewScheduler(backfillService, cfg.Backfill.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := rabbitMQ.Consume(ctx, cfg.RabbitMQ.ScrapeQueue, cfg.RabbitMQ.Prefetch, worker.Handle)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scrape consumer stopped", "error", err)
			cancel()
		}
	}()

	logger.Info("starting story worker",
		"scrape_queue", cfg.RabbitMQ.ScrapeQueue,
		"backfill_interval", cfg.Backfill.Interval,
		"metrics_addr", cfg.Metrics.Addr,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop metrics server", "error", err)
	}

	wg.Wait()
	logger.Info("story worker stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
