package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"story_aggregator/internal/config"
	"story_aggregator/internal/domain"
	"story_aggregator/internal/live"
	"story_aggregator/internal/lock"
	"story_aggregator/internal/metrics"
	"story_aggregator/internal/publisher"
	"story_aggregator/internal/scraper"
	"story_aggregator/internal/service"
	"story_aggregator/internal/storage/postgres"
)

const usage = `usage: storyctl [-config path] <command> [flags] [args]

commands:
  ensure   -tenant T [-id ID] [-url URL] [-mode MODE]   find or create a story
  create   -tenant T -id ID -url URL                    create a story, scraping it when enabled
  open     -tenant T -story ID                          reopen a story
  close    -tenant T -story ID                          close a story
  mode     -tenant T -story ID -mode MODE               switch the story mode
  expert   -tenant T -story ID -user U [-remove]        add or remove an expert
  remove   -tenant T -story ID [-include-comments]      delete a story
  merge    -tenant T -into ID SOURCE...                 merge source stories into a destination
  live     -tenant T -story ID                          report live updates eligibility
`

type app struct {
	db         *sqlx.DB
	tenants    *postgres.TenantStore
	stories    *service.StoryService
	rabbitMQ   *publisher.RabbitMQ
	dispatcher *publisher.Dispatcher
	locker     *lock.RedisLocker
	logger     *slog.Logger
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout carries only command output.
	logger = setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	runErr := a.run(ctx, flag.Arg(0), flag.Args()[1:])
	a.close()

	if runErr != nil {
		logger.Error("command failed", "command", flag.Arg(0), "error", runErr)
		os.Exit(exitCode(runErr))
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

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
		db.Close()
		return nil, err
	}

	a := &app{
		db:       db,
		tenants:  postgres.NewTenantStore(db),
		rabbitMQ: rabbitMQ,
		logger:   logger,
	}

	if cfg.Redis.Addr != "" {
		a.locker, err = lock.NewRedisLocker(ctx, lock.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		a.close()
		return nil, err
	}

	a.dispatcher = publisher.NewDispatcher(rabbitMQ, cfg.RabbitMQ.EventBufferSize, logger)
	go a.dispatcher.Run(ctx)

	storyStore := postgres.NewStoryStore(db)
	deps := service.Deps{
		Stories:   storyStore,
		Comments:  postgres.NewCommentStore(db),
		Actions:   postgres.NewActionStore(db),
		Sites:     postgres.NewSiteStore(db),
		Users:     postgres.NewUserStore(db),
		TxManager: postgres.NewTransactionManager(db),
		Events:    a.dispatcher,
		Scrapes:   rabbitMQ,
		Scraper: scraper.New(scraper.Config{
			Timeout:        cfg.Scraper.Timeout,
			UserAgent:      cfg.Scraper.UserAgent,
			MaxBodyBytes:   cfg.Scraper.MaxBodyBytes,
			MaxAttempts:    cfg.Scraper.Retry.MaxAttempts,
			InitialBackoff: cfg.Scraper.Retry.InitialBackoff,
			MaxBackoff:     cfg.Scraper.Retry.MaxBackoff,
		}, storyStore, a.tenants, logger),
		Metrics: collector,
	}
	if a.locker != nil {
		deps.Locker = a.locker
	}

	a.stories = service.NewStoryService(deps, logger, service.Options{
		Live: live.Options{
			Disabled: cfg.Live.DisableUpdates,
			Timeout:  cfg.Live.DisableUpdatesTimeout,
		},
		LockTTL: cfg.Redis.LockTTL,
	})

	return a, nil
}

func (a *app) close() {
	if a.dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.dispatcher.Close(ctx); err != nil {
			a.logger.Warn("events not fully flushed", "error", err)
		}
		cancel()
	}
	if a.locker != nil {
		a.locker.Close()
	}
	a.rabbitMQ.Close()
	a.db.Close()
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	tenantID := fs.String("tenant", "", "tenant id")
	storyID := fs.String("story", "", "story id")

	now := time.Now().UTC()

	switch command {
	case "ensure":
		id := fs.String("id", "", "story id")
		url := fs.String("url", "", "story url")
		mode := fs.String("mode", "", "story mode")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		input := domain.FindOrCreateStoryInput{ID: *id, URL: *url}
		if *mode != "" {
			m := domain.StoryMode(*mode)
			input.Mode = &m
		}
		return printResult(a.stories.FindOrCreate(ctx, tenant, input, now))

	case "create":
		id := fs.String("id", "", "story id")
		url := fs.String("url", "", "story url")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.Create(ctx, tenant, service.CreateInput{ID: *id, URL: *url}, now))

	case "open":
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.Open(ctx, tenant, *storyID, now))

	case "close":
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.Close(ctx, tenant, *storyID, now))

	case "mode":
		mode := fs.String("mode", "", "story mode")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.UpdateMode(ctx, tenant, *storyID, domain.StoryMode(*mode), now))

	case "expert":
		userID := fs.String("user", "", "user id")
		remove := fs.Bool("remove", false, "remove instead of add")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		if *remove {
			return printResult(a.stories.RemoveExpert(ctx, tenant, *storyID, *userID))
		}
		return printResult(a.stories.AddExpert(ctx, tenant, *storyID, *userID))

	case "remove":
		includeComments := fs.Bool("include-comments", false, "also delete the story's comments and actions")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.Remove(ctx, tenant, *storyID, *includeComments))

	case "merge":
		into := fs.String("into", "", "destination story id")
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		return printResult(a.stories.Merge(ctx, tenant, *into, fs.Args()))

	case "live":
		tenant, err := a.parse(ctx, fs, args, tenantID)
		if err != nil {
			return err
		}
		story, err := a.stories.Find(ctx, tenant, service.FindInput{ID: *storyID})
		if err != nil {
			return err
		}
		return printResult(map[string]any{
			"storyID": story.ID,
			"enabled": a.stories.LiveEnabled(tenant, story, now),
		}, nil)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// parse reads the subcommand flags and resolves the tenant.
func (a *app) parse(ctx context.Context, fs *flag.FlagSet, args []string, tenantID *string) (*domain.Tenant, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *tenantID == "" {
		return nil, errors.New("-tenant is required")
	}
	return a.tenants.Find(ctx, *tenantID)
}

func printResult(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrStoryNotFound),
		errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return 3
	case errors.Is(err, domain.ErrMergeValidationFailed),
		errors.Is(err, domain.ErrHasLinkedComments),
		errors.Is(err, domain.ErrFeatureFlagRequired),
		errors.Is(err, domain.ErrStoryURLInvalid),
		errors.Is(err, domain.ErrInvalidStoryID),
		errors.Is(err, domain.ErrInvalidStoryMode),
		errors.Is(err, domain.ErrDuplicateStory):
		return 4
	default:
		return 1
	}
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
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
