package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/cache"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/config"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/curriculum"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/gemini"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/otel"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/postgres"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/redis"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/synthesis"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/tone"
)

// application holds the shared dependencies of every command and releases
// them on cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	lessonCache *redis.LessonCache

	store   *curriculum.Store
	monitor *perf.Monitor
	tracker *budget.Tracker
	limiter *budget.RateLimiter
	engine  *synthesis.Engine

	shutdownTelemetry otel.ShutdownFunc
}

// newApplication wires the synthesis engine and its collaborators from cfg.
// Optional integrations (Postgres, Redis, Gemini, OTLP export) are only
// built when configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}
	if err := app.setup(ctx); err != nil {
		app.cleanup(ctx)
		return nil, err
	}
	return app, nil
}

func (app *application) setup(ctx context.Context) error {
	cfg, logger := app.config, app.logger

	var err error
	app.shutdownTelemetry, err = otel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}

	source, err := app.shardSource(ctx)
	if err != nil {
		return err
	}
	app.store, err = curriculum.NewStore(source, logger)
	if err != nil {
		return fmt.Errorf("failed to create curriculum store: %w", err)
	}
	if cfg.Synthesis.WarmCurriculum {
		if err := app.store.LoadAll(ctx); err != nil {
			logger.WarnContext(ctx, "curriculum warm-up incomplete", "error", err)
		}
		logger.InfoContext(ctx, "curriculum warmed", "shards", app.store.ShardsLoaded())
	}

	var remote cache.Remote
	if cfg.Redis.URL != "" {
		app.lessonCache, err = redis.NewLessonCache(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		remote = app.lessonCache
	}

	app.monitor = perf.NewMonitor(logger)
	app.tracker = budget.NewTracker(budget.Config{
		Daily:            cfg.Budget.Daily,
		Monthly:          cfg.Budget.Monthly,
		MaxCostPerLesson: cfg.Budget.MaxCostPerLesson,
		PricePer1KTokens: cfg.Budget.PricePer1KTokens,
	}, logger)
	if cfg.RateLimit.Enabled {
		app.limiter = budget.NewRateLimiter(budget.Limits{
			PerMinute: cfg.RateLimit.PerMinute,
			PerHour:   cfg.RateLimit.PerHour,
			PerDay:    cfg.RateLimit.PerDay,
		})
	}

	opts := []synthesis.Option{
		synthesis.WithLogger(logger),
		synthesis.WithMonitor(app.monitor),
		synthesis.WithCache(cache.NewTiered(cache.NewFIFO[domain.SynthesisResult](cfg.Cache.Capacity), remote, logger)),
		synthesis.WithSelector(selectorFor(cfg.Synthesis)),
		synthesis.WithExternalTimeout(cfg.Synthesis.ExternalTimeout),
		synthesis.WithBudget(app.tracker),
	}
	if cfg.LLM.Enabled() {
		generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		opts = append(opts, synthesis.WithGenerator(generator))
	}

	app.engine, err = synthesis.NewEngine(app.store, opts...)
	if err != nil {
		return fmt.Errorf("failed to create synthesis engine: %w", err)
	}

	logger.InfoContext(ctx, "application initialized",
		"curriculum_source", cfg.Curriculum.Source,
		"cache_capacity", cfg.Cache.Capacity,
		"redis", app.lessonCache != nil,
		"external_generation", cfg.LLM.Enabled())
	return nil
}

// shardSource builds the configured curriculum source.
func (app *application) shardSource(ctx context.Context) (curriculum.ShardSource, error) {
	switch app.config.Curriculum.Source {
	case config.SourceDir:
		return curriculum.NewDirSource(app.config.Curriculum.Dir), nil
	case config.SourcePostgres:
		db, err := app.openDB(ctx)
		if err != nil {
			return nil, err
		}
		src, err := postgres.NewCurriculumSource(db, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres curriculum source: %w", err)
		}
		return src, nil
	default:
		return curriculum.NewEmbeddedSource(), nil
	}
}

// openDB connects to Postgres once and reuses the pool afterwards.
func (app *application) openDB(ctx context.Context) (*sql.DB, error) {
	if app.db != nil {
		return app.db, nil
	}
	if app.config.Database.URL == "" {
		return nil, errDatabaseNotConfigured
	}
	db, err := postgres.Open(ctx, app.config.Database.URL, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db
	return db, nil
}

var errDatabaseNotConfigured = errors.New("database.url is not configured (set LESSON_DATABASE_URL)")

func selectorFor(cfg config.SynthesisConfig) tone.Selector {
	switch cfg.Selector {
	case config.SelectorFirst:
		return tone.FirstSelector{}
	case config.SelectorSeeded:
		return tone.NewSeededSelector(cfg.Seed)
	default:
		return tone.RandomSelector{}
	}
}

// cleanup releases resources in reverse order of acquisition.
func (app *application) cleanup(ctx context.Context) {
	if app.engine != nil {
		app.engine.Shutdown()
	}
	if app.lessonCache != nil {
		if err := app.lessonCache.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	if app.shutdownTelemetry != nil {
		if err := app.shutdownTelemetry(context.WithoutCancel(ctx)); err != nil {
			app.logger.Error("error flushing traces", "error", err)
		}
	}
	app.logger.Debug("application shutdown completed")
}
