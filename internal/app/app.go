package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/robharvey123/cricket-platform/external/jobqueue"
	"github.com/robharvey123/cricket-platform/external/playcricket"
	"github.com/robharvey123/cricket-platform/internal/config"
	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/domain/roster"
	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/domain/stats"
	"github.com/robharvey123/cricket-platform/internal/infrastructure/repository/cache"
	"github.com/robharvey123/cricket-platform/internal/infrastructure/repository/memory"
	"github.com/robharvey123/cricket-platform/internal/infrastructure/repository/postgres"
	"github.com/robharvey123/cricket-platform/internal/interfaces/httpapi"
	basecache "github.com/robharvey123/cricket-platform/internal/platform/cache"
	idgen "github.com/robharvey123/cricket-platform/internal/platform/id"
	"github.com/robharvey123/cricket-platform/internal/platform/logging"
	"github.com/robharvey123/cricket-platform/internal/platform/resilience"
	"github.com/robharvey123/cricket-platform/internal/usecase"
)

type repositories struct {
	clubs    club.Repository
	formulas scoring.Repository
	roster   roster.Repository
	matches  match.Repository
	stats    stats.Repository
}

// NewHTTPServer builds the wired HTTP server plus a cleanup func that
// releases the database handle. With an empty DB_URL all repositories are
// in-memory and seeded, so local development needs no database.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.clubs = cache.NewClubRepository(repos.clubs, store)
		repos.roster = cache.NewRosterRepository(repos.roster, store)
		repos.stats = cache.NewStatsRepository(repos.stats, store)
	}

	provider := playcricket.NewClient(playcricket.ClientConfig{
		BaseURL:    cfg.PlayCricketBaseURL,
		Timeout:    cfg.PlayCricketTimeout,
		MaxRetries: cfg.PlayCricketMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PlayCricketCircuitEnabled,
			FailureThreshold: cfg.PlayCricketCircuitFailureCount,
			OpenTimeout:      cfg.PlayCricketCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PlayCricketCircuitHalfOpenMaxReq,
		},
	})

	var enqueuer usecase.RecalcEnqueuer
	if cfg.QStashEnabled {
		enqueuer = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	formulaSvc := usecase.NewFormulaService(repos.formulas)
	fieldingSvc := usecase.NewFieldingService(repos.matches, repos.roster, provider, logger)
	aggregationSvc := usecase.NewAggregationService(
		repos.clubs,
		formulaSvc,
		repos.matches,
		repos.roster,
		repos.stats,
		fieldingSvc,
		logger,
	)
	importSvc := usecase.NewImportService(repos.clubs, repos.matches, provider, aggregationSvc, enqueuer, logger)

	captureBodyMaxBytes := 0
	if cfg.UptraceCaptureRequestBody {
		captureBodyMaxBytes = cfg.UptraceRequestBodyMaxBytes
	}

	handler := httpapi.NewHandler(repos.clubs, formulaSvc, importSvc, aggregationSvc, cfg.RecalcMaxWorkers, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken, captureBodyMaxBytes)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func(context.Context) error, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory repositories")
		ids := idgen.NewRandomGenerator()
		repos := repositories{
			clubs:    memory.NewClubRepository(memory.SeedClubs()),
			formulas: memory.NewFormulaRepository(ids),
			roster:   memory.NewRosterRepository(memory.SeedPlayers(), ids),
			matches:  memory.NewMatchRepository(ids),
			stats:    memory.NewStatsRepository(),
		}
		noop := func(context.Context) error { return nil }
		return repos, noop, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	ids := idgen.NewRandomGenerator()
	repos := repositories{
		clubs:    postgres.NewClubRepository(db),
		formulas: postgres.NewFormulaRepository(db, ids),
		roster:   postgres.NewRosterRepository(db, ids),
		matches:  postgres.NewMatchRepository(db, ids),
		stats:    postgres.NewStatsRepository(db),
	}
	cleanup := func(context.Context) error { return db.Close() }
	return repos, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
