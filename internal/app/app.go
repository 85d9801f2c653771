package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/npl-fantasy/internal/config"
	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	"github.com/riskibarqy/npl-fantasy/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/npl-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/npl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/npl-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/npl-fantasy/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/npl-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/npl-fantasy/internal/platform/id"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

const cacheNamespace = "npl-fantasy"

// App owns the HTTP server and every resource it must release on shutdown.
type App struct {
	Server  *http.Server
	closers []func() error
	logger  *logging.Logger
}

type repositories struct {
	teams       team.Repository
	players     player.Repository
	matches     match.Repository
	rosters     roster.Repository
	stats       playerstats.Repository
	squads      fantasy.Repository
	leaderboard leaderboard.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.wrapWithCache(ctx, cfg, &repos); err != nil {
		_ = a.Close()
		return nil, err
	}

	catalogSvc := usecase.NewCatalogService(repos.teams, repos.players, repos.matches, repos.rosters, repos.squads, repos.leaderboard, logger)
	rosterSvc := usecase.NewRosterService(repos.matches, repos.players, repos.rosters, logger)
	statsSvc := usecase.NewPlayerStatsService(repos.matches, repos.players, repos.rosters, repos.stats, logger)
	squadSvc := usecase.NewSquadService(
		repos.matches,
		repos.teams,
		repos.players,
		repos.rosters,
		repos.stats,
		repos.squads,
		fantasy.DefaultRules(),
		idgen.NewUUIDGenerator("sq"),
		logger,
	)
	scoringSvc := usecase.NewScoringService(
		repos.matches,
		repos.rosters,
		repos.stats,
		repos.squads,
		repos.leaderboard,
		usecase.ScoringConfig{
			Workers:          cfg.ScoringWorkers,
			MatchConcurrency: cfg.ScoringMatchConcurrency,
		},
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(repos.matches, repos.leaderboard)

	publisher, err := a.buildJobPublisher(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	scoringJobSvc := usecase.NewScoringJobService(repos.matches, publisher, logger)

	handler := httpapi.NewHandler(catalogSvc, rosterSvc, statsSvc, squadSvc, scoringSvc, scoringJobSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)

		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		a.logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			matches:     postgres.NewMatchRepository(db),
			rosters:     postgres.NewRosterRepository(db),
			stats:       postgres.NewPlayerStatsRepository(db),
			squads:      postgres.NewSquadRepository(db),
			leaderboard: postgres.NewLeaderboardRepository(db),
		}, nil
	default:
		store := memory.NewStore()
		store.Seed(memory.SeedTeams(), memory.SeedPlayers(), memory.SeedMatches())

		a.logger.Info("storage ready", "driver", config.StorageMemory)
		return repositories{
			teams:       memory.NewTeamRepository(store),
			players:     memory.NewPlayerRepository(store),
			matches:     memory.NewMatchRepository(store),
			rosters:     memory.NewRosterRepository(store),
			stats:       memory.NewPlayerStatsRepository(store),
			squads:      memory.NewSquadRepository(store),
			leaderboard: memory.NewLeaderboardRepository(store),
		}, nil
	}
}

// wrapWithCache decorates the read-heavy repositories. Writes through the
// decorators evict the affected partitions.
func (a *App) wrapWithCache(ctx context.Context, cfg config.Config, repos *repositories) error {
	if !cfg.CacheEnabled {
		a.logger.Info("cache disabled")
		return nil
	}

	var store basecache.Cache
	switch cfg.CacheDriver {
	case config.CacheRedis:
		redisStore, err := basecache.NewRedisStore(ctx, cfg.RedisURL, cacheNamespace, cfg.CacheTTL, resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.RedisBreakerFailures,
			OpenTimeout:      cfg.RedisBreakerOpenTimeout,
		})
		if err != nil {
			return fmt.Errorf("connect redis cache: %w", err)
		}
		a.closers = append(a.closers, redisStore.Close)
		store = redisStore
	default:
		store = basecache.NewStore(cfg.CacheTTL, basecache.WithMaxEntries(cfg.CacheMaxEntries))
	}

	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	repos.leaderboard = cacherepo.NewLeaderboardRepository(repos.leaderboard, store, a.logger)

	a.logger.Info("cache enabled", "driver", cfg.CacheDriver, "ttl", cfg.CacheTTL.String())
	return nil
}

// buildJobPublisher returns a nil publisher when the job queue is disabled;
// scheduling then reports the dependency as unavailable.
func (a *App) buildJobPublisher(cfg config.Config) (usecase.JobPublisher, error) {
	if !cfg.QStashEnabled {
		return nil, nil
	}

	publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker:   resilience.DefaultCircuitBreakerConfig(),
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("configure qstash publisher: %w", err)
	}

	a.logger.Info("job queue enabled", "target", cfg.QStashTargetBaseURL)
	return publisher, nil
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
