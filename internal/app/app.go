package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/jobscheduler"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
	"github.com/mikekeda/athletes/internal/infrastructure/geocode"
	"github.com/mikekeda/athletes/internal/infrastructure/jobqueue"
	repocache "github.com/mikekeda/athletes/internal/infrastructure/repository/cache"
	"github.com/mikekeda/athletes/internal/infrastructure/repository/memory"
	"github.com/mikekeda/athletes/internal/infrastructure/repository/postgres"
	"github.com/mikekeda/athletes/internal/infrastructure/social"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/interfaces/httpapi"
	"github.com/mikekeda/athletes/internal/observability"
	idgen "github.com/mikekeda/athletes/internal/platform/id"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/platform/ratelimit"
	"github.com/mikekeda/athletes/internal/usecase"
)

// Components is the wired object graph shared by the api, crawler and
// scheduler binaries.
type Components struct {
	Metrics      *observability.Metrics
	Catalog      *usecase.CatalogService
	Crawl        *usecase.CrawlService
	Enrichment   *usecase.EnrichmentService
	LeagueLinks  *usecase.LeagueLinkService
	Social       *usecase.SocialSyncService
	Orchestrator *usecase.JobOrchestratorService

	db *sqlx.DB
}

// Close releases the database pool, if any.
func (c *Components) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

type repositories struct {
	athletes   athlete.Repository
	teams      team.Repository
	leagues    league.Repository
	dispatches jobscheduler.Repository
}

type buildOptions struct {
	queue usecase.JobQueue
}

type Option func(*buildOptions)

// WithJobQueue overrides the queue chosen from configuration. The operator
// CLI passes an inline queue so jobs run in-process.
func WithJobQueue(queue usecase.JobQueue) Option {
	return func(o *buildOptions) {
		o.queue = queue
	}
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger, opts ...Option) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}
	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	repos, db, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	repos = withReadCache(repos, cfg.CatalogCacheTTL)

	fetcher := wiki.NewFetcher(wiki.FetcherConfig{
		UserAgent:      cfg.WikiUserAgent,
		Timeout:        cfg.WikiTimeout,
		MaxRetries:     cfg.WikiMaxRetries,
		MaxBodyBytes:   cfg.WikiMaxBodyBytes,
		RatePerSecond:  cfg.WikiRatePerSecond,
		RateBurst:      cfg.WikiRateBurst,
		RespectRobots:  cfg.WikiRespectRobots,
		RobotsTTL:      cfg.WikiRobotsTTL,
		CircuitBreaker: cfg.WikiCircuit,
		Logger:         logger,
		Metrics:        metrics,
	})
	extractor := wiki.NewExtractor(wiki.WithMaxAge(cfg.CrawlMaxAthleteAge))

	var geocoder usecase.Geocoder
	if cfg.GeocodingEnabled {
		geocoder = geocode.NewClient(geocode.ClientConfig{
			BaseURL:        cfg.GeocodingBaseURL,
			APIKey:         cfg.GeocodingAPIKey,
			Timeout:        cfg.GeocodingTimeout,
			CacheTTL:       cfg.GeocodingCacheTTL,
			CircuitBreaker: cfg.GeocodingCircuit,
			Logger:         logger,
			Metrics:        metrics,
		})
	}
	var twitter usecase.TwitterClient
	if cfg.TwitterEnabled {
		twitter = social.NewTwitterClient(social.TwitterConfig{
			BaseURL:        cfg.TwitterBaseURL,
			BearerToken:    cfg.TwitterBearerToken,
			Timeout:        cfg.SocialTimeout,
			CircuitBreaker: cfg.SocialCircuit,
			Logger:         logger,
			Metrics:        metrics,
		})
	}
	var youtube usecase.YouTubeClient
	if cfg.YouTubeEnabled {
		youtube = social.NewYouTubeClient(social.YouTubeConfig{
			BaseURL:        cfg.YouTubeBaseURL,
			APIKey:         cfg.YouTubeAPIKey,
			Timeout:        cfg.SocialTimeout,
			CircuitBreaker: cfg.SocialCircuit,
			Logger:         logger,
			Metrics:        metrics,
		})
	}

	queue := options.queue
	if queue == nil {
		queue = newJobQueue(cfg, metrics, logger)
	}

	reconciler := usecase.NewReconciler(repos.athletes, repos.teams, repos.leagues, metrics, logger.Named("reconcile"))
	locations := usecase.NewLocationResolver(geocoder, logger.Named("location"))
	enrichment := usecase.NewEnrichmentService(repos.athletes, fetcher, extractor, reconciler, locations, metrics, logger.Named("enrichment"))
	crawl := usecase.NewCrawlService(
		repos.teams,
		fetcher,
		extractor,
		reconciler,
		enrichment,
		locations,
		nil,
		usecase.CrawlConfig{MaxWorkers: cfg.CrawlMaxWorkers},
		logger.Named("crawl"),
	)
	leagueLinks := usecase.NewLeagueLinkService(repos.teams, fetcher, reconciler, cfg.CrawlLeagueBatchSize, logger.Named("leaguelink"))
	socialSync := usecase.NewSocialSyncService(
		repos.athletes,
		twitter,
		youtube,
		reconciler,
		ratelimit.NewThrottle(cfg.SocialRatePerSecond, 1),
		cfg.CrawlSocialBatchSize,
		metrics,
		logger.Named("social"),
	)
	orchestrator := usecase.NewJobOrchestratorService(
		crawl,
		enrichment,
		leagueLinks,
		socialSync,
		queue,
		repos.dispatches,
		idgen.NewUUIDGenerator(),
		metrics,
		usecase.JobOrchestratorConfig{
			DedupWindow:   cfg.JobDedupWindow,
			ContinueDelay: cfg.JobContinueDelay,
		},
		logger.Named("jobs"),
	)
	// League crawls fan out into team jobs through the orchestrator.
	crawl.SetEnqueuer(orchestrator)

	return &Components{
		Metrics:      metrics,
		Catalog:      usecase.NewCatalogService(repos.athletes, repos.teams, repos.leagues),
		Crawl:        crawl,
		Enrichment:   enrichment,
		LeagueLinks:  leagueLinks,
		Social:       socialSync,
		Orchestrator: orchestrator,
		db:           db,
	}, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	switch cfg.RepositoryDriver {
	case config.RepositoryMemory:
		logger.Warn("using in-memory repositories", "reason", "REPOSITORY_DRIVER=memory")
		return repositories{
			athletes:   memory.NewAthleteRepository(),
			teams:      memory.NewTeamRepository(),
			leagues:    memory.NewLeagueRepository(),
			dispatches: memory.NewJobDispatchRepository(),
		}, nil, nil
	case config.RepositoryPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("postgres connected", "db_name", databaseName(cfg.DBURL))
		return repositories{
			athletes:   postgres.NewAthleteRepository(db),
			teams:      postgres.NewTeamRepository(db),
			leagues:    postgres.NewLeagueRepository(db),
			dispatches: postgres.NewJobDispatchRepository(db),
		}, db, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported repository driver %q", cfg.RepositoryDriver)
	}
}

// withReadCache puts a process-local TTL cache in front of the id and roster
// lookups. Writes made through the wrappers evict the affected keys.
func withReadCache(repos repositories, ttl time.Duration) repositories {
	if ttl <= 0 {
		return repos
	}
	repos.athletes = repocache.NewAthleteRepository(repos.athletes, ttl)
	repos.teams = repocache.NewTeamRepository(repos.teams, ttl)
	repos.leagues = repocache.NewLeagueRepository(repos.leagues, ttl)
	return repos
}

func newJobQueue(cfg config.Config, metrics *observability.Metrics, logger *logging.Logger) usecase.JobQueue {
	if !cfg.QStashEnabled {
		logger.Info("job queue disabled", "reason", "QSTASH_ENABLED=false")
		return usecase.NewNoopJobQueue()
	}
	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker:   cfg.QStashCircuit,
		Metrics:          metrics,
	}, logger)
}

func NewHTTPServer(cfg config.Config, components *Components, logger *logging.Logger) (*http.Server, error) {
	if components == nil {
		return nil, fmt.Errorf("components cannot be nil")
	}

	var metricsHandler http.Handler
	if components.Metrics != nil {
		metricsHandler = components.Metrics.Handler()
	}
	handler := httpapi.NewHandler(components.Catalog, components.Orchestrator, metricsHandler, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
