package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/ozanbudak/footsight/external/footballdata"
	"github.com/ozanbudak/footsight/internal/config"
	"github.com/ozanbudak/footsight/internal/infrastructure/repository/postgres"
	"github.com/ozanbudak/footsight/internal/interfaces/httpapi"
	"github.com/ozanbudak/footsight/internal/platform/logging"
	"github.com/ozanbudak/footsight/internal/platform/resilience"
	"github.com/ozanbudak/footsight/internal/predictor"
	"github.com/ozanbudak/footsight/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, *sqlx.DB, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	leagueRepo := postgres.NewLeagueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMax,
		},
	})

	reconcileSvc := usecase.NewReconcileService(leagueRepo, teamRepo, matchRepo, logger)
	ingestSvc := usecase.NewIngestService(provider, reconcileSvc, logger)
	sweepSvc := usecase.NewSweepService(ingestSvc, usecase.SweepConfig{
		LeagueCodes:    cfg.LeagueCodes,
		SeasonPriority: cfg.SeasonPriority,
		MaxWorkers:     cfg.SweepMaxWorkers,
	}, logger)
	analysisSvc := usecase.NewAnalysisService(
		matchRepo,
		teamRepo,
		predictor.NewPoissonPredictor(logger),
		cfg.AnalysisBatchSize,
		logger,
	)
	pipelineSvc := usecase.NewPipelineService(sweepSvc, analysisSvc, logger)
	matchSvc := usecase.NewMatchService(matchRepo, logger)
	leagueSvc := usecase.NewLeagueService(leagueRepo, teamRepo, logger)

	handler := httpapi.NewHandler(
		ingestSvc,
		sweepSvc,
		analysisSvc,
		pipelineSvc,
		matchSvc,
		leagueSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
