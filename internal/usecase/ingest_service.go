package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ozanbudak/footsight/internal/platform/logging"
)

// IngestService fetches a single (league, season) pair from the
// provider and reconciles it into the store.
type IngestService struct {
	provider  FixtureProvider
	reconcile *ReconcileService
	logger    *logging.Logger
}

func NewIngestService(provider FixtureProvider, reconcile *ReconcileService, logger *logging.Logger) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestService{
		provider:  provider,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (s *IngestService) IngestFixtures(ctx context.Context, leagueCode string, season int) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.IngestFixtures")
	defer span.End()

	leagueCode = strings.ToUpper(strings.TrimSpace(leagueCode))
	if leagueCode == "" {
		return ReconcileResult{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}
	if season <= 0 {
		return ReconcileResult{}, fmt.Errorf("%w: season year must be greater than zero", ErrInvalidInput)
	}
	if s.provider == nil || s.reconcile == nil {
		return ReconcileResult{}, fmt.Errorf("%w: fixture provider is not configured", ErrDependencyUnavailable)
	}

	payload, err := s.provider.FetchSeasonMatches(ctx, leagueCode, season)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("fetch fixtures league=%s season=%d: %w", leagueCode, season, err)
	}
	if payload.League.Code == "" {
		payload.League.Code = leagueCode
	}
	if payload.Season == 0 {
		payload.Season = season
	}

	result, err := s.reconcile.ReconcileSeason(ctx, payload)
	if err != nil {
		return result, fmt.Errorf("reconcile league=%s season=%d: %w", leagueCode, season, err)
	}

	s.logger.InfoContext(ctx, "season ingested",
		"league_code", leagueCode,
		"season", season,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}
