package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/platform/logging"
)

const defaultMatchListLimit = 100

// MatchService exposes match reads and the odds update path used by
// callers outside the ingestion pipeline.
type MatchService struct {
	matchRepo match.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(matchRepo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo: matchRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MatchService) ListMatches(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = defaultMatchListLimit
	}
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) ListUpcoming(ctx context.Context, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListUpcoming")
	defer span.End()

	if limit <= 0 || limit > 500 {
		limit = defaultMatchListLimit
	}

	items, err := s.matchRepo.ListUpcoming(ctx, s.now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}
	return m, nil
}

// UpdateOdds sets bookmaker odds on every not started match where one
// side's team name begins with the given prefix. Returns how many
// matches were updated.
func (s *MatchService) UpdateOdds(ctx context.Context, teamNamePrefix string, odds match.Odds) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateOdds")
	defer span.End()

	teamNamePrefix = strings.TrimSpace(teamNamePrefix)
	if teamNamePrefix == "" {
		return 0, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if odds.Home < 1 || odds.Draw < 1 || odds.Away < 1 {
		return 0, fmt.Errorf("%w: odds must be at least 1.0", ErrInvalidInput)
	}

	updated, err := s.matchRepo.UpdateOddsByTeamName(ctx, teamNamePrefix, odds)
	if err != nil {
		return 0, fmt.Errorf("update odds team=%s: %w", teamNamePrefix, err)
	}
	if updated == 0 {
		return 0, fmt.Errorf("%w: no upcoming matches for team %s", ErrNotFound, teamNamePrefix)
	}

	s.logger.InfoContext(ctx, "odds updated", "team_prefix", teamNamePrefix, "matches", updated)
	return updated, nil
}
