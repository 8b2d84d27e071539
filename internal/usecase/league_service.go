package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ozanbudak/footsight/internal/domain/league"
	"github.com/ozanbudak/footsight/internal/domain/team"
	"github.com/ozanbudak/footsight/internal/platform/logging"
)

// LeagueService exposes the catalog reads: leagues and the teams that
// appeared in their fixtures.
type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) GetLeagueByCode(ctx context.Context, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeagueByCode")
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return league.League{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}

	l, found, err := s.leagueRepo.GetByCode(ctx, code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league code=%s: %w", code, err)
	}
	if !found {
		return league.League{}, fmt.Errorf("%w: league code=%s", ErrNotFound, code)
	}
	return l, nil
}

func (s *LeagueService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

// TeamNamesByID builds the id to name lookup used when match rows are
// rendered with team names attached.
func (s *LeagueService) TeamNamesByID(ctx context.Context) (map[int64]string, error) {
	items, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(items))
	for _, t := range items {
		names[t.ID] = t.Name
	}
	return names, nil
}
