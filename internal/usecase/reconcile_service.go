package usecase

import (
	"context"
	"fmt"

	"github.com/ozanbudak/footsight/internal/domain/league"
	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/domain/team"
	"github.com/ozanbudak/footsight/internal/platform/logging"
)

// ReconcileResult summarizes one season reconciliation.
type ReconcileResult struct {
	LeagueCode string
	Season     int
	Processed  int
	Skipped    int
	Failed     int
}

// ReconcileService upserts leagues, teams and matches from a provider
// season payload. Repeated calls with the same payload are idempotent:
// rows are keyed on provider IDs and updated in place.
type ReconcileService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	logger     *logging.Logger
}

func NewReconcileService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReconcileService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

// ReconcileSeason persists everything in the payload. An empty match
// list is a no-op: no league or team rows are created for a season the
// provider has no fixtures for.
func (s *ReconcileService) ReconcileSeason(ctx context.Context, season ExternalSeason) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileSeason")
	defer span.End()

	result := ReconcileResult{LeagueCode: season.League.Code, Season: season.Season}
	if len(season.Matches) == 0 {
		return result, nil
	}

	if season.League.ExternalID <= 0 {
		return result, fmt.Errorf("%w: league id is missing for code=%s", ErrInvalidInput, season.League.Code)
	}

	lg := league.League{
		ID:      season.League.ExternalID,
		Code:    season.League.Code,
		Name:    season.League.Name,
		Country: season.League.Country,
		Emblem:  season.League.Emblem,
	}
	if err := lg.Validate(); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Upsert(ctx, lg); err != nil {
		return result, fmt.Errorf("upsert league code=%s: %w", lg.Code, err)
	}

	upsertedTeams := make(map[int64]bool, len(season.Matches))
	for _, item := range season.Matches {
		if !s.validExternalMatch(ctx, season.League.Code, item) {
			result.Skipped++
			continue
		}

		if err := s.reconcileTeams(ctx, lg.ID, item, upsertedTeams); err != nil {
			s.logger.WarnContext(ctx,
				"skip fixture: team upsert failed",
				"league_code", season.League.Code,
				"fixture_id", item.ExternalID,
				"error", err,
			)
			result.Failed++
			continue
		}

		m := match.Match{
			APIFixtureID: item.ExternalID,
			LeagueID:     lg.ID,
			HomeTeamID:   item.HomeTeam.ExternalID,
			AwayTeamID:   item.AwayTeam.ExternalID,
			MatchDate:    item.KickoffAt,
			HomeScore:    item.HomeScore,
			AwayScore:    item.AwayScore,
			Status:       match.MapProviderStatus(item.Status),
		}
		if err := s.matchRepo.Upsert(ctx, m); err != nil {
			s.logger.WarnContext(ctx,
				"skip fixture: match upsert failed",
				"league_code", season.League.Code,
				"fixture_id", item.ExternalID,
				"error", err,
			)
			result.Failed++
			continue
		}
		result.Processed++
	}

	return result, nil
}

func (s *ReconcileService) validExternalMatch(ctx context.Context, leagueCode string, item ExternalMatch) bool {
	switch {
	case item.ExternalID <= 0:
		s.logger.WarnContext(ctx, "skip fixture: missing fixture id", "league_code", leagueCode)
	case item.HomeTeam.ExternalID <= 0 || item.AwayTeam.ExternalID <= 0:
		s.logger.WarnContext(ctx, "skip fixture: missing team id", "league_code", leagueCode, "fixture_id", item.ExternalID)
	case item.HomeTeam.ExternalID == item.AwayTeam.ExternalID:
		s.logger.WarnContext(ctx, "skip fixture: home and away team are identical", "league_code", leagueCode, "fixture_id", item.ExternalID)
	case item.KickoffAt.IsZero():
		s.logger.WarnContext(ctx, "skip fixture: missing kickoff time", "league_code", leagueCode, "fixture_id", item.ExternalID)
	default:
		return true
	}
	return false
}

func (s *ReconcileService) reconcileTeams(ctx context.Context, leagueID int64, item ExternalMatch, done map[int64]bool) error {
	for _, side := range []ExternalTeam{item.HomeTeam, item.AwayTeam} {
		if done[side.ExternalID] {
			continue
		}
		t := team.Team{
			ID:        side.ExternalID,
			Name:      side.Name,
			ShortName: side.ShortName,
			Crest:     side.Crest,
			LeagueID:  leagueID,
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.teamRepo.Upsert(ctx, t); err != nil {
			return fmt.Errorf("upsert team id=%d: %w", t.ID, err)
		}
		done[side.ExternalID] = true
	}
	return nil
}
