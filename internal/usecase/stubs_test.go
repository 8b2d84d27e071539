package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ozanbudak/footsight/internal/domain/league"
	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/domain/team"
)

type stubLeagueRepository struct {
	rows      map[int64]league.League
	upserts   int
	upsertErr error
}

func newStubLeagueRepository() *stubLeagueRepository {
	return &stubLeagueRepository{rows: make(map[int64]league.League)}
}

func (r *stubLeagueRepository) Upsert(_ context.Context, l league.League) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.rows[l.ID] = l
	r.upserts++
	return nil
}

func (r *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	out := make([]league.League, 0, len(r.rows))
	for _, l := range r.rows {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	for _, l := range r.rows {
		if l.Code == code {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

type stubTeamRepository struct {
	rows      map[int64]team.Team
	upserts   int
	upsertErr error
	getErr    error
}

func newStubTeamRepository() *stubTeamRepository {
	return &stubTeamRepository{rows: make(map[int64]team.Team)}
}

func (r *stubTeamRepository) Upsert(_ context.Context, t team.Team) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.rows[t.ID] = t
	r.upserts++
	return nil
}

func (r *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	out := make([]team.Team, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	if r.getErr != nil {
		return team.Team{}, false, r.getErr
	}
	t, ok := r.rows[teamID]
	return t, ok, nil
}

type stubMatchRepository struct {
	rows    map[int64]match.Match
	nextID  int64
	upserts int

	upsertErr      error
	listPendingErr error
	saveErr        error

	oddsUpdated    int64
	oddsErr        error
	lastOddsPrefix string
	lastOdds       match.Odds
}

func newStubMatchRepository() *stubMatchRepository {
	return &stubMatchRepository{rows: make(map[int64]match.Match)}
}

func (r *stubMatchRepository) add(m match.Match) match.Match {
	if m.ID == 0 {
		r.nextID++
		m.ID = r.nextID
	} else if m.ID > r.nextID {
		r.nextID = m.ID
	}
	r.rows[m.ID] = m
	return m
}

func (r *stubMatchRepository) findByFixtureID(fixtureID int64) (match.Match, bool) {
	for _, m := range r.rows {
		if m.APIFixtureID == fixtureID {
			return m, true
		}
	}
	return match.Match{}, false
}

func (r *stubMatchRepository) Upsert(_ context.Context, m match.Match) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	if existing, ok := r.findByFixtureID(m.APIFixtureID); ok {
		existing.LeagueID = m.LeagueID
		existing.HomeTeamID = m.HomeTeamID
		existing.AwayTeamID = m.AwayTeamID
		existing.MatchDate = m.MatchDate
		existing.HomeScore = m.HomeScore
		existing.AwayScore = m.AwayScore
		existing.Status = m.Status
		r.rows[existing.ID] = existing
		return nil
	}
	r.add(m)
	return nil
}

func (r *stubMatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	m, ok := r.rows[matchID]
	return m, ok, nil
}

func (r *stubMatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Match, error) {
	out := make([]match.Match, 0, len(r.rows))
	for _, m := range r.rows {
		if filter.LeagueID > 0 && m.LeagueID != filter.LeagueID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubMatchRepository) ListUpcoming(_ context.Context, from time.Time, limit int) ([]match.Match, error) {
	out := make([]match.Match, 0, len(r.rows))
	for _, m := range r.rows {
		if m.Status != match.StatusNotStarted || m.MatchDate.Before(from) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchDate.Before(out[j].MatchDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMatchRepository) ListPendingAnalysis(_ context.Context, limit int) ([]match.Match, error) {
	if r.listPendingErr != nil {
		return nil, r.listPendingErr
	}
	out := make([]match.Match, 0, len(r.rows))
	for _, m := range r.rows {
		if m.Status != match.StatusNotStarted || m.HomeWinProb != nil {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchDate.Before(out[j].MatchDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMatchRepository) SaveAnalysisIfPending(_ context.Context, matchID int64, a match.Analysis) (bool, error) {
	if r.saveErr != nil {
		return false, r.saveErr
	}
	m, ok := r.rows[matchID]
	if !ok || m.HomeWinProb != nil {
		return false, nil
	}
	m.HomeWinProb = &a.HomeWinProb
	m.DrawProb = &a.DrawProb
	m.AwayWinProb = &a.AwayWinProb
	m.PredictedScore = &a.PredictedScore
	m.Confidence = &a.Confidence
	r.rows[matchID] = m
	return true, nil
}

func (r *stubMatchRepository) ListRecentFinishedByTeam(_ context.Context, teamID int64, limit int) ([]match.Match, error) {
	out := make([]match.Match, 0, limit)
	for _, m := range r.rows {
		if m.Status != match.StatusFinished {
			continue
		}
		if m.HomeTeamID != teamID && m.AwayTeamID != teamID {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchDate.After(out[j].MatchDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMatchRepository) UpdateOddsByTeamName(_ context.Context, prefix string, odds match.Odds) (int64, error) {
	if r.oddsErr != nil {
		return 0, r.oddsErr
	}
	r.lastOddsPrefix = prefix
	r.lastOdds = odds
	return r.oddsUpdated, nil
}

type stubFixtureProvider struct {
	seasons map[string]ExternalSeason
	errs    map[string]error
	calls   []string
}

func newStubFixtureProvider() *stubFixtureProvider {
	return &stubFixtureProvider{
		seasons: make(map[string]ExternalSeason),
		errs:    make(map[string]error),
	}
}

func providerKey(code string, season int) string {
	return fmt.Sprintf("%s:%d", code, season)
}

func (p *stubFixtureProvider) FetchSeasonMatches(_ context.Context, code string, season int) (ExternalSeason, error) {
	key := providerKey(code, season)
	p.calls = append(p.calls, key)
	if err, ok := p.errs[key]; ok {
		return ExternalSeason{}, err
	}
	return p.seasons[key], nil
}

type stubPredictor struct {
	prediction Prediction
	errByMatch map[int64]error
	calls      int
}

func (p *stubPredictor) Predict(_ context.Context, in PredictionInput) (Prediction, error) {
	p.calls++
	if err, ok := p.errByMatch[in.Match.ID]; ok {
		return Prediction{}, err
	}
	return p.prediction, nil
}
