package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ozanbudak/footsight/internal/domain/match"
	qb "github.com/ozanbudak/footsight/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert inserts or refreshes one fixture keyed on the provider
// fixture id. Odds and analysis columns are never part of the update
// list, so re-ingesting a season cannot erase them.
func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) error {
	insertModel := matchInsertModel{
		APIFixtureID: m.APIFixtureID,
		LeagueID:     m.LeagueID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		MatchDate:    m.MatchDate,
		HomeScore:    intPtrToNullInt64(m.HomeScore),
		AwayScore:    intPtrToNullInt64(m.AwayScore),
		Status:       m.Status,
	}
	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (api_fixture_id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    match_date = EXCLUDED.match_date,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match fixture_id=%d: %w", m.APIFixtureID, err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return mapMatchRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.LeagueID > 0 {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", filter.Status))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("match_date DESC", "id").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.EqLiteral("status", match.StatusNotStarted),
			qb.Gte("match_date", from),
		).
		OrderBy("match_date", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListPendingAnalysis(ctx context.Context, limit int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.EqLiteral("status", match.StatusNotStarted),
			qb.IsNull("home_win_prob"),
		).
		OrderBy("match_date", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pending analysis query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

// SaveAnalysisIfPending writes the analysis block only when no other
// writer has claimed the row yet. The null check on home_win_prob in
// the WHERE clause is the claim: whoever updates first wins and every
// later writer sees zero affected rows.
func (r *MatchRepository) SaveAnalysisIfPending(ctx context.Context, matchID int64, a match.Analysis) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("home_win_prob", a.HomeWinProb).
		Set("draw_prob", a.DrawProb).
		Set("away_win_prob", a.AwayWinProb).
		Set("predicted_score", a.PredictedScore).
		Set("confidence", a.Confidence).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.IsNull("home_win_prob"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build save analysis query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("save analysis match_id=%d: %w", matchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save analysis rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *MatchRepository) ListRecentFinishedByTeam(ctx context.Context, teamID int64, limit int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.EqLiteral("status", match.StatusFinished),
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
		).
		OrderBy("match_date DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select recent finished query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) UpdateOddsByTeamName(ctx context.Context, teamNamePrefix string, odds match.Odds) (int64, error) {
	query, args, err := qb.Update("matches").
		Set("home_odd", odds.Home).
		Set("draw_odd", odds.Draw).
		Set("away_odd", odds.Away).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.EqLiteral("status", match.StatusNotStarted),
			qb.Expr(`(home_team_id IN (SELECT id FROM teams WHERE name ILIKE ?)
 OR away_team_id IN (SELECT id FROM teams WHERE name ILIKE ?))`, teamNamePrefix+"%", teamNamePrefix+"%"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build update odds query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update odds team=%s: %w", teamNamePrefix, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update odds rows affected: %w", err)
	}
	return affected, nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMatchRow(row))
	}
	return out, nil
}

func intPtrToNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
