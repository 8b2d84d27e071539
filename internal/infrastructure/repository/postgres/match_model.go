package postgres

import (
	"database/sql"
	"time"

	"github.com/ozanbudak/footsight/internal/domain/match"
)

type matchTableModel struct {
	ID             int64           `db:"id"`
	APIFixtureID   int64           `db:"api_fixture_id"`
	LeagueID       int64           `db:"league_id"`
	HomeTeamID     int64           `db:"home_team_id"`
	AwayTeamID     int64           `db:"away_team_id"`
	MatchDate      time.Time       `db:"match_date"`
	HomeScore      sql.NullInt64   `db:"home_score"`
	AwayScore      sql.NullInt64   `db:"away_score"`
	Status         string          `db:"status"`
	HomeOdd        sql.NullFloat64 `db:"home_odd"`
	DrawOdd        sql.NullFloat64 `db:"draw_odd"`
	AwayOdd        sql.NullFloat64 `db:"away_odd"`
	HomeWinProb    sql.NullFloat64 `db:"home_win_prob"`
	DrawProb       sql.NullFloat64 `db:"draw_prob"`
	AwayWinProb    sql.NullFloat64 `db:"away_win_prob"`
	PredictedScore sql.NullString  `db:"predicted_score"`
	Confidence     sql.NullFloat64 `db:"confidence"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// matchInsertModel carries only the columns the ingestion pipeline
// owns. Odds and analysis columns are written by their own paths and
// must survive a re-ingest untouched.
type matchInsertModel struct {
	APIFixtureID int64         `db:"api_fixture_id"`
	LeagueID     int64         `db:"league_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	MatchDate    time.Time     `db:"match_date"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Status       string        `db:"status"`
}

func mapMatchRow(row matchTableModel) match.Match {
	return match.Match{
		ID:             row.ID,
		APIFixtureID:   row.APIFixtureID,
		LeagueID:       row.LeagueID,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		MatchDate:      row.MatchDate,
		HomeScore:      nullInt64ToIntPtr(row.HomeScore),
		AwayScore:      nullInt64ToIntPtr(row.AwayScore),
		Status:         row.Status,
		HomeOdd:        nullFloat64ToPtr(row.HomeOdd),
		DrawOdd:        nullFloat64ToPtr(row.DrawOdd),
		AwayOdd:        nullFloat64ToPtr(row.AwayOdd),
		HomeWinProb:    nullFloat64ToPtr(row.HomeWinProb),
		DrawProb:       nullFloat64ToPtr(row.DrawProb),
		AwayWinProb:    nullFloat64ToPtr(row.AwayWinProb),
		PredictedScore: nullStringToPtr(row.PredictedScore),
		Confidence:     nullFloat64ToPtr(row.Confidence),
		UpdatedAt:      row.UpdatedAt,
	}
}
