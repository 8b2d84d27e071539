package match

import (
	"context"
	"time"
)

// ListFilter narrows match listings. Zero values mean no constraint.
type ListFilter struct {
	LeagueID int64
	Status   string
	Limit    int
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	// Upsert inserts a match or updates schedule, score and status on
	// conflict with the provider fixture ID. Prediction and odds
	// columns are never touched by an upsert.
	Upsert(ctx context.Context, m Match) error

	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Match, error)

	// ListPendingAnalysis returns not started matches whose prediction
	// columns are still empty, earliest kickoff first.
	ListPendingAnalysis(ctx context.Context, limit int) ([]Match, error)

	// SaveAnalysisIfPending writes prediction columns only when they
	// are still empty, and reports whether the row was claimed.
	SaveAnalysisIfPending(ctx context.Context, matchID int64, a Analysis) (bool, error)

	// ListRecentFinishedByTeam returns the team's latest finished
	// matches, most recent first.
	ListRecentFinishedByTeam(ctx context.Context, teamID int64, limit int) ([]Match, error)

	// UpdateOddsByTeamName sets odds on not started matches where either
	// side's team name starts with the given prefix. Returns the number
	// of matches updated.
	UpdateOddsByTeamName(ctx context.Context, teamNamePrefix string, odds Odds) (int64, error)
}
