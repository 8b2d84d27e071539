package match

import "time"

// Match is one fixture between two teams, including any odds and
// prediction columns written back by the analysis pipeline.
type Match struct {
	ID           int64
	APIFixtureID int64
	LeagueID     int64
	HomeTeamID   int64
	AwayTeamID   int64
	MatchDate    time.Time
	HomeScore    *int
	AwayScore    *int
	Status       string

	HomeOdd *float64
	DrawOdd *float64
	AwayOdd *float64

	HomeWinProb    *float64
	DrawProb       *float64
	AwayWinProb    *float64
	PredictedScore *string
	Confidence     *float64

	UpdatedAt time.Time
}

// Analysis is the prediction write-back for a single match.
type Analysis struct {
	HomeWinProb    float64
	DrawProb       float64
	AwayWinProb    float64
	PredictedScore string
	Confidence     float64
}

// Odds is a bookmaker price triple for a match outcome.
type Odds struct {
	Home float64
	Draw float64
	Away float64
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}

func (m Match) IsNotStarted() bool {
	return m.Status == StatusNotStarted
}

// HasAnalysis reports whether prediction columns were already written.
func (m Match) HasAnalysis() bool {
	return m.HomeWinProb != nil
}

func (m Match) HasOdds() bool {
	return m.HomeOdd != nil && m.DrawOdd != nil && m.AwayOdd != nil
}
