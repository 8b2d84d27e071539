package httpapi

import (
	"context"
	"time"

	"github.com/ozanbudak/footsight/internal/domain/league"
	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/domain/team"
)

type ingestRequestDTO struct {
	LeagueCode string `json:"league_code" validate:"required"`
	Season     int    `json:"season" validate:"required,gt=0"`
}

type ingestResponseDTO struct {
	LeagueCode string `json:"league_code"`
	Season     int    `json:"season"`
	Processed  int    `json:"processed"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

type oddsEntryDTO struct {
	HomeTeam string  `json:"home_team" validate:"required"`
	AwayTeam string  `json:"away_team"`
	HomeOdd  float64 `json:"home_odd" validate:"required,gte=1"`
	DrawOdd  float64 `json:"draw_odd" validate:"required,gte=1"`
	AwayOdd  float64 `json:"away_odd" validate:"required,gte=1"`
}

type oddsUpdateRequestDTO struct {
	Matches []oddsEntryDTO `json:"matches" validate:"required,min=1,dive"`
}

type oddsUpdateResponseDTO struct {
	Updated int64    `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

type leagueDTO struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Emblem  string `json:"emblem,omitempty"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	Crest     string `json:"crest,omitempty"`
	LeagueID  int64  `json:"league_id"`
}

type matchDTO struct {
	ID             int64     `json:"id"`
	APIFixtureID   int64     `json:"api_fixture_id"`
	LeagueID       int64     `json:"league_id"`
	HomeTeamID     int64     `json:"home_team_id"`
	AwayTeamID     int64     `json:"away_team_id"`
	HomeTeam       string    `json:"home_team,omitempty"`
	AwayTeam       string    `json:"away_team,omitempty"`
	MatchDate      time.Time `json:"match_date"`
	HomeScore      *int      `json:"home_score"`
	AwayScore      *int      `json:"away_score"`
	Status         string    `json:"status"`
	HomeOdd        *float64  `json:"home_odd,omitempty"`
	DrawOdd        *float64  `json:"draw_odd,omitempty"`
	AwayOdd        *float64  `json:"away_odd,omitempty"`
	HomeWinProb    *float64  `json:"home_win_prob,omitempty"`
	DrawProb       *float64  `json:"draw_prob,omitempty"`
	AwayWinProb    *float64  `json:"away_win_prob,omitempty"`
	PredictedScore *string   `json:"predicted_score,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
}

func leagueToDTO(_ context.Context, l league.League) leagueDTO {
	return leagueDTO{
		ID:      l.ID,
		Code:    l.Code,
		Name:    l.Name,
		Country: l.Country,
		Emblem:  l.Emblem,
	}
}

func teamToDTO(_ context.Context, t team.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		Crest:     t.Crest,
		LeagueID:  t.LeagueID,
	}
}

func matchToDTO(_ context.Context, m match.Match, teamNames map[int64]string) matchDTO {
	return matchDTO{
		ID:             m.ID,
		APIFixtureID:   m.APIFixtureID,
		LeagueID:       m.LeagueID,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		HomeTeam:       teamNames[m.HomeTeamID],
		AwayTeam:       teamNames[m.AwayTeamID],
		MatchDate:      m.MatchDate,
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
		Status:         m.Status,
		HomeOdd:        m.HomeOdd,
		DrawOdd:        m.DrawOdd,
		AwayOdd:        m.AwayOdd,
		HomeWinProb:    m.HomeWinProb,
		DrawProb:       m.DrawProb,
		AwayWinProb:    m.AwayWinProb,
		PredictedScore: m.PredictedScore,
		Confidence:     m.Confidence,
	}
}
