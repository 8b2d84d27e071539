package usecase

import (
	"context"
	"time"
)

// FixtureProvider fetches one competition season from the sports data
// provider. An empty Matches slice is a valid response meaning the
// provider has no fixtures for that query.
type FixtureProvider interface {
	FetchSeasonMatches(ctx context.Context, competitionCode string, seasonYear int) (ExternalSeason, error)
}

type ExternalSeason struct {
	League  ExternalLeague
	Season  int
	Matches []ExternalMatch
}

type ExternalLeague struct {
	ExternalID int64
	Code       string
	Name       string
	Country    string
	Emblem     string
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
	ShortName  string
	Crest      string
}

type ExternalMatch struct {
	ExternalID int64
	KickoffAt  time.Time
	Status     string
	Matchday   int
	HomeTeam   ExternalTeam
	AwayTeam   ExternalTeam
	HomeScore  *int
	AwayScore  *int
}
