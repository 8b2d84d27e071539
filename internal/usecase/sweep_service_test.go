package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ozanbudak/footsight/internal/platform/logging"
)

func newSweepFixture(cfg SweepConfig) (*SweepService, *stubFixtureProvider, *stubMatchRepository) {
	provider := newStubFixtureProvider()
	matches := newStubMatchRepository()
	reconcile := NewReconcileService(newStubLeagueRepository(), newStubTeamRepository(), matches, logging.NewNop())
	ingest := NewIngestService(provider, reconcile, logging.NewNop())
	return NewSweepService(ingest, cfg, logging.NewNop()), provider, matches
}

func TestSweepShortCircuitsOnFirstSeasonWithData(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newSweepFixture(SweepConfig{
		LeagueCodes:    []string{"PL"},
		SeasonPriority: []int{2025, 2024},
		MaxWorkers:     2,
	})

	provider.seasons[providerKey("PL", 2025)] = ExternalSeason{}
	season := sampleSeason()
	season.Season = 2024
	provider.seasons[providerKey("PL", 2024)] = season

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if result.TotalProcessed != 1 {
		t.Fatalf("expected one processed fixture, got %d", result.TotalProcessed)
	}
	if len(result.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(result.Attempts))
	}
	if result.Attempts[0].Season != 2025 || result.Attempts[0].Status != sweepStatusNoData {
		t.Fatalf("expected 2025 to report no data, got %+v", result.Attempts[0])
	}
	if result.Attempts[1].Season != 2024 || result.Attempts[1].Status != sweepStatusProcessed {
		t.Fatalf("expected 2024 to report data, got %+v", result.Attempts[1])
	}
}

func TestSweepStopsAfterFirstSeasonWithData(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newSweepFixture(SweepConfig{
		LeagueCodes:    []string{"PL"},
		SeasonPriority: []int{2025, 2024},
		MaxWorkers:     1,
	})

	provider.seasons[providerKey("PL", 2025)] = sampleSeason()
	older := sampleSeason()
	older.Season = 2024
	provider.seasons[providerKey("PL", 2024)] = older

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected a single provider call, got %v", provider.calls)
	}
	if len(result.Attempts) != 1 || result.Attempts[0].Season != 2025 {
		t.Fatalf("expected only the 2025 attempt, got %+v", result.Attempts)
	}
}

func TestSweepIsolatesLeagueFailures(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newSweepFixture(SweepConfig{
		LeagueCodes:    []string{"PD", "PL"},
		SeasonPriority: []int{2025},
		MaxWorkers:     2,
	})

	provider.errs[providerKey("PD", 2025)] = errors.New("upstream timeout")
	provider.seasons[providerKey("PL", 2025)] = sampleSeason()

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if result.TotalProcessed != 1 {
		t.Fatalf("expected PL to ingest one fixture, got %d", result.TotalProcessed)
	}

	byLeague := make(map[string]SweepAttempt, len(result.Attempts))
	for _, attempt := range result.Attempts {
		byLeague[attempt.LeagueCode] = attempt
	}
	if byLeague["PD"].Status != sweepStatusError {
		t.Fatalf("expected PD attempt to report an error, got %+v", byLeague["PD"])
	}
	if byLeague["PL"].Status != sweepStatusProcessed {
		t.Fatalf("expected PL attempt to succeed, got %+v", byLeague["PL"])
	}
}

func TestSweepRejectsEmptyConfig(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSweepFixture(SweepConfig{
		LeagueCodes:    []string{"  ", ""},
		SeasonPriority: []int{2025},
		MaxWorkers:     1,
	})
	if _, err := svc.Sweep(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty league codes, got %v", err)
	}

	svc, _, _ = newSweepFixture(SweepConfig{
		LeagueCodes:    []string{"PL"},
		SeasonPriority: nil,
		MaxWorkers:     1,
	})
	if _, err := svc.Sweep(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty season priority, got %v", err)
	}
}

func TestNormalizeSweepWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value   int
		leagues int
		want    int
	}{
		{value: 0, leagues: 6, want: 1},
		{value: -3, leagues: 6, want: 1},
		{value: 4, leagues: 6, want: 4},
		{value: 8, leagues: 3, want: 3},
	}
	for _, tc := range cases {
		if got := normalizeSweepWorkerCount(tc.value, tc.leagues); got != tc.want {
			t.Fatalf("normalizeSweepWorkerCount(%d, %d) = %d, want %d", tc.value, tc.leagues, got, tc.want)
		}
	}
}
