package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ozanbudak/footsight/internal/platform/logging"
)

func newIngestFixture() (*IngestService, *stubFixtureProvider, *stubMatchRepository) {
	provider := newStubFixtureProvider()
	matches := newStubMatchRepository()
	reconcile := NewReconcileService(newStubLeagueRepository(), newStubTeamRepository(), matches, logging.NewNop())
	return NewIngestService(provider, reconcile, logging.NewNop()), provider, matches
}

func TestIngestFixturesHappyPath(t *testing.T) {
	t.Parallel()

	svc, provider, matches := newIngestFixture()
	provider.seasons[providerKey("PL", 2025)] = sampleSeason()

	result, err := svc.IngestFixtures(context.Background(), "pl", 2025)
	if err != nil {
		t.Fatalf("IngestFixtures returned error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("expected 1 processed fixture, got %+v", result)
	}
	if len(provider.calls) != 1 || provider.calls[0] != "PL:2025" {
		t.Fatalf("expected an uppercased provider call, got %v", provider.calls)
	}
	if _, ok := matches.findByFixtureID(555); !ok {
		t.Fatalf("expected fixture 555 to be stored")
	}
}

func TestIngestFixturesValidatesInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newIngestFixture()

	if _, err := svc.IngestFixtures(context.Background(), "  ", 2025); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank code, got %v", err)
	}
	if _, err := svc.IngestFixtures(context.Background(), "PL", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero season, got %v", err)
	}
}

func TestIngestFixturesWrapsProviderFailure(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newIngestFixture()
	provider.errs[providerKey("PL", 2025)] = errors.New("upstream 503")

	if _, err := svc.IngestFixtures(context.Background(), "PL", 2025); err == nil {
		t.Fatalf("expected provider failure to surface")
	}
}

func TestIngestFixturesBackfillsLeagueCodeAndSeason(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newIngestFixture()
	season := sampleSeason()
	season.League.Code = ""
	season.Season = 0
	provider.seasons[providerKey("PL", 2025)] = season

	result, err := svc.IngestFixtures(context.Background(), "PL", 2025)
	if err != nil {
		t.Fatalf("IngestFixtures returned error: %v", err)
	}
	if result.LeagueCode != "PL" || result.Season != 2025 {
		t.Fatalf("expected backfilled code and season, got %+v", result)
	}
}
