package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ozanbudak/footsight/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	sweepStatusProcessed = "processed"
	sweepStatusNoData    = "no_data"
	sweepStatusError     = "error"
)

// SweepConfig selects which leagues to sweep and in which season
// order to look for fixtures. SeasonPriority is most preferred first.
type SweepConfig struct {
	LeagueCodes    []string
	SeasonPriority []int
	MaxWorkers     int
}

type SweepResult struct {
	LeagueCount    int            `json:"league_count"`
	WorkerCount    int            `json:"worker_count"`
	TotalProcessed int            `json:"total_processed"`
	Attempts       []SweepAttempt `json:"attempts"`
}

type SweepAttempt struct {
	LeagueCode string `json:"league_code"`
	Season     int    `json:"season"`
	Status     string `json:"status"`
	Processed  int    `json:"processed"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// SweepService runs the fixture ingestor over every configured league.
// Leagues are independent and swept in parallel; within one league the
// configured seasons are tried in priority order and the search stops
// at the first season that yields fixtures.
type SweepService struct {
	ingest *IngestService
	cfg    SweepConfig
	logger *logging.Logger
}

func NewSweepService(ingest *IngestService, cfg SweepConfig, logger *logging.Logger) *SweepService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SweepService{
		ingest: ingest,
		cfg:    cfg,
		logger: logger,
	}
}

// Sweep never fails because of a single (league, season) attempt: fetch
// and reconcile errors are recorded in the attempt log and the sweep
// moves on. Only a broken configuration or worker pool setup returns an
// error.
func (s *SweepService) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.Sweep")
	defer span.End()

	if s.ingest == nil {
		return SweepResult{}, fmt.Errorf("%w: ingest service is not configured", ErrDependencyUnavailable)
	}

	codes := make([]string, 0, len(s.cfg.LeagueCodes))
	for _, code := range s.cfg.LeagueCodes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return SweepResult{}, fmt.Errorf("%w: league codes are required", ErrInvalidInput)
	}
	if len(s.cfg.SeasonPriority) == 0 {
		return SweepResult{}, fmt.Errorf("%w: season priority is required", ErrInvalidInput)
	}

	workerCount := normalizeSweepWorkerCount(s.cfg.MaxWorkers, len(codes))
	result := SweepResult{
		LeagueCount: len(codes),
		WorkerCount: workerCount,
		Attempts:    make([]SweepAttempt, 0, len(codes)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	attemptLists := make(chan []SweepAttempt, len(codes))
	var totalProcessed atomic.Int64

	var workers sync.WaitGroup
	for _, code := range codes {
		code := code
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			attempts, processed := s.sweepLeague(ctx, code)
			totalProcessed.Add(int64(processed))
			attemptLists <- attempts
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit league to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(attemptLists)

	for attempts := range attemptLists {
		result.Attempts = append(result.Attempts, attempts...)
	}
	sort.SliceStable(result.Attempts, func(i, j int) bool {
		if result.Attempts[i].LeagueCode != result.Attempts[j].LeagueCode {
			return result.Attempts[i].LeagueCode < result.Attempts[j].LeagueCode
		}
		return result.Attempts[i].Season > result.Attempts[j].Season
	})

	result.TotalProcessed = int(totalProcessed.Load())
	return result, nil
}

// sweepLeague tries seasons in priority order and stops on the first
// season that yields fixtures. A season returning zero fixtures is
// treated as "no data" and not retried within the sweep.
func (s *SweepService) sweepLeague(ctx context.Context, code string) ([]SweepAttempt, int) {
	attempts := make([]SweepAttempt, 0, len(s.cfg.SeasonPriority))

	for _, season := range s.cfg.SeasonPriority {
		start := time.Now()
		attempt := SweepAttempt{LeagueCode: code, Season: season}

		res, err := s.ingest.IngestFixtures(ctx, code, season)
		attempt.DurationMs = time.Since(start).Milliseconds()
		switch {
		case err != nil:
			attempt.Status = sweepStatusError
			attempt.Message = err.Error()
			s.logger.WarnContext(ctx, "sweep attempt failed",
				"league_code", code,
				"season", season,
				"error", err,
			)
		case res.Processed == 0 && res.Skipped == 0 && res.Failed == 0:
			attempt.Status = sweepStatusNoData
		default:
			attempt.Status = sweepStatusProcessed
			attempt.Processed = res.Processed
		}
		attempts = append(attempts, attempt)

		if attempt.Status == sweepStatusProcessed {
			return attempts, attempt.Processed
		}
		if ctx.Err() != nil {
			return attempts, 0
		}
	}

	return attempts, 0
}

func normalizeSweepWorkerCount(value int, leagueCount int) int {
	if leagueCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > leagueCount {
		value = leagueCount
	}
	return value
}
