package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/domain/team"
	"github.com/ozanbudak/footsight/internal/platform/logging"
)

// drawProbabilityFloor is the minimum draw percentage written back by
// the dispatcher. Unconstrained models can degenerate to a near zero
// draw probability, which is implausible for football.
const drawProbabilityFloor = 10.0

const recentFormWindow = 5

// Predictor produces a raw outcome prediction for one match. The three
// probabilities are expected on a 0..100 scale but do not have to sum
// to 100; the dispatcher normalizes them.
type Predictor interface {
	Predict(ctx context.Context, in PredictionInput) (Prediction, error)
}

type PredictionInput struct {
	Match      match.Match
	HomeTeam   team.Team
	AwayTeam   team.Team
	HomeRecent []match.Match
	AwayRecent []match.Match
}

type Prediction struct {
	HomeWin        float64
	Draw           float64
	AwayWin        float64
	PredictedScore string
	Confidence     float64
}

type AnalysisResult struct {
	Pending  int `json:"pending"`
	Analyzed int `json:"analyzed"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AnalysisService finds matches pending analysis, runs the prediction
// model for each one and writes the normalized result back. Per match
// failures are logged and skipped; the batch always runs to the end.
type AnalysisService struct {
	matchRepo matchAnalysisRepository
	teamRepo  team.Repository
	predictor Predictor
	batchSize int
	logger    *logging.Logger
}

type matchAnalysisRepository interface {
	ListPendingAnalysis(ctx context.Context, limit int) ([]match.Match, error)
	SaveAnalysisIfPending(ctx context.Context, matchID int64, a match.Analysis) (bool, error)
	ListRecentFinishedByTeam(ctx context.Context, teamID int64, limit int) ([]match.Match, error)
}

func NewAnalysisService(
	matchRepo matchAnalysisRepository,
	teamRepo team.Repository,
	predictor Predictor,
	batchSize int,
	logger *logging.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	return &AnalysisService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		predictor: predictor,
		batchSize: batchSize,
		logger:    logger,
	}
}

// AnalyzePending reports the pre-dispatch pending count plus a
// success/skip/failure breakdown. Only a systemic failure, such as an
// unreachable store, returns an error.
func (s *AnalysisService) AnalyzePending(ctx context.Context) (AnalysisResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.AnalyzePending")
	defer span.End()

	if s.matchRepo == nil || s.teamRepo == nil {
		return AnalysisResult{}, fmt.Errorf("%w: analysis repositories are not configured", ErrDependencyUnavailable)
	}
	if s.predictor == nil {
		return AnalysisResult{}, fmt.Errorf("%w: prediction model is not configured", ErrDependencyUnavailable)
	}

	pending, err := s.matchRepo.ListPendingAnalysis(ctx, s.batchSize)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("list pending matches: %w", err)
	}

	result := AnalysisResult{Pending: len(pending)}
	for _, m := range pending {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		switch s.analyzeMatch(ctx, m) {
		case analysisOutcomeAnalyzed:
			result.Analyzed++
		case analysisOutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}

	s.logger.InfoContext(ctx, "analysis dispatch finished",
		"pending", result.Pending,
		"analyzed", result.Analyzed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

type analysisOutcome int

const (
	analysisOutcomeAnalyzed analysisOutcome = iota
	analysisOutcomeSkipped
	analysisOutcomeFailed
)

func (s *AnalysisService) analyzeMatch(ctx context.Context, m match.Match) analysisOutcome {
	home, homeOK, err := s.teamRepo.GetByID(ctx, m.HomeTeamID)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis failed: load home team", "match_id", m.ID, "team_id", m.HomeTeamID, "error", err)
		return analysisOutcomeFailed
	}
	away, awayOK, err := s.teamRepo.GetByID(ctx, m.AwayTeamID)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis failed: load away team", "match_id", m.ID, "team_id", m.AwayTeamID, "error", err)
		return analysisOutcomeFailed
	}
	if !homeOK || !awayOK {
		s.logger.WarnContext(ctx, "skip analysis: team rows missing", "match_id", m.ID, "home_found", homeOK, "away_found", awayOK)
		return analysisOutcomeSkipped
	}

	input := PredictionInput{
		Match:      m,
		HomeTeam:   home,
		AwayTeam:   away,
		HomeRecent: s.recentForm(ctx, m.HomeTeamID),
		AwayRecent: s.recentForm(ctx, m.AwayTeamID),
	}

	prediction, err := s.predictor.Predict(ctx, input)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis failed: prediction model", "match_id", m.ID, "error", err)
		return analysisOutcomeFailed
	}

	homeWin, draw, awayWin, err := NormalizeProbabilities(prediction.HomeWin, prediction.Draw, prediction.AwayWin)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis failed: invalid model output", "match_id", m.ID, "error", err)
		return analysisOutcomeFailed
	}

	analysis := match.Analysis{
		HomeWinProb:    homeWin,
		DrawProb:       draw,
		AwayWinProb:    awayWin,
		PredictedScore: prediction.PredictedScore,
		Confidence:     clampFloat(prediction.Confidence, 0, 100),
	}
	claimed, err := s.matchRepo.SaveAnalysisIfPending(ctx, m.ID, analysis)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis failed: save analysis", "match_id", m.ID, "error", err)
		return analysisOutcomeFailed
	}
	if !claimed {
		s.logger.WarnContext(ctx, "skip analysis: match already analyzed", "match_id", m.ID)
		return analysisOutcomeSkipped
	}

	return analysisOutcomeAnalyzed
}

// recentForm enriches the model input. Form is optional, so a lookup
// error degrades to an empty history instead of failing the match.
func (s *AnalysisService) recentForm(ctx context.Context, teamID int64) []match.Match {
	recent, err := s.matchRepo.ListRecentFinishedByTeam(ctx, teamID, recentFormWindow)
	if err != nil {
		s.logger.WarnContext(ctx, "load recent form failed", "team_id", teamID, "error", err)
		return nil
	}
	return recent
}

// NormalizeProbabilities rescales a raw non-negative triple so the
// three outcomes sum to 100 and the draw component never drops below
// the floor. When the floor kicks in, draw is pinned to exactly the
// floor and the remaining 90 points are split between home and away in
// proportion to their scaled values, which keeps their relative
// ordering intact: {40, 5, 55} becomes {37.89, 10, 52.11}.
func NormalizeProbabilities(homeWin, draw, awayWin float64) (float64, float64, float64, error) {
	if homeWin < 0 || draw < 0 || awayWin < 0 {
		return 0, 0, 0, fmt.Errorf("%w: probabilities must be non-negative", ErrInvalidInput)
	}
	if !isFiniteProbability(homeWin) || !isFiniteProbability(draw) || !isFiniteProbability(awayWin) {
		return 0, 0, 0, fmt.Errorf("%w: probabilities must be finite numbers", ErrInvalidInput)
	}
	total := homeWin + draw + awayWin
	if total <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: probabilities sum to zero", ErrInvalidInput)
	}

	homeWin = homeWin / total * 100
	draw = draw / total * 100
	awayWin = awayWin / total * 100

	if draw < drawProbabilityFloor {
		// The two sides hold more than 90 points here, so the split is
		// always well defined.
		remainder := 100 - drawProbabilityFloor
		sides := homeWin + awayWin
		homeWin = remainder * homeWin / sides
		awayWin = remainder * awayWin / sides
		draw = drawProbabilityFloor
	}

	homeWin = round2(homeWin)
	draw = round2(draw)
	awayWin = round2(100 - homeWin - draw)
	return homeWin, draw, awayWin, nil
}

func isFiniteProbability(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func clampFloat(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
