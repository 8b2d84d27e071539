package predictor

import (
	"context"
	"fmt"
	"math"

	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/platform/logging"
	"github.com/ozanbudak/footsight/internal/usecase"
)

const (
	maxGoalsModeled = 6
	homeAdvantageXG = 0.15

	weightPoisson = 0.5
	weightOdds    = 0.3
	weightForm    = 0.2
)

// PoissonPredictor scores a fixture with a hybrid of three signals: a
// Poisson goal grid from expected goals, bookmaker odds when present,
// and recent form points. Without any finished matches for a side it
// falls back to a deterministic strength derived from the team name,
// so repeated runs produce the same prediction.
type PoissonPredictor struct {
	logger *logging.Logger
}

func NewPoissonPredictor(logger *logging.Logger) *PoissonPredictor {
	if logger == nil {
		logger = logging.Default()
	}
	return &PoissonPredictor{logger: logger}
}

var _ usecase.Predictor = (*PoissonPredictor)(nil)

func (p *PoissonPredictor) Predict(_ context.Context, in usecase.PredictionInput) (usecase.Prediction, error) {
	if in.HomeTeam.ID == in.AwayTeam.ID {
		return usecase.Prediction{}, fmt.Errorf("home and away team are identical")
	}

	homeXG, awayXG := expectedGoals(in)
	grid := outcomeGrid(homeXG, awayXG)

	homeWin := grid.homeWin*weightPoisson + weightForm*formHomeWin(in)
	draw := grid.draw*weightPoisson + weightForm*formDraw(in)
	awayWin := grid.awayWin*weightPoisson + weightForm*formAwayWin(in)

	if in.Match.HasOdds() {
		oddsHome, oddsDraw, oddsAway := impliedProbabilities(*in.Match.HomeOdd, *in.Match.DrawOdd, *in.Match.AwayOdd)
		homeWin += oddsHome * weightOdds
		draw += oddsDraw * weightOdds
		awayWin += oddsAway * weightOdds
	}

	total := homeWin + draw + awayWin
	if total <= 0 {
		return usecase.Prediction{}, fmt.Errorf("degenerate probability mass for fixture id=%d", in.Match.ID)
	}
	homeWin /= total
	draw /= total
	awayWin /= total

	confidence := (math.Max(homeWin, math.Max(draw, awayWin)) - 1.0/3.0) * 150
	confidence = math.Min(99, math.Max(10, confidence))

	return usecase.Prediction{
		HomeWin:        homeWin * 100,
		Draw:           draw * 100,
		AwayWin:        awayWin * 100,
		PredictedScore: fmt.Sprintf("%d - %d", grid.likelyHome, grid.likelyAway),
		Confidence:     confidence,
	}, nil
}

// expectedGoals blends scoring and conceding averages from the recent
// finished matches of both sides. A side without history contributes a
// name seeded strength instead.
func expectedGoals(in usecase.PredictionInput) (float64, float64) {
	homeFor, homeAgainst, homeOK := goalAverages(in.HomeTeam.ID, in.HomeRecent)
	awayFor, awayAgainst, awayOK := goalAverages(in.AwayTeam.ID, in.AwayRecent)

	if !homeOK || !awayOK {
		homeStrength := nameStrength(in.HomeTeam.Name)
		awayStrength := nameStrength(in.AwayTeam.Name)
		return 1.4*homeStrength/awayStrength + homeAdvantageXG, 1.2 * awayStrength / homeStrength
	}

	homeXG := (homeFor+awayAgainst)/2 + homeAdvantageXG
	awayXG := (awayFor + homeAgainst) / 2
	return homeXG, awayXG
}

func goalAverages(teamID int64, recent []match.Match) (scored, conceded float64, ok bool) {
	var played int
	for _, m := range recent {
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		if m.HomeTeamID == teamID {
			scored += float64(*m.HomeScore)
			conceded += float64(*m.AwayScore)
		} else if m.AwayTeamID == teamID {
			scored += float64(*m.AwayScore)
			conceded += float64(*m.HomeScore)
		} else {
			continue
		}
		played++
	}
	if played == 0 {
		return 0, 0, false
	}
	return scored / float64(played), conceded / float64(played), true
}

// nameStrength maps a team name onto [0.8, 2.2] deterministically.
func nameStrength(name string) float64 {
	var seed int64
	for _, r := range name {
		seed += int64(r)
	}
	fraction := float64(seed%1000) / 999.0
	return 0.8 + fraction*1.4
}

type grid struct {
	homeWin    float64
	draw       float64
	awayWin    float64
	likelyHome int
	likelyAway int
}

// outcomeGrid walks the joint Poisson distribution over 0 to 6 goals
// per side and accumulates the three outcome masses plus the single
// most likely scoreline.
func outcomeGrid(homeXG, awayXG float64) grid {
	homeProbs := goalDistribution(homeXG)
	awayProbs := goalDistribution(awayXG)

	var out grid
	maxCell := 0.0
	for h := 0; h <= maxGoalsModeled; h++ {
		for a := 0; a <= maxGoalsModeled; a++ {
			cell := homeProbs[h] * awayProbs[a]
			switch {
			case h > a:
				out.homeWin += cell
			case h == a:
				out.draw += cell
			default:
				out.awayWin += cell
			}
			if cell > maxCell {
				maxCell = cell
				out.likelyHome, out.likelyAway = h, a
			}
		}
	}

	total := out.homeWin + out.draw + out.awayWin
	if total > 0 {
		out.homeWin /= total
		out.draw /= total
		out.awayWin /= total
	}
	return out
}

func goalDistribution(mean float64) []float64 {
	probs := make([]float64, maxGoalsModeled+1)
	sum := 0.0
	for k := 0; k <= maxGoalsModeled; k++ {
		probs[k] = poissonProbability(k, mean)
		sum += probs[k]
	}
	if sum > 0 {
		for k := range probs {
			probs[k] /= sum
		}
	}
	return probs
}

func poissonProbability(events int, mean float64) float64 {
	if mean <= 0 {
		if events == 0 {
			return 1
		}
		return 0
	}
	return math.Pow(mean, float64(events)) * math.Exp(-mean) / float64(factorial(events))
}

func factorial(n int) int64 {
	result := int64(1)
	for i := 2; i <= n; i++ {
		result *= int64(i)
	}
	return result
}

func impliedProbabilities(home, draw, away float64) (float64, float64, float64) {
	if home <= 0 || draw <= 0 || away <= 0 {
		return 0, 0, 0
	}
	total := 1/home + 1/draw + 1/away
	return (1 / home) / total, (1 / draw) / total, (1 / away) / total
}

func formPoints(teamID int64, recent []match.Match) int {
	points := 0
	for _, m := range recent {
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		var scored, conceded int
		switch teamID {
		case m.HomeTeamID:
			scored, conceded = *m.HomeScore, *m.AwayScore
		case m.AwayTeamID:
			scored, conceded = *m.AwayScore, *m.HomeScore
		default:
			continue
		}
		switch {
		case scored > conceded:
			points += 3
		case scored == conceded:
			points++
		}
	}
	return points
}

func formHomeWin(in usecase.PredictionInput) float64 {
	home, away := formPoints(in.HomeTeam.ID, in.HomeRecent), formPoints(in.AwayTeam.ID, in.AwayRecent)
	if home+away == 0 {
		return 1.0 / 3.0
	}
	return 0.40*float64(home)/float64(home+away) + 0.15
}

func formAwayWin(in usecase.PredictionInput) float64 {
	home, away := formPoints(in.HomeTeam.ID, in.HomeRecent), formPoints(in.AwayTeam.ID, in.AwayRecent)
	if home+away == 0 {
		return 1.0 / 3.0
	}
	return 0.40*float64(away)/float64(home+away) + 0.05
}

func formDraw(in usecase.PredictionInput) float64 {
	return 1 - formHomeWin(in) - formAwayWin(in)
}
