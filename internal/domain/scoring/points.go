package scoring

import (
	"math"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
)

var ErrNonFiniteStat = crerr.New("stat value is not a finite number")

const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// BasePoints converts one scorecard line into raw fantasy points:
//
//	runs/10 + run_rate/100 + 10/economy + wickets*2 + sixes + fours/2 + catches
//
// The economy term only applies when economy is positive.
func BasePoints(stat playerstats.Stat) (float64, error) {
	if !finite(stat.RunRate) || !finite(stat.Economy) {
		return 0, crerr.Wrapf(ErrNonFiniteStat, "player=%s", stat.PlayerID)
	}

	points := float64(stat.Runs)/10 + stat.RunRate/100
	if stat.Economy > 0 {
		points += 10 / stat.Economy
	}
	points += float64(stat.Wickets) * 2
	points += float64(stat.Sixes)
	points += float64(stat.Fours) * 0.5
	points += float64(stat.Catches)

	if !finite(points) {
		return 0, crerr.Wrapf(ErrNonFiniteStat, "player=%s", stat.PlayerID)
	}
	return points, nil
}

func Multiplier(pick fantasy.SquadPick) float64 {
	switch {
	case pick.IsCaptain:
		return CaptainMultiplier
	case pick.IsViceCaptain:
		return ViceCaptainMultiplier
	default:
		return 1
	}
}

// Round2 rounds to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SquadTotal sums the multiplied base points of every pick. Picks without an
// entry in basePoints did not play and contribute nothing. Only the final sum
// is rounded.
func SquadTotal(picks []fantasy.SquadPick, basePoints map[string]float64) float64 {
	var total float64
	for _, pick := range picks {
		base, ok := basePoints[pick.PlayerID]
		if !ok {
			continue
		}
		total += base * Multiplier(pick)
	}
	return Round2(total)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
