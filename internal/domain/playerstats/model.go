package playerstats

import (
	"math"

	crerr "github.com/cockroachdb/errors"
)

// Stat is the raw scorecard line of one fielded player in one match.
type Stat struct {
	MatchID  int64
	PlayerID string
	Runs     int
	RunRate  float64
	Economy  float64
	Wickets  int
	Sixes    int
	Fours    int
	Catches  int
}

func (s Stat) Validate() error {
	if s.PlayerID == "" {
		return crerr.New("player id is required")
	}
	if s.Runs < 0 || s.Wickets < 0 || s.Sixes < 0 || s.Fours < 0 || s.Catches < 0 {
		return crerr.Newf("negative counting stat for player %s", s.PlayerID)
	}
	if !finite(s.RunRate) || !finite(s.Economy) {
		return crerr.Newf("run rate and economy must be finite for player %s", s.PlayerID)
	}
	if s.RunRate < 0 {
		return crerr.Newf("negative run rate for player %s", s.PlayerID)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
