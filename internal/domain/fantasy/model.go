package fantasy

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
)

// SquadPick represents one selected player in a user's fantasy squad.
// Team, role and cost are snapshotted from the catalog at save time.
type SquadPick struct {
	PlayerID      string
	TeamID        int64
	Role          player.Role
	Cost          float64
	IsCaptain     bool
	IsViceCaptain bool
}

// Squad is one user's selection for one match.
type Squad struct {
	ID          string
	UserID      string
	MatchID     int64
	TotalPoints *float64
	Picks       []SquadPick
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return crerr.New("squad id is required")
	}
	if s.UserID == "" {
		return crerr.New("user id is required")
	}
	if s.MatchID <= 0 {
		return crerr.New("match id is required")
	}

	return nil
}

func (s Squad) Captain() (SquadPick, bool) {
	for _, pick := range s.Picks {
		if pick.IsCaptain {
			return pick, true
		}
	}
	return SquadPick{}, false
}

func (s Squad) ViceCaptain() (SquadPick, bool) {
	for _, pick := range s.Picks {
		if pick.IsViceCaptain {
			return pick, true
		}
	}
	return SquadPick{}, false
}

// Points is the stored total, zero until the match has been scored.
func (s Squad) Points() float64 {
	if s.TotalPoints == nil {
		return 0
	}
	return *s.TotalPoints
}

func (s Squad) TotalCostCents() int64 {
	var total int64
	for _, pick := range s.Picks {
		total += player.ToCents(pick.Cost)
	}
	return total
}
