package fantasy

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
)

// ErrInvalidSelection marks every rule violation raised by the validators
// below so callers can tell a rejected squad from an infrastructure failure.
var ErrInvalidSelection = crerr.New("invalid squad selection")

var (
	ErrInvalidSquadSize       = selectionError("you must select exactly 7 players")
	ErrMissingCaptaincy       = selectionError("you must choose a captain and a vice-captain")
	ErrDuplicateCaptaincy     = selectionError("captain and vice-captain must be different")
	ErrCaptaincyNotInSquad    = selectionError("captain and vice-captain must be selected players")
	ErrDuplicatePlayerInSquad = selectionError("duplicate player in squad")
	ErrExceededTeamLimit      = selectionError("maximum 4 players allowed from a single team")
	ErrExceededRoleLimit      = selectionError("maximum 3 players allowed per role")
	ErrExceededBudget         = selectionError("total cost exceeded")
)

func selectionError(msg string) error {
	return crerr.Mark(crerr.New(msg), ErrInvalidSelection)
}

// Rules stores squad validation parameters.
type Rules struct {
	SquadSize         int
	MaxPlayersPerTeam int
	MaxPlayersPerRole int
	BudgetCap         float64
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:         7,
		MaxPlayersPerTeam: 4,
		MaxPlayersPerRole: 3,
		BudgetCap:         60,
	}
}

// Selection is the raw squad a user submits before catalog lookups.
type Selection struct {
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string

	// set by SelectionFromFlags; zero for designation-style input
	fromFlags    bool
	captainFlags int
	viceFlags    int
}

// FlaggedPick is one entry of a pick list that marks captaincy per player.
type FlaggedPick struct {
	PlayerID      string
	IsCaptain     bool
	IsViceCaptain bool
}

// SelectionFromFlags converts a flagged pick list. More than one captain or
// vice-captain flag is reported by ValidateSelection as ErrDuplicateCaptaincy.
func SelectionFromFlags(picks []FlaggedPick) Selection {
	sel := Selection{PlayerIDs: make([]string, 0, len(picks)), fromFlags: true}
	for _, pick := range picks {
		sel.PlayerIDs = append(sel.PlayerIDs, pick.PlayerID)
		if pick.IsCaptain {
			sel.captainFlags++
			sel.CaptainID = pick.PlayerID
		}
		if pick.IsViceCaptain {
			sel.viceFlags++
			sel.ViceCaptainID = pick.PlayerID
		}
	}
	return sel
}

// Normalize trims identifiers in place.
func (s *Selection) Normalize() {
	for i := range s.PlayerIDs {
		s.PlayerIDs[i] = strings.TrimSpace(s.PlayerIDs[i])
	}
	s.CaptainID = strings.TrimSpace(s.CaptainID)
	s.ViceCaptainID = strings.TrimSpace(s.ViceCaptainID)
}

// ValidateSelection checks the structural rules that need no catalog data:
// squad size, captaincy presence, captaincy distinctness, captaincy
// membership and duplicate players, in that order.
func ValidateSelection(sel Selection, rules Rules) error {
	if len(sel.PlayerIDs) != rules.SquadSize {
		return crerr.Wrapf(ErrInvalidSquadSize, "got %d", len(sel.PlayerIDs))
	}
	if sel.CaptainID == "" || sel.ViceCaptainID == "" {
		return ErrMissingCaptaincy
	}
	if sel.fromFlags && (sel.captainFlags > 1 || sel.viceFlags > 1) {
		return crerr.Wrapf(ErrDuplicateCaptaincy, "%d captains, %d vice-captains flagged", sel.captainFlags, sel.viceFlags)
	}
	if sel.CaptainID == sel.ViceCaptainID {
		return ErrDuplicateCaptaincy
	}

	seen := make(map[string]struct{}, len(sel.PlayerIDs))
	for _, id := range sel.PlayerIDs {
		seen[id] = struct{}{}
	}
	_, hasCaptain := seen[sel.CaptainID]
	_, hasVice := seen[sel.ViceCaptainID]
	if !hasCaptain || !hasVice {
		return ErrCaptaincyNotInSquad
	}
	if len(seen) != len(sel.PlayerIDs) {
		return ErrDuplicatePlayerInSquad
	}

	return nil
}

// ValidatePicks checks the composition rules on resolved picks: per-team
// limit, per-role limit and budget cap. Costs are summed in hundredths.
func ValidatePicks(picks []SquadPick, rules Rules) error {
	teamCounter := make(map[int64]int)
	roleCounter := make(map[player.Role]int)
	for _, pick := range picks {
		teamCounter[pick.TeamID]++
		roleCounter[pick.Role]++
	}

	for teamID, count := range teamCounter {
		if count > rules.MaxPlayersPerTeam {
			return crerr.Wrapf(ErrExceededTeamLimit, "team=%d count=%d", teamID, count)
		}
	}
	for role, count := range roleCounter {
		if count > rules.MaxPlayersPerRole {
			return crerr.Wrapf(ErrExceededRoleLimit, "role=%s count=%d", role, count)
		}
	}

	var totalCents int64
	for _, pick := range picks {
		totalCents += player.ToCents(pick.Cost)
	}
	if totalCents > player.ToCents(rules.BudgetCap) {
		return crerr.Wrapf(ErrExceededBudget, "current cost: %.2f", float64(totalCents)/100)
	}

	return nil
}
