package player

import (
	"math"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrDuplicateID = crerr.New("player id already exists")

// Role is the cricket discipline a player is picked for.
type Role string

const (
	RoleBatter       Role = "BAT"
	RoleBowler       Role = "BOWL"
	RoleAllRounder   Role = "AR"
	RoleWicketkeeper Role = "WK"
)

var AllRoles = map[Role]struct{}{
	RoleBatter:       {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketkeeper: {},
}

func ParseRole(v string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(v)))
	_, ok := AllRoles[role]
	return role, ok
}

// Player is a selectable cricketer owned by exactly one team.
type Player struct {
	ID     string
	Name   string
	Role   Role
	Cost   float64
	TeamID int64
}

// CostCents returns the cost in hundredths so budgets can be summed exactly.
func (p Player) CostCents() int64 {
	return ToCents(p.Cost)
}

func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return crerr.New("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return crerr.New("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return crerr.Newf("invalid player role: %s", p.Role)
	}
	if math.IsNaN(p.Cost) || math.IsInf(p.Cost, 0) || p.CostCents() <= 0 {
		return crerr.New("player cost must be greater than zero")
	}
	if p.TeamID <= 0 {
		return crerr.New("player team id is required")
	}

	return nil
}

// Filter narrows a player listing. Zero values disable a condition.
type Filter struct {
	Name    string
	Role    Role
	TeamID  int64
	MaxCost float64
}

func (f Filter) Match(p Player) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Role != "" && p.Role != f.Role {
		return false
	}
	if f.TeamID > 0 && p.TeamID != f.TeamID {
		return false
	}
	if f.MaxCost > 0 && p.CostCents() > ToCents(f.MaxCost) {
		return false
	}
	return true
}
