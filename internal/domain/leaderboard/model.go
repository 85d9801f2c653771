package leaderboard

import (
	"sort"
	"time"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Entry is one ranked row of either the matchday table of a match or the
// overall table, which has no match.
type Entry struct {
	ID          int64
	UserID      string
	MatchID     *int64
	TotalPoints float64
	Rank        int
	UpdatedAt   time.Time
}

func (e Entry) IsOverall() bool {
	return e.MatchID == nil
}

// Standing is the total a refresh writes for one user.
type Standing struct {
	UserID      string
	TotalPoints float64
}

type Page struct {
	Limit  int
	Offset int
}

// AssignRanks orders entries by total descending and numbers them 1..n.
// Equal totals keep their insertion order (lower ID first) and still get
// distinct ranks.
func AssignRanks(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].ID < entries[j].ID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
