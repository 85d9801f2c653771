package match

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
)

// Match is a scheduled fixture between two teams.
type Match struct {
	ID      int64
	Date    time.Time
	Team1ID int64
	Team2ID int64
}

// Status reports Upcoming while the match day has not passed yet.
func (m Match) Status(now time.Time) Status {
	if !DateOnly(m.Date).Before(DateOnly(now)) {
		return StatusUpcoming
	}
	return StatusCompleted
}

func (m Match) TeamIDs() []int64 {
	return []int64{m.Team1ID, m.Team2ID}
}

func (m Match) HasTeam(teamID int64) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

func (m Match) Validate() error {
	if m.Date.IsZero() {
		return crerr.New("match date is required")
	}
	if m.Team1ID <= 0 || m.Team2ID <= 0 {
		return crerr.New("both match teams are required")
	}
	if m.Team1ID == m.Team2ID {
		return crerr.New("a team cannot play itself")
	}

	return nil
}

func DateOnly(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
