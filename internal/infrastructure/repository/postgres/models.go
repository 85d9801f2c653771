package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Cost      float64   `db:"cost"`
	TeamID    int64     `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	Role   string  `db:"role"`
	Cost   float64 `db:"cost"`
	TeamID int64   `db:"team_id"`
}

type matchTableModel struct {
	ID        int64     `db:"id"`
	MatchDate time.Time `db:"match_date"`
	Team1     int64     `db:"team_1"`
	Team2     int64     `db:"team_2"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rosterTableModel struct {
	MatchID   int64  `db:"match_id"`
	PlayerID  string `db:"player_id"`
	IsPlaying bool   `db:"is_playing"`
}

type playerStatTableModel struct {
	MatchID  int64   `db:"match_id"`
	PlayerID string  `db:"player_id"`
	Runs     int     `db:"runs"`
	RunRate  float64 `db:"run_rate"`
	Economy  float64 `db:"economy"`
	Wickets  int     `db:"wickets"`
	Sixes    int     `db:"sixes"`
	Fours    int     `db:"fours"`
	Catches  int     `db:"catches"`
}

type squadTableModel struct {
	Seq         int64           `db:"seq"`
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	MatchID     int64           `db:"match_id"`
	TotalPoints sql.NullFloat64 `db:"total_points"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type squadPickTableModel struct {
	SquadID       string  `db:"squad_id"`
	PlayerID      string  `db:"player_id"`
	TeamID        int64   `db:"team_id"`
	Role          string  `db:"role"`
	Cost          float64 `db:"cost"`
	IsCaptain     bool    `db:"is_captain"`
	IsViceCaptain bool    `db:"is_vice_captain"`
}

type leaderboardTableModel struct {
	ID          int64         `db:"id"`
	UserID      string        `db:"user_id"`
	MatchID     sql.NullInt64 `db:"match_id"`
	TotalPoints float64       `db:"total_points"`
	Rank        int           `db:"rank"`
	UpdatedAt   time.Time     `db:"updated_at"`
}
