package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

const matchDateLayout = "2006-01-02"

type teamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,max=10"`
}

type createPlayerRequest struct {
	ID     string  `json:"id" validate:"required,max=64"`
	Name   string  `json:"name" validate:"required,max=100"`
	Role   string  `json:"role" validate:"required"`
	Cost   float64 `json:"cost" validate:"gte=0"`
	TeamID int64   `json:"team_id" validate:"required,gt=0"`
}

type updatePlayerRequest struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Role   string  `json:"role" validate:"required"`
	Cost   float64 `json:"cost" validate:"gte=0"`
	TeamID int64   `json:"team_id" validate:"required,gt=0"`
}

type matchRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Team1ID int64  `json:"team1_id" validate:"required,gt=0"`
	Team2ID int64  `json:"team2_id" validate:"required,gt=0"`
}

type replaceRosterRequest struct {
	PlayingPlayerIDs []string `json:"playing_player_ids" validate:"dive,required"`
}

type saveStatsRequest struct {
	Stats []playerStatRecord `json:"stats" validate:"required,min=1,dive"`
}

type playerStatRecord struct {
	PlayerID string  `json:"player_id" validate:"required"`
	Runs     int     `json:"runs" validate:"gte=0"`
	RunRate  float64 `json:"run_rate" validate:"gte=0"`
	Economy  float64 `json:"economy"`
	Wickets  int     `json:"wickets" validate:"gte=0"`
	Sixes    int     `json:"sixes" validate:"gte=0"`
	Fours    int     `json:"fours" validate:"gte=0"`
	Catches  int     `json:"catches" validate:"gte=0"`
}

// selectPlayersRequest leaves size and captaincy checks to the domain rules
// so clients get the specific rejection reason. Picks is the flagged form.
type selectPlayersRequest struct {
	PlayerIDs     []string      `json:"player_ids,omitempty"`
	CaptainID     string        `json:"captain_id,omitempty"`
	ViceCaptainID string        `json:"vice_captain_id,omitempty"`
	Picks         []pickRequest `json:"picks,omitempty"`
}

type pickRequest struct {
	PlayerID      string `json:"player_id"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

type rescoreRequest struct {
	MatchIDs []int64 `json:"match_ids" validate:"omitempty,dive,gt=0"`
}

type scheduleScoreRequest struct {
	DelaySeconds int64 `json:"delay_seconds" validate:"gte=0,lte=604800"`
}

type scoreMatchJobRequest struct {
	MatchID int64 `json:"match_id" validate:"required,gt=0"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type playerDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Cost   float64 `json:"cost"`
	TeamID int64   `json:"team_id"`
}

type matchDTO struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Team1  teamDTO `json:"team1"`
	Team2  teamDTO `json:"team2"`
	Status string  `json:"status"`
}

type rosterEntryDTO struct {
	Player    playerDTO `json:"player"`
	IsPlaying bool      `json:"is_playing"`
}

type playerStatDTO struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TeamID     int64   `json:"team_id"`
	Runs       int     `json:"runs"`
	RunRate    float64 `json:"run_rate"`
	Economy    float64 `json:"economy"`
	Wickets    int     `json:"wickets"`
	Sixes      int     `json:"sixes"`
	Fours      int     `json:"fours"`
	Catches    int     `json:"catches"`
}

type squadDTO struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	MatchID       int64          `json:"match_id"`
	CaptainID     string         `json:"captain_id,omitempty"`
	ViceCaptainID string         `json:"vice_captain_id,omitempty"`
	TotalPoints   *float64       `json:"total_points"`
	Picks         []squadPickDTO `json:"picks"`
	CreatedAtUTC  string         `json:"created_at_utc"`
	UpdatedAtUTC  string         `json:"updated_at_utc"`
}

type squadPickDTO struct {
	PlayerID      string  `json:"player_id"`
	TeamID        int64   `json:"team_id"`
	Role          string  `json:"role"`
	Cost          float64 `json:"cost"`
	IsCaptain     bool    `json:"is_captain"`
	IsViceCaptain bool    `json:"is_vice_captain"`
}

type squadPlayerDTO struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	TeamID        int64   `json:"team_id"`
	TeamName      string  `json:"team_name"`
	TeamCode      string  `json:"team_code"`
	Role          string  `json:"role"`
	Cost          float64 `json:"cost"`
	IsCaptain     bool    `json:"is_captain"`
	IsViceCaptain bool    `json:"is_vice_captain"`
}

type squadViewDTO struct {
	SquadID     string           `json:"squad_id"`
	UserID      string           `json:"user_id"`
	MatchID     int64            `json:"match_id"`
	TotalCost   float64          `json:"total_cost"`
	TotalPoints *float64         `json:"total_points"`
	Players     []squadPlayerDTO `json:"players"`
}

type playerResultDTO struct {
	squadPlayerDTO
	IsPlaying   bool    `json:"is_playing"`
	Runs        int     `json:"runs"`
	RunRate     float64 `json:"run_rate"`
	Economy     float64 `json:"economy"`
	Wickets     int     `json:"wickets"`
	Sixes       int     `json:"sixes"`
	Fours       int     `json:"fours"`
	Catches     int     `json:"catches"`
	BasePoints  float64 `json:"base_points"`
	Multiplier  float64 `json:"multiplier"`
	FinalPoints float64 `json:"final_points"`
}

type squadResultDTO struct {
	SquadID     string            `json:"squad_id"`
	UserID      string            `json:"user_id"`
	MatchID     int64             `json:"match_id"`
	TotalPoints float64           `json:"total_points"`
	Scored      bool              `json:"scored"`
	Players     []playerResultDTO `json:"players"`
}

type leaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"user_id"`
	MatchID      *int64  `json:"match_id,omitempty"`
	TotalPoints  float64 `json:"total_points"`
	UpdatedAtUTC string  `json:"updated_at_utc"`
}

func teamToDTO(_ context.Context, v team.Team) teamDTO {
	return teamDTO{
		ID:   v.ID,
		Name: v.Name,
		Code: v.Code,
	}
}

func playerToDTO(_ context.Context, v player.Player) playerDTO {
	return playerDTO{
		ID:     v.ID,
		Name:   v.Name,
		Role:   string(v.Role),
		Cost:   v.Cost,
		TeamID: v.TeamID,
	}
}

func playersToDTO(ctx context.Context, items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(ctx, item))
	}
	return out
}

func matchToDTO(ctx context.Context, v usecase.MatchView) matchDTO {
	return matchDTO{
		ID:     v.Match.ID,
		Date:   v.Match.Date.Format(matchDateLayout),
		Team1:  teamToDTO(ctx, v.Team1),
		Team2:  teamToDTO(ctx, v.Team2),
		Status: string(v.Status),
	}
}

func playerStatToDTO(_ context.Context, v usecase.PlayerStatView) playerStatDTO {
	return playerStatDTO{
		PlayerID:   v.Player.ID,
		PlayerName: v.Player.Name,
		TeamID:     v.Player.TeamID,
		Runs:       v.Stat.Runs,
		RunRate:    v.Stat.RunRate,
		Economy:    v.Stat.Economy,
		Wickets:    v.Stat.Wickets,
		Sixes:      v.Stat.Sixes,
		Fours:      v.Stat.Fours,
		Catches:    v.Stat.Catches,
	}
}

func statRecordToDomain(v playerStatRecord) playerstats.Stat {
	return playerstats.Stat{
		PlayerID: v.PlayerID,
		Runs:     v.Runs,
		RunRate:  v.RunRate,
		Economy:  v.Economy,
		Wickets:  v.Wickets,
		Sixes:    v.Sixes,
		Fours:    v.Fours,
		Catches:  v.Catches,
	}
}

func squadToDTO(_ context.Context, v fantasy.Squad) squadDTO {
	picks := make([]squadPickDTO, 0, len(v.Picks))
	for _, pick := range v.Picks {
		picks = append(picks, squadPickDTO{
			PlayerID:      pick.PlayerID,
			TeamID:        pick.TeamID,
			Role:          string(pick.Role),
			Cost:          pick.Cost,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	out := squadDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		MatchID:      v.MatchID,
		TotalPoints:  v.TotalPoints,
		Picks:        picks,
		CreatedAtUTC: formatTime(v.CreatedAt),
		UpdatedAtUTC: formatTime(v.UpdatedAt),
	}
	if captain, ok := v.Captain(); ok {
		out.CaptainID = captain.PlayerID
	}
	if vice, ok := v.ViceCaptain(); ok {
		out.ViceCaptainID = vice.PlayerID
	}
	return out
}

func squadPlayerToDTO(_ context.Context, v usecase.SquadPlayerView) squadPlayerDTO {
	return squadPlayerDTO{
		PlayerID:      v.Player.ID,
		Name:          v.Player.Name,
		TeamID:        v.Team.ID,
		TeamName:      v.Team.Name,
		TeamCode:      v.Team.Code,
		Role:          string(v.Role),
		Cost:          v.Cost,
		IsCaptain:     v.IsCaptain,
		IsViceCaptain: v.IsViceCaptain,
	}
}

func squadViewToDTO(ctx context.Context, v usecase.SquadView) squadViewDTO {
	players := make([]squadPlayerDTO, 0, len(v.Players))
	for _, item := range v.Players {
		players = append(players, squadPlayerToDTO(ctx, item))
	}

	return squadViewDTO{
		SquadID:     v.Squad.ID,
		UserID:      v.Squad.UserID,
		MatchID:     v.Squad.MatchID,
		TotalCost:   v.TotalCost,
		TotalPoints: v.Squad.TotalPoints,
		Players:     players,
	}
}

func squadResultToDTO(ctx context.Context, v usecase.SquadResult) squadResultDTO {
	players := make([]playerResultDTO, 0, len(v.Players))
	for _, item := range v.Players {
		players = append(players, playerResultDTO{
			squadPlayerDTO: squadPlayerToDTO(ctx, item.SquadPlayerView),
			IsPlaying:      item.IsPlaying,
			Runs:           item.Stat.Runs,
			RunRate:        item.Stat.RunRate,
			Economy:        item.Stat.Economy,
			Wickets:        item.Stat.Wickets,
			Sixes:          item.Stat.Sixes,
			Fours:          item.Stat.Fours,
			Catches:        item.Stat.Catches,
			BasePoints:     item.BasePoints,
			Multiplier:     item.Multiplier,
			FinalPoints:    item.FinalPoints,
		})
	}

	return squadResultDTO{
		SquadID:     v.Squad.ID,
		UserID:      v.Squad.UserID,
		MatchID:     v.Squad.MatchID,
		TotalPoints: v.TotalPoints,
		Scored:      v.Scored,
		Players:     players,
	}
}

func leaderboardToDTO(_ context.Context, items []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leaderboardEntryDTO{
			Rank:         item.Rank,
			UserID:       item.UserID,
			MatchID:      item.MatchID,
			TotalPoints:  item.TotalPoints,
			UpdatedAtUTC: formatTime(item.UpdatedAt),
		})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
