package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	idgen "github.com/riskibarqy/npl-fantasy/internal/platform/id"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/tracing"
)

// SelectPlayersInput is the payload for saving a squad. It carries either
// PlayerIDs with captain and vice-captain designations or a flagged pick
// list, not both.
type SelectPlayersInput struct {
	UserID        string
	MatchID       int64
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	Picks         []fantasy.FlaggedPick
}

func (in SelectPlayersInput) selection() (fantasy.Selection, error) {
	if len(in.Picks) == 0 {
		return fantasy.Selection{
			PlayerIDs:     append([]string(nil), in.PlayerIDs...),
			CaptainID:     in.CaptainID,
			ViceCaptainID: in.ViceCaptainID,
		}, nil
	}
	if len(in.PlayerIDs) > 0 || in.CaptainID != "" || in.ViceCaptainID != "" {
		return fantasy.Selection{}, fmt.Errorf("%w: send either picks or player ids with captaincy, not both", ErrInvalidInput)
	}
	return fantasy.SelectionFromFlags(in.Picks), nil
}

type SquadPlayerView struct {
	Player        player.Player
	Team          team.Team
	Role          player.Role
	Cost          float64
	IsCaptain     bool
	IsViceCaptain bool
}

type SquadView struct {
	Squad     fantasy.Squad
	Players   []SquadPlayerView
	TotalCost float64
}

type PlayerResult struct {
	SquadPlayerView
	IsPlaying   bool
	Stat        playerstats.Stat
	BasePoints  float64
	Multiplier  float64
	FinalPoints float64
}

type SquadResult struct {
	Squad       fantasy.Squad
	Players     []PlayerResult
	TotalPoints float64
	Scored      bool
}

type SquadService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	statsRepo  playerstats.Repository
	squadRepo  fantasy.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	squadRepo fantasy.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		squadRepo:  squadRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSquad registers an empty squad for the user and match. Calling it
// again returns the existing squad.
func (s *SquadService) CreateSquad(ctx context.Context, userID string, matchID int64) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CreateSquad",
		tracing.MatchID(matchID), tracing.UserID(userID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return fantasy.Squad{}, err
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	now := s.now().UTC()
	squad, err := s.squadRepo.Create(ctx, fantasy.Squad{
		ID:        squadID,
		UserID:    userID,
		MatchID:   matchID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("create squad: %w", err)
	}

	return squad, nil
}

// SelectPlayers validates a selection and, when every rule passes, replaces
// the user's picks for the match. Nothing is written on failure.
func (s *SquadService) SelectPlayers(ctx context.Context, input SelectPlayersInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SelectPlayers",
		tracing.MatchID(input.MatchID), tracing.UserID(input.UserID))
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	sel, err := input.selection()
	if err != nil {
		return fantasy.Squad{}, err
	}
	sel.Normalize()
	if err := fantasy.ValidateSelection(sel, s.rules); err != nil {
		return fantasy.Squad{}, fmt.Errorf("validate squad selection: %w", err)
	}

	picks, err := s.resolvePicks(ctx, item, sel)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if err := fantasy.ValidatePicks(picks, s.rules); err != nil {
		return fantasy.Squad{}, fmt.Errorf("validate squad picks: %w", err)
	}

	now := s.now().UTC()
	existing, exists, err := s.squadRepo.GetByUserAndMatch(ctx, input.UserID, item.ID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("get existing squad: %w", err)
	}

	squad := existing
	if !exists {
		squad.ID, err = s.idGen.NewID()
		if err != nil {
			return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
		}
		squad.UserID = input.UserID
		squad.MatchID = item.ID
		squad.CreatedAt = now
	}
	squad.Picks = picks
	squad.UpdatedAt = now

	if err := squad.ValidateBasic(); err != nil {
		return fantasy.Squad{}, fmt.Errorf("validate squad: %w", err)
	}
	if err := s.squadRepo.Upsert(ctx, squad); err != nil {
		return fantasy.Squad{}, fmt.Errorf("upsert squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad saved",
		"user_id", squad.UserID,
		"match_id", squad.MatchID,
		"squad_id", squad.ID,
		"captain_id", sel.CaptainID,
		"vice_captain_id", sel.ViceCaptainID,
	)

	return squad, nil
}

func (s *SquadService) resolvePicks(ctx context.Context, item match.Match, sel fantasy.Selection) ([]fantasy.SquadPick, error) {
	players, err := s.playerRepo.GetByIDs(ctx, sel.PlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	picks := make([]fantasy.SquadPick, 0, len(sel.PlayerIDs))
	for _, id := range sel.PlayerIDs {
		p, ok := playerByID[id]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s not found", ErrInvalidInput, id)
		}
		if !item.HasTeam(p.TeamID) {
			return nil, fmt.Errorf("%w: player=%s is not part of match=%d", ErrInvalidInput, id, item.ID)
		}
		picks = append(picks, fantasy.SquadPick{
			PlayerID:      p.ID,
			TeamID:        p.TeamID,
			Role:          p.Role,
			Cost:          p.Cost,
			IsCaptain:     p.ID == sel.CaptainID,
			IsViceCaptain: p.ID == sel.ViceCaptainID,
		})
	}

	return picks, nil
}

// GetUserSquad returns the user's picks ordered captain, vice-captain, then
// by player name.
func (s *SquadService) GetUserSquad(ctx context.Context, userID string, matchID int64) (SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetUserSquad")
	defer span.End()

	squad, err := s.getSquad(ctx, userID, matchID)
	if err != nil {
		return SquadView{}, err
	}

	players, err := s.describePicks(ctx, squad)
	if err != nil {
		return SquadView{}, err
	}

	return SquadView{
		Squad:     squad,
		Players:   players,
		TotalCost: float64(squad.TotalCostCents()) / 100,
	}, nil
}

// GetUserResult breaks the squad score down per player using the latest
// roster and stats of the match.
func (s *SquadService) GetUserResult(ctx context.Context, userID string, matchID int64) (SquadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetUserResult")
	defer span.End()

	squad, err := s.getSquad(ctx, userID, matchID)
	if err != nil {
		return SquadResult{}, err
	}

	players, err := s.describePicks(ctx, squad)
	if err != nil {
		return SquadResult{}, err
	}

	points, err := loadMatchPoints(ctx, s.rosterRepo, s.statsRepo, matchID)
	if err != nil {
		return SquadResult{}, err
	}

	results := make([]PlayerResult, 0, len(players))
	for _, view := range players {
		row := PlayerResult{
			SquadPlayerView: view,
			Multiplier:      scoring.Multiplier(fantasy.SquadPick{IsCaptain: view.IsCaptain, IsViceCaptain: view.IsViceCaptain}),
		}
		if _, ok := points.playing[view.Player.ID]; ok {
			row.IsPlaying = true
			row.Stat = points.stats[view.Player.ID]
			row.BasePoints = points.base[view.Player.ID]
			row.FinalPoints = scoring.Round2(row.BasePoints * row.Multiplier)
		}
		results = append(results, row)
	}

	return SquadResult{
		Squad:       squad,
		Players:     results,
		TotalPoints: scoring.SquadTotal(squad.Picks, points.base),
		Scored:      squad.TotalPoints != nil,
	}, nil
}

func (s *SquadService) getSquad(ctx context.Context, userID string, matchID int64) (fantasy.Squad, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return fantasy.Squad{}, err
	}

	squad, exists, err := s.squadRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("get squad: %w", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad for user=%s match=%d", ErrNotFound, userID, matchID)
	}

	return squad, nil
}

func (s *SquadService) describePicks(ctx context.Context, squad fantasy.Squad) ([]SquadPlayerView, error) {
	if len(squad.Picks) == 0 {
		return []SquadPlayerView{}, nil
	}

	ids := make([]string, 0, len(squad.Picks))
	for _, pick := range squad.Picks {
		ids = append(ids, pick.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamByID := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	out := make([]SquadPlayerView, 0, len(squad.Picks))
	for _, pick := range squad.Picks {
		p, ok := playerByID[pick.PlayerID]
		if !ok {
			p = player.Player{ID: pick.PlayerID, TeamID: pick.TeamID, Role: pick.Role, Cost: pick.Cost}
		}
		out = append(out, SquadPlayerView{
			Player:        p,
			Team:          teamByID[pick.TeamID],
			Role:          pick.Role,
			Cost:          pick.Cost,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCaptain != out[j].IsCaptain {
			return out[i].IsCaptain
		}
		if out[i].IsViceCaptain != out[j].IsViceCaptain {
			return out[i].IsViceCaptain
		}
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

// IsSelectionError reports whether err is a rejected squad rather than an
// infrastructure failure.
func IsSelectionError(err error) bool {
	return crerr.Is(err, fantasy.ErrInvalidSelection)
}
