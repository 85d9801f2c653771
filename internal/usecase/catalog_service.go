package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

type TeamInput struct {
	Name string
	Code string
}

type PlayerInput struct {
	ID     string
	Name   string
	Role   string
	Cost   float64
	TeamID int64
}

type MatchInput struct {
	Date    time.Time
	Team1ID int64
	Team2ID int64
}

// MatchView is a match with both sides resolved and its status as of now.
type MatchView struct {
	Match  match.Match
	Team1  team.Team
	Team2  team.Team
	Status match.Status
}

// CatalogService manages teams, players and matches. Deleting a match drops
// its squads, so the overall leaderboard of their owners is re-summed after.
type CatalogService struct {
	teamRepo        team.Repository
	playerRepo      player.Repository
	matchRepo       match.Repository
	rosterRepo      roster.Repository
	squadRepo       fantasy.Repository
	leaderboardRepo leaderboard.Repository
	logger          *logging.Logger
	now             func() time.Time
}

func NewCatalogService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	squadRepo fantasy.Repository,
	leaderboardRepo leaderboard.Repository,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		matchRepo:       matchRepo,
		rosterRepo:      rosterRepo,
		squadRepo:       squadRepo,
		leaderboardRepo: leaderboardRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	return getTeam(ctx, s.teamRepo, teamID)
}

func (s *CatalogService) CreateTeam(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CreateTeam")
	defer span.End()

	item := team.Team{
		Name: strings.TrimSpace(input.Name),
		Code: strings.ToUpper(strings.TrimSpace(input.Code)),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, team.ErrDuplicateCode) {
			return team.Team{}, fmt.Errorf("%w: team code %s", ErrConflict, item.Code)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "code", created.Code)
	return created, nil
}

func (s *CatalogService) UpdateTeam(ctx context.Context, teamID int64, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdateTeam")
	defer span.End()

	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return team.Team{}, err
	}

	item := team.Team{
		ID:   teamID,
		Name: strings.TrimSpace(input.Name),
		Code: strings.ToUpper(strings.TrimSpace(input.Code)),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		if errors.Is(err, team.ErrDuplicateCode) {
			return team.Team{}, fmt.Errorf("%w: team code %s", ErrConflict, item.Code)
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return item, nil
}

// DeleteTeam removes the team together with its players and matches.
func (s *CatalogService) DeleteTeam(ctx context.Context, teamID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DeleteTeam")
	defer span.End()

	if _, err := getTeam(ctx, s.teamRepo, teamID); err != nil {
		return err
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	matchIDs := make([]int64, 0, len(matches))
	for _, item := range matches {
		if item.HasTeam(teamID) {
			matchIDs = append(matchIDs, item.ID)
		}
	}
	userIDs, err := s.squadOwners(ctx, matchIDs...)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if err := s.leaderboardRepo.RefreshOverall(ctx, userIDs); err != nil {
		return fmt.Errorf("refresh overall leaderboard: %w", err)
	}

	s.logger.WarnContext(ctx, "team deleted with its players and matches",
		"team_id", teamID,
		"matches", len(matchIDs),
		"users", len(userIDs),
	)
	return nil
}

func (s *CatalogService) ListPlayers(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	filter.Name = strings.TrimSpace(filter.Name)
	if filter.MaxCost < 0 {
		return nil, fmt.Errorf("%w: max cost cannot be negative", ErrInvalidInput)
	}
	if filter.Role != "" {
		role, ok := player.ParseRole(string(filter.Role))
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %s", ErrInvalidInput, filter.Role)
		}
		filter.Role = role
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *CatalogService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *CatalogService) CreatePlayer(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CreatePlayer")
	defer span.End()

	item, err := s.buildPlayer(ctx, input)
	if err != nil {
		return player.Player{}, err
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		if errors.Is(err, player.ErrDuplicateID) {
			return player.Player{}, fmt.Errorf("%w: player id %s", ErrConflict, item.ID)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", item.ID, "team_id", item.TeamID)
	return item, nil
}

func (s *CatalogService) UpdatePlayer(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdatePlayer")
	defer span.End()

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return player.Player{}, err
	}

	input.ID = playerID
	item, err := s.buildPlayer(ctx, input)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return item, nil
}

func (s *CatalogService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DeletePlayer")
	defer span.End()

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, strings.TrimSpace(playerID)); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

func (s *CatalogService) buildPlayer(ctx context.Context, input PlayerInput) (player.Player, error) {
	role, ok := player.ParseRole(input.Role)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	item := player.Player{
		ID:     strings.TrimSpace(input.ID),
		Name:   strings.TrimSpace(input.Name),
		Role:   role,
		Cost:   input.Cost,
		TeamID: input.TeamID,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%d does not exist", ErrInvalidInput, item.TeamID)
	}

	return item, nil
}

// ListMatches returns every match ordered by date, most recent first.
func (s *CatalogService) ListMatches(ctx context.Context) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teamByID := make(map[int64]team.Team, len(teams))
	for _, item := range teams {
		teamByID[item.ID] = item
	}

	now := s.now()
	out := make([]MatchView, 0, len(matches))
	for _, item := range matches {
		out = append(out, MatchView{
			Match:  item,
			Team1:  teamByID[item.Team1ID],
			Team2:  teamByID[item.Team2ID],
			Status: item.Status(now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Match.Date.Equal(out[j].Match.Date) {
			return out[i].Match.Date.After(out[j].Match.Date)
		}
		return out[i].Match.ID > out[j].Match.ID
	})

	return out, nil
}

func (s *CatalogService) GetMatch(ctx context.Context, matchID int64) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetMatch")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return MatchView{}, err
	}

	team1, err := getTeam(ctx, s.teamRepo, item.Team1ID)
	if err != nil {
		return MatchView{}, err
	}
	team2, err := getTeam(ctx, s.teamRepo, item.Team2ID)
	if err != nil {
		return MatchView{}, err
	}

	return MatchView{
		Match:  item,
		Team1:  team1,
		Team2:  team2,
		Status: item.Status(s.now()),
	}, nil
}

func (s *CatalogService) CreateMatch(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CreateMatch")
	defer span.End()

	item := match.Match{
		Date:    match.DateOnly(input.Date),
		Team1ID: input.Team1ID,
		Team2ID: input.Team2ID,
	}
	if err := s.validateMatch(ctx, item); err != nil {
		return match.Match{}, err
	}

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"team_1", created.Team1ID,
		"team_2", created.Team2ID,
	)
	return created, nil
}

// UpdateMatch edits a match in place. Changing either side empties the
// roster because fielded players must belong to the match's teams.
func (s *CatalogService) UpdateMatch(ctx context.Context, matchID int64, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdateMatch")
	defer span.End()

	current, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}

	item := match.Match{
		ID:      matchID,
		Date:    match.DateOnly(input.Date),
		Team1ID: input.Team1ID,
		Team2ID: input.Team2ID,
	}
	if err := s.validateMatch(ctx, item); err != nil {
		return match.Match{}, err
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	if !sameSides(current, item) {
		if err := s.rosterRepo.ReplaceByMatch(ctx, matchID, nil); err != nil {
			return match.Match{}, fmt.Errorf("clear roster: %w", err)
		}
		s.logger.WarnContext(ctx, "match sides changed, roster cleared", "match_id", matchID)
	}

	return item, nil
}

func (s *CatalogService) DeleteMatch(ctx context.Context, matchID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DeleteMatch")
	defer span.End()

	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return err
	}
	userIDs, err := s.squadOwners(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if err := s.leaderboardRepo.RefreshOverall(ctx, userIDs); err != nil {
		return fmt.Errorf("refresh overall leaderboard: %w", err)
	}

	return nil
}

// squadOwners lists the distinct users holding a squad in any of the matches.
func (s *CatalogService) squadOwners(ctx context.Context, matchIDs ...int64) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, matchID := range matchIDs {
		squads, err := s.squadRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("list squads match=%d: %w", matchID, err)
		}
		for _, squad := range squads {
			if _, ok := seen[squad.UserID]; ok {
				continue
			}
			seen[squad.UserID] = struct{}{}
			out = append(out, squad.UserID)
		}
	}
	return out, nil
}

// ListMatchPlayers returns the selection pool of a match, which is every
// player of both sides regardless of who is fielded.
func (s *CatalogService) ListMatchPlayers(ctx context.Context, matchID int64) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListMatchPlayers")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeams(ctx, item.TeamIDs())
	if err != nil {
		return nil, fmt.Errorf("list match players: %w", err)
	}

	return players, nil
}

func (s *CatalogService) validateMatch(ctx context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, teamID := range item.TeamIDs() {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%d does not exist", ErrInvalidInput, teamID)
		}
	}

	return nil
}

func sameSides(a, b match.Match) bool {
	return (a.Team1ID == b.Team1ID && a.Team2ID == b.Team2ID) ||
		(a.Team1ID == b.Team2ID && a.Team2ID == b.Team1ID)
}

func getTeam(ctx context.Context, repo team.Repository, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return item, nil
}

func getMatch(ctx context.Context, repo match.Repository, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	return item, nil
}
