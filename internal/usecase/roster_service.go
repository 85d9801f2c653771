package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

// RosterEntryView is one player of either side with their fielded flag.
type RosterEntryView struct {
	Player    player.Player
	IsPlaying bool
}

// RosterService decides which players of a match are fielded and therefore
// eligible to score.
type RosterService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	logger     *logging.Logger
}

func NewRosterService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		logger:     logger,
	}
}

func (s *RosterService) GetRoster(ctx context.Context, matchID int64) ([]RosterEntryView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}

	pool, err := s.playerRepo.ListByTeams(ctx, item.TeamIDs())
	if err != nil {
		return nil, fmt.Errorf("list match players: %w", err)
	}
	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	playing := roster.PlayingSet(entries)

	out := make([]RosterEntryView, 0, len(pool))
	for _, p := range pool {
		_, isPlaying := playing[p.ID]
		out = append(out, RosterEntryView{Player: p, IsPlaying: isPlaying})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Player.TeamID != out[j].Player.TeamID {
			return out[i].Player.TeamID < out[j].Player.TeamID
		}
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

// ReplaceRoster rewrites the roster of a match: every player of both sides
// gets an entry, flagged as playing when listed in playingIDs.
func (s *RosterService) ReplaceRoster(ctx context.Context, matchID int64, playingIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ReplaceRoster")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return err
	}

	pool, err := s.playerRepo.ListByTeams(ctx, item.TeamIDs())
	if err != nil {
		return fmt.Errorf("list match players: %w", err)
	}
	inPool := make(map[string]struct{}, len(pool))
	for _, p := range pool {
		inPool[p.ID] = struct{}{}
	}

	selected := make(map[string]struct{}, len(playingIDs))
	for _, id := range playingIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := inPool[id]; !ok {
			return fmt.Errorf("%w: player=%s does not belong to match=%d", ErrInvalidInput, id, matchID)
		}
		selected[id] = struct{}{}
	}

	entries := make([]roster.Entry, 0, len(pool))
	for _, p := range pool {
		_, isPlaying := selected[p.ID]
		entries = append(entries, roster.Entry{
			MatchID:   matchID,
			PlayerID:  p.ID,
			IsPlaying: isPlaying,
		})
	}

	if err := s.rosterRepo.ReplaceByMatch(ctx, matchID, entries); err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}

	s.logger.InfoContext(ctx, "roster replaced",
		"match_id", matchID,
		"pool_size", len(entries),
		"playing", len(selected),
	)
	return nil
}
