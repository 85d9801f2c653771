package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

type PlayerStatView struct {
	Player player.Player
	Stat   playerstats.Stat
}

// PlayerStatsService records scorecards of fielded players.
type PlayerStatsService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	statsRepo  playerstats.Repository
	logger     *logging.Logger
}

func NewPlayerStatsService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	logger *logging.Logger,
) *PlayerStatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerStatsService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// ListMatchStats returns one row per fielded player. Players without a
// recorded scorecard get zero values.
func (s *PlayerStatsService) ListMatchStats(ctx context.Context, matchID int64) ([]PlayerStatView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ListMatchStats")
	defer span.End()

	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return nil, err
	}

	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	playing := roster.PlayingSet(entries)
	if len(playing) == 0 {
		return []PlayerStatView{}, nil
	}

	ids := make([]string, 0, len(playing))
	for id := range playing {
		ids = append(ids, id)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	stats, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}
	statByPlayer := make(map[string]playerstats.Stat, len(stats))
	for _, stat := range stats {
		statByPlayer[stat.PlayerID] = stat
	}

	out := make([]PlayerStatView, 0, len(players))
	for _, p := range players {
		stat, ok := statByPlayer[p.ID]
		if !ok {
			stat = playerstats.Stat{MatchID: matchID, PlayerID: p.ID}
		}
		out = append(out, PlayerStatView{Player: p, Stat: stat})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Player.TeamID != out[j].Player.TeamID {
			return out[i].Player.TeamID < out[j].Player.TeamID
		}
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

// SaveMatchStats upserts scorecards. Every row must belong to a fielded
// player of the match.
func (s *PlayerStatsService) SaveMatchStats(ctx context.Context, matchID int64, stats []playerstats.Stat) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.SaveMatchStats")
	defer span.End()

	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("%w: stats are required", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	playing := roster.PlayingSet(entries)

	seen := make(map[string]struct{}, len(stats))
	cleaned := make([]playerstats.Stat, 0, len(stats))
	for _, stat := range stats {
		stat.MatchID = matchID
		stat.PlayerID = strings.TrimSpace(stat.PlayerID)
		if err := stat.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := playing[stat.PlayerID]; !ok {
			return fmt.Errorf("%w: player=%s is not playing in match=%d", ErrInvalidInput, stat.PlayerID, matchID)
		}
		if _, dup := seen[stat.PlayerID]; dup {
			return fmt.Errorf("%w: duplicate stats for player=%s", ErrInvalidInput, stat.PlayerID)
		}
		seen[stat.PlayerID] = struct{}{}
		cleaned = append(cleaned, stat)
	}

	if err := s.statsRepo.UpsertMany(ctx, matchID, cleaned); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}

	s.logger.InfoContext(ctx, "player stats saved", "match_id", matchID, "count", len(cleaned))
	return nil
}
