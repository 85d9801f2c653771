package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/tracing"
)

const (
	defaultScoringWorkers          = 8
	defaultScoringMatchConcurrency = 4
)

type ScoringConfig struct {
	// Workers bounds the per-squad computation inside one match.
	Workers int
	// MatchConcurrency bounds how many matches a rescore runs at once.
	MatchConcurrency int
}

type SquadScore struct {
	SquadID     string  `json:"squad_id"`
	UserID      string  `json:"user_id"`
	TotalPoints float64 `json:"total_points"`
}

type ScoreReport struct {
	MatchID       int64        `json:"match_id"`
	PlayingCount  int          `json:"playing_count"`
	SquadCount    int          `json:"squad_count"`
	UserCount     int          `json:"user_count"`
	Squads        []SquadScore `json:"squads"`
	DurationMs    int64        `json:"duration_ms"`
	WorkerCount   int          `json:"worker_count"`
	ScoredAt      time.Time    `json:"scored_at"`
	OverallLeader string       `json:"overall_leader,omitempty"`
}

// ScoringService turns match scorecards into squad totals and refreshes both
// leaderboards.
type ScoringService struct {
	matchRepo       match.Repository
	rosterRepo      roster.Repository
	statsRepo       playerstats.Repository
	squadRepo       fantasy.Repository
	leaderboardRepo leaderboard.Repository
	cfg             ScoringConfig
	logger          *logging.Logger
	now             func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	squadRepo fantasy.Repository,
	leaderboardRepo leaderboard.Repository,
	cfg ScoringConfig,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultScoringWorkers
	}
	if cfg.MatchConcurrency <= 0 {
		cfg.MatchConcurrency = defaultScoringMatchConcurrency
	}

	return &ScoringService{
		matchRepo:       matchRepo,
		rosterRepo:      rosterRepo,
		statsRepo:       statsRepo,
		squadRepo:       squadRepo,
		leaderboardRepo: leaderboardRepo,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// ScoreMatch recomputes every squad total of the match from the latest
// scorecards, stores them, re-sums each affected user's overall total and
// re-ranks the matchday and overall leaderboards. Running it twice yields
// the same state as running it once.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID int64) (ScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch", tracing.MatchID(matchID))
	defer span.End()

	start := s.now()
	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return ScoreReport{}, err
	}

	points, err := loadMatchPoints(ctx, s.rosterRepo, s.statsRepo, matchID)
	if err != nil {
		return ScoreReport{}, err
	}

	squads, err := s.squadRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return ScoreReport{}, fmt.Errorf("list squads: %w", err)
	}
	span.SetAttributes(tracing.SquadCount(len(squads)))

	totals, workerCount, err := s.computeTotals(squads, points.base)
	if err != nil {
		return ScoreReport{}, err
	}

	totalBySquadID := make(map[string]float64, len(squads))
	report := ScoreReport{
		MatchID:      matchID,
		PlayingCount: len(points.playing),
		SquadCount:   len(squads),
		Squads:       make([]SquadScore, 0, len(squads)),
		WorkerCount:  workerCount,
	}
	matchday := make([]leaderboard.Standing, 0, len(squads))
	userIDs := make([]string, 0, len(squads))
	seenUser := make(map[string]struct{}, len(squads))
	for i, squad := range squads {
		totalBySquadID[squad.ID] = totals[i]
		report.Squads = append(report.Squads, SquadScore{
			SquadID:     squad.ID,
			UserID:      squad.UserID,
			TotalPoints: totals[i],
		})
		matchday = append(matchday, leaderboard.Standing{UserID: squad.UserID, TotalPoints: totals[i]})
		if _, ok := seenUser[squad.UserID]; !ok {
			seenUser[squad.UserID] = struct{}{}
			userIDs = append(userIDs, squad.UserID)
		}
	}
	report.UserCount = len(userIDs)

	if err := s.squadRepo.SaveTotalPoints(ctx, matchID, totalBySquadID); err != nil {
		return ScoreReport{}, fmt.Errorf("save squad totals: %w", err)
	}

	if err := s.leaderboardRepo.RefreshMatchday(ctx, matchID, matchday); err != nil {
		return ScoreReport{}, fmt.Errorf("refresh matchday leaderboard: %w", err)
	}
	if err := s.leaderboardRepo.RefreshOverall(ctx, userIDs); err != nil {
		return ScoreReport{}, fmt.Errorf("refresh overall leaderboard: %w", err)
	}

	top, err := s.leaderboardRepo.ListOverall(ctx, leaderboard.Page{Limit: 1})
	if err != nil {
		s.logger.WarnContext(ctx, "read overall leader failed", "error", err)
	} else if len(top) > 0 {
		report.OverallLeader = top[0].UserID
	}

	report.ScoredAt = s.now().UTC()
	report.DurationMs = report.ScoredAt.Sub(start.UTC()).Milliseconds()

	s.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"squads", report.SquadCount,
		"users", report.UserCount,
		"playing", report.PlayingCount,
		"duration_ms", report.DurationMs,
	)

	return report, nil
}

// computeTotals scores squads on a bounded worker pool and returns once every
// total is known. totals[i] belongs to squads[i].
func (s *ScoringService) computeTotals(squads []fantasy.Squad, base map[string]float64) ([]float64, int, error) {
	totals := make([]float64, len(squads))
	if len(squads) == 0 {
		return totals, 0, nil
	}

	workerCount := s.cfg.Workers
	if workerCount > len(squads) {
		workerCount = len(squads)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i := range squads {
		idx := i
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			totals[idx] = scoring.SquadTotal(squads[idx].Picks, base)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, 0, fmt.Errorf("submit squad to worker pool: %w", err)
		}
	}
	wg.Wait()

	return totals, workerCount, nil
}

// ScoreMatches scores several matches concurrently. Matches touch disjoint
// matchday partitions, and each overall refresh re-sums under the partition
// lock, so the last refresh always sees every saved total.
func (s *ScoringService) ScoreMatches(ctx context.Context, matchIDs []int64) ([]ScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatches")
	defer span.End()

	if len(matchIDs) == 0 {
		return []ScoreReport{}, nil
	}

	reports := make([]ScoreReport, len(matchIDs))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.MatchConcurrency)
	for i, matchID := range matchIDs {
		idx, id := i, matchID
		p.Go(func(ctx context.Context) error {
			report, err := s.ScoreMatch(ctx, id)
			if err != nil {
				return fmt.Errorf("score match=%d: %w", id, err)
			}
			reports[idx] = report
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// RescoreCompleted scores every match whose day has passed.
func (s *ScoringService) RescoreCompleted(ctx context.Context) ([]ScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreCompleted")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	now := s.now()
	ids := make([]int64, 0, len(matches))
	for _, item := range matches {
		if item.Status(now) == match.StatusCompleted {
			ids = append(ids, item.ID)
		}
	}

	return s.ScoreMatches(ctx, ids)
}

type matchPoints struct {
	playing map[string]struct{}
	stats   map[string]playerstats.Stat
	base    map[string]float64
}

// loadMatchPoints computes base points for every fielded player. A fielded
// player without a scorecard scores zero.
func loadMatchPoints(
	ctx context.Context,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	matchID int64,
) (matchPoints, error) {
	entries, err := rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return matchPoints{}, fmt.Errorf("list roster: %w", err)
	}
	stats, err := statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return matchPoints{}, fmt.Errorf("list player stats: %w", err)
	}

	out := matchPoints{
		playing: roster.PlayingSet(entries),
		stats:   make(map[string]playerstats.Stat, len(stats)),
	}
	out.base = make(map[string]float64, len(out.playing))
	for _, stat := range stats {
		out.stats[stat.PlayerID] = stat
	}

	for playerID := range out.playing {
		stat, ok := out.stats[playerID]
		if !ok {
			stat = playerstats.Stat{MatchID: matchID, PlayerID: playerID}
			out.stats[playerID] = stat
		}
		base, err := scoring.BasePoints(stat)
		if err != nil {
			return matchPoints{}, fmt.Errorf("%w: %v", ErrComputation, err)
		}
		out.base[playerID] = base
	}

	return out, nil
}
