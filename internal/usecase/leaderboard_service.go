package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
)

// LeaderboardService serves ranked pages of the matchday and overall tables.
type LeaderboardService struct {
	matchRepo       match.Repository
	leaderboardRepo leaderboard.Repository
}

func NewLeaderboardService(matchRepo match.Repository, leaderboardRepo leaderboard.Repository) *LeaderboardService {
	return &LeaderboardService{
		matchRepo:       matchRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

func (s *LeaderboardService) ListMatchday(ctx context.Context, matchID int64, limit, offset int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ListMatchday")
	defer span.End()

	page, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return nil, err
	}

	entries, err := s.leaderboardRepo.ListMatchday(ctx, matchID, page)
	if err != nil {
		return nil, fmt.Errorf("list matchday leaderboard: %w", err)
	}

	return entries, nil
}

func (s *LeaderboardService) ListOverall(ctx context.Context, limit, offset int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ListOverall")
	defer span.End()

	page, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	entries, err := s.leaderboardRepo.ListOverall(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list overall leaderboard: %w", err)
	}

	return entries, nil
}

// normalizePage applies the default limit for zero and rejects values
// outside the supported range.
func normalizePage(limit, offset int) (leaderboard.Page, error) {
	if limit == 0 {
		limit = leaderboard.DefaultLimit
	}
	if limit < 0 || limit > leaderboard.MaxLimit {
		return leaderboard.Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, leaderboard.MaxLimit)
	}
	if offset < 0 {
		return leaderboard.Page{}, fmt.Errorf("%w: offset cannot be negative", ErrInvalidInput)
	}

	return leaderboard.Page{Limit: limit, Offset: offset}, nil
}
