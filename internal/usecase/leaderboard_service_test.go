package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	leaderboardmock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/leaderboard"
	matchmock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/match"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		offset  int
		want    leaderboard.Page
		wantErr bool
	}{
		{name: "defaults", want: leaderboard.Page{Limit: leaderboard.DefaultLimit}},
		{name: "explicit", limit: 20, offset: 40, want: leaderboard.Page{Limit: 20, Offset: 40}},
		{name: "max limit", limit: leaderboard.MaxLimit, want: leaderboard.Page{Limit: leaderboard.MaxLimit}},
		{name: "limit above max", limit: leaderboard.MaxLimit + 1, wantErr: true},
		{name: "negative limit", limit: -1, wantErr: true},
		{name: "negative offset", offset: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePage(tt.limit, tt.offset)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("page mismatch: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestLeaderboardService_ListMatchday_DefaultPage(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	leaderboardRepo := leaderboardmock.NewRepository(t)

	matchID := int64(3)
	matchRepo.On("GetByID", mock.Anything, matchID).Return(match.Match{ID: matchID}, true, nil)
	leaderboardRepo.On("ListMatchday", mock.Anything, matchID, leaderboard.Page{Limit: 100}).
		Return([]leaderboard.Entry{{ID: 1, UserID: "user-a", MatchID: &matchID, TotalPoints: 12.5, Rank: 1}}, nil)

	svc := NewLeaderboardService(matchRepo, leaderboardRepo)
	entries, err := svc.ListMatchday(t.Context(), matchID, 0, 0)
	if err != nil {
		t.Fatalf("list matchday: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != "user-a" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLeaderboardService_ListMatchday_UnknownMatch(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	leaderboardRepo := leaderboardmock.NewRepository(t)

	matchRepo.On("GetByID", mock.Anything, int64(8)).Return(match.Match{}, false, nil)

	svc := NewLeaderboardService(matchRepo, leaderboardRepo)
	if _, err := svc.ListMatchday(t.Context(), 8, 10, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardService_ListOverall_PropagatesRepositoryError(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	leaderboardRepo := leaderboardmock.NewRepository(t)

	leaderboardRepo.On("ListOverall", mock.Anything, leaderboard.Page{Limit: 5, Offset: 10}).
		Return(nil, errors.New("timeout"))

	svc := NewLeaderboardService(matchRepo, leaderboardRepo)
	if _, err := svc.ListOverall(t.Context(), 5, 10); err == nil {
		t.Fatalf("expected repository error")
	}
}

func TestLeaderboardService_ListOverall_EmptyBeforeScoring(t *testing.T) {
	f := newTestFixture(t)

	entries, err := f.leaderboard.ListOverall(t.Context(), 0, 0)
	if err != nil {
		t.Fatalf("list overall: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty table, got %d", len(entries))
	}
}
