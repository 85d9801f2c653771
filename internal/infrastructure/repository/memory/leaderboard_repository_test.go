package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
)

func newSeededStore() *Store {
	store := NewStore()
	store.Seed(SeedTeams(), SeedPlayers(), SeedMatches())
	return store
}

func storeSquadTotal(t *testing.T, squads *SquadRepository, userID string, matchID int64, total float64) {
	t.Helper()

	ctx := context.Background()
	created, err := squads.Create(ctx, fantasy.Squad{
		ID:      userID + "-" + strconv.FormatInt(matchID, 10),
		UserID:  userID,
		MatchID: matchID,
	})
	if err != nil {
		t.Fatalf("create squad: %v", err)
	}
	if err := squads.SaveTotalPoints(ctx, matchID, map[string]float64{created.ID: total}); err != nil {
		t.Fatalf("save squad total: %v", err)
	}
}

func overallTotals(t *testing.T, repo *LeaderboardRepository) map[string]leaderboard.Entry {
	t.Helper()

	entries, err := repo.ListOverall(context.Background(), leaderboard.Page{})
	if err != nil {
		t.Fatalf("list overall: %v", err)
	}
	out := make(map[string]leaderboard.Entry, len(entries))
	for _, entry := range entries {
		out[entry.UserID] = entry
	}
	return out
}

func TestLeaderboardRepository_RefreshOverallSumsSquads(t *testing.T) {
	store := newSeededStore()
	squads := NewSquadRepository(store)
	repo := NewLeaderboardRepository(store)

	storeSquadTotal(t, squads, "u1", 1, 10.125)
	storeSquadTotal(t, squads, "u1", 2, 5)
	storeSquadTotal(t, squads, "u2", 1, 20)

	if err := repo.RefreshOverall(context.Background(), []string{"u1", "u2"}); err != nil {
		t.Fatalf("refresh overall: %v", err)
	}

	got := overallTotals(t, repo)
	if got["u1"].TotalPoints != 15.13 || got["u1"].Rank != 2 {
		t.Fatalf("unexpected u1 entry: %+v", got["u1"])
	}
	if got["u2"].TotalPoints != 20 || got["u2"].Rank != 1 {
		t.Fatalf("unexpected u2 entry: %+v", got["u2"])
	}
}

func TestLeaderboardRepository_RefreshOverallDropsUsersWithoutSquads(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()
	squads := NewSquadRepository(store)
	repo := NewLeaderboardRepository(store)

	storeSquadTotal(t, squads, "u1", 1, 10)
	storeSquadTotal(t, squads, "u1", 2, 5)
	storeSquadTotal(t, squads, "u2", 1, 20)
	if err := repo.RefreshOverall(ctx, []string{"u1", "u2"}); err != nil {
		t.Fatalf("refresh overall: %v", err)
	}

	if err := NewMatchRepository(store).Delete(ctx, 1); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	if err := repo.RefreshOverall(ctx, []string{"u1", "u2"}); err != nil {
		t.Fatalf("refresh overall after delete: %v", err)
	}

	got := overallTotals(t, repo)
	if len(got) != 1 {
		t.Fatalf("expected only u1 to remain, got %+v", got)
	}
	if got["u1"].TotalPoints != 5 || got["u1"].Rank != 1 {
		t.Fatalf("unexpected u1 entry: %+v", got["u1"])
	}
}

func TestLeaderboardRepository_ConcurrentOverallRefreshes(t *testing.T) {
	store := newSeededStore()
	squads := NewSquadRepository(store)
	repo := NewLeaderboardRepository(store)

	storeSquadTotal(t, squads, "u1", 1, 3)
	storeSquadTotal(t, squads, "u1", 2, 4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.RefreshOverall(context.Background(), []string{"u1"}); err != nil {
				t.Errorf("refresh overall: %v", err)
			}
		}()
	}
	wg.Wait()

	got := overallTotals(t, repo)
	if len(got) != 1 || got["u1"].TotalPoints != 7 {
		t.Fatalf("expected a single overall entry of 7, got %+v", got)
	}
}
