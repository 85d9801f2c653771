package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

type sequenceIDGenerator struct {
	next atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("squad-%03d", g.next.Add(1)), nil
}

type testFixture struct {
	store       *memory.Store
	squadRepo   *memory.SquadRepository
	catalog     *CatalogService
	roster      *RosterService
	stats       *PlayerStatsService
	squads      *SquadService
	scoring     *ScoringService
	leaderboard *LeaderboardService
}

// newTestFixture wires every service on one seeded memory store. The clock
// is pinned so seeded matches are still upcoming.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	store := memory.NewStore()
	store.Seed(memory.SeedTeams(), memory.SeedPlayers(), memory.SeedMatches())

	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	rosterRepo := memory.NewRosterRepository(store)
	statsRepo := memory.NewPlayerStatsRepository(store)
	squadRepo := memory.NewSquadRepository(store)
	leaderboardRepo := memory.NewLeaderboardRepository(store)
	logger := logging.NewNop()

	now := func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) }

	f := &testFixture{
		store:       store,
		squadRepo:   squadRepo,
		catalog:     NewCatalogService(teamRepo, playerRepo, matchRepo, rosterRepo, squadRepo, leaderboardRepo, logger),
		roster:      NewRosterService(matchRepo, playerRepo, rosterRepo, logger),
		stats:       NewPlayerStatsService(matchRepo, playerRepo, rosterRepo, statsRepo, logger),
		squads:      NewSquadService(matchRepo, teamRepo, playerRepo, rosterRepo, statsRepo, squadRepo, fantasy.DefaultRules(), &sequenceIDGenerator{}, logger),
		scoring:     NewScoringService(matchRepo, rosterRepo, statsRepo, squadRepo, leaderboardRepo, ScoringConfig{Workers: 3, MatchConcurrency: 2}, logger),
		leaderboard: NewLeaderboardService(matchRepo, leaderboardRepo),
	}
	f.catalog.now = now
	f.squads.now = now
	f.scoring.now = now

	return f
}

// matchOneSelection is a legal squad for seeded match 1: four Kathmandu and
// three Pokhara players, at most three per role, costing 53.
func matchOneSelection(userID string) SelectPlayersInput {
	return SelectPlayersInput{
		UserID:        userID,
		MatchID:       1,
		PlayerIDs:     []string{"kg-bat-01", "kg-bowl-02", "kg-wk-01", "kg-ar-02", "pa-bat-02", "pa-bowl-02", "pa-ar-02"},
		CaptainID:     "kg-bat-01",
		ViceCaptainID: "pa-ar-02",
	}
}
