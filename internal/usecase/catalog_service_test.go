package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	matchmock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/player"
	rostermock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/roster"
	teammock "github.com/riskibarqy/npl-fantasy/internal/mocks/domain/team"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

func TestCatalogService_CreateTeam(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	created, err := f.catalog.CreateTeam(ctx, TeamInput{Name: " Lalitpur Patriots ", Code: "lp"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID <= 3 || created.Code != "LP" || created.Name != "Lalitpur Patriots" {
		t.Fatalf("unexpected team: %+v", created)
	}

	if _, err := f.catalog.CreateTeam(ctx, TeamInput{Name: "Kathmandu Again", Code: "kg"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate code, got %v", err)
	}
	if _, err := f.catalog.CreateTeam(ctx, TeamInput{Name: "", Code: "XX"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := f.catalog.UpdateTeam(ctx, created.ID, TeamInput{Name: "Lalitpur", Code: "PA"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on update, got %v", err)
	}
	if _, err := f.catalog.GetTeam(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteTeamCascades(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	if _, err := f.squads.SelectPlayers(ctx, matchOneSelection("user-a")); err != nil {
		t.Fatalf("select players: %v", err)
	}
	prepareMatchOne(t, f)
	if _, err := f.scoring.ScoreMatch(ctx, 1); err != nil {
		t.Fatalf("score match: %v", err)
	}

	if err := f.catalog.DeleteTeam(ctx, 1); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	players, err := f.catalog.ListPlayers(ctx, player.Filter{TeamID: 1})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected team players removed, got %d", len(players))
	}
	if _, err := f.catalog.GetMatch(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected match 1 removed, got %v", err)
	}
	if _, err := f.catalog.GetMatch(ctx, 2); err != nil {
		t.Fatalf("match 2 must survive: %v", err)
	}
	if _, err := f.squads.GetUserSquad(ctx, "user-a", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected squad removed with its match, got %v", err)
	}
	if _, err := f.leaderboard.ListMatchday(ctx, 1, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected matchday table removed with its match, got %v", err)
	}
	if overall := overallByUser(t, f); len(overall) != 0 {
		t.Fatalf("expected user without squads to leave the overall table, got %+v", overall)
	}
	if err := f.catalog.DeleteTeam(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCatalogService_DeleteMatchResumsOverall(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	for _, userID := range []string{"user-a", "user-b"} {
		if _, err := f.squads.SelectPlayers(ctx, matchOneSelection(userID)); err != nil {
			t.Fatalf("select match 1 for %s: %v", userID, err)
		}
	}
	if _, err := f.squads.SelectPlayers(ctx, matchTwoSelection("user-b")); err != nil {
		t.Fatalf("select match 2: %v", err)
	}
	prepareMatchOne(t, f)
	prepareMatchTwo(t, f)
	if _, err := f.scoring.ScoreMatches(ctx, []int64{1, 2}); err != nil {
		t.Fatalf("score matches: %v", err)
	}

	if err := f.catalog.DeleteMatch(ctx, 1); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	entries, err := f.leaderboard.ListOverall(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list overall: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != "user-b" || entries[0].Rank != 1 {
		t.Fatalf("expected user-b alone at rank 1, got %+v", entries)
	}
	if want := storedOverall(t, f, "user-b"); entries[0].TotalPoints != want || want != 8 {
		t.Fatalf("overall %v does not match remaining squads %v", entries[0].TotalPoints, want)
	}
}

func TestCatalogService_Players(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	bowlers, err := f.catalog.ListPlayers(ctx, player.Filter{Role: "bowl", MaxCost: 8})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	for _, p := range bowlers {
		if p.Role != player.RoleBowler || p.Cost > 8 {
			t.Fatalf("filter leaked player %+v", p)
		}
	}
	if len(bowlers) == 0 {
		t.Fatalf("expected cheap bowlers in seed data")
	}

	if _, err := f.catalog.ListPlayers(ctx, player.Filter{Role: "SPIN"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}

	created, err := f.catalog.CreatePlayer(ctx, PlayerInput{ID: "kg-bat-03", Name: "Manoj Ale", Role: "BAT", Cost: 6.5, TeamID: 1})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.Role != player.RoleBatter {
		t.Fatalf("unexpected role %s", created.Role)
	}
	if _, err := f.catalog.CreatePlayer(ctx, PlayerInput{ID: "kg-bat-03", Name: "Copy", Role: "BAT", Cost: 6, TeamID: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate id, got %v", err)
	}
	if _, err := f.catalog.CreatePlayer(ctx, PlayerInput{ID: "ghost", Name: "Ghost", Role: "BAT", Cost: 6, TeamID: 42}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown team, got %v", err)
	}
	if _, err := f.catalog.UpdatePlayer(ctx, "missing", PlayerInput{Name: "X", Role: "BAT", Cost: 5, TeamID: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := f.catalog.DeletePlayer(ctx, "kg-bat-03"); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if _, err := f.catalog.GetPlayer(ctx, "kg-bat-03"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted player gone, got %v", err)
	}
}

func TestCatalogService_Matches(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	tests := []struct {
		name    string
		input   MatchInput
		wantErr error
	}{
		{name: "same team twice", input: MatchInput{Date: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), Team1ID: 1, Team2ID: 1}, wantErr: ErrInvalidInput},
		{name: "unknown team", input: MatchInput{Date: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), Team1ID: 1, Team2ID: 9}, wantErr: ErrInvalidInput},
		{name: "missing date", input: MatchInput{Team1ID: 1, Team2ID: 3}, wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.catalog.CreateMatch(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	created, err := f.catalog.CreateMatch(ctx, MatchInput{Date: time.Date(2026, 12, 1, 15, 30, 0, 0, time.UTC), Team1ID: 1, Team2ID: 3})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if created.ID != 3 || !created.Date.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected match: %+v", created)
	}

	pool, err := f.catalog.ListMatchPlayers(ctx, created.ID)
	if err != nil {
		t.Fatalf("list match players: %v", err)
	}
	for _, p := range pool {
		if !created.HasTeam(p.TeamID) {
			t.Fatalf("player %s does not belong to match", p.ID)
		}
	}

	views, err := f.catalog.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(views))
	}
	for _, view := range views {
		if view.Status != match.StatusUpcoming {
			t.Fatalf("match %d should be upcoming, got %s", view.Match.ID, view.Status)
		}
	}

	f.catalog.now = func() time.Time { return time.Date(2026, 11, 18, 0, 0, 0, 0, time.UTC) }
	view, err := f.catalog.GetMatch(ctx, 1)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if view.Status != match.StatusCompleted || view.Team1.Code != "KG" || view.Team2.Code != "PA" {
		t.Fatalf("unexpected match view: %+v", view)
	}
}

func TestCatalogService_UpdateMatchSidesClearsRoster(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	if err := f.roster.ReplaceRoster(ctx, 1, []string{"kg-bat-01", "pa-bat-01"}); err != nil {
		t.Fatalf("replace roster: %v", err)
	}

	date := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	if _, err := f.catalog.UpdateMatch(ctx, 1, MatchInput{Date: date, Team1ID: 2, Team2ID: 1}); err != nil {
		t.Fatalf("swap sides: %v", err)
	}
	entries, err := f.roster.GetRoster(ctx, 1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if countPlaying(entries) != 2 {
		t.Fatalf("swapping sides must keep the roster, got %d playing", countPlaying(entries))
	}

	if _, err := f.catalog.UpdateMatch(ctx, 1, MatchInput{Date: date, Team1ID: 1, Team2ID: 3}); err != nil {
		t.Fatalf("change sides: %v", err)
	}
	entries, err = f.roster.GetRoster(ctx, 1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if countPlaying(entries) != 0 {
		t.Fatalf("changing sides must clear the roster, got %d playing", countPlaying(entries))
	}
}

func TestCatalogService_UpdateMatchKeepsRosterOnDateChange(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)

	current := match.Match{ID: 5, Date: time.Date(2026, 11, 17, 0, 0, 0, 0, time.UTC), Team1ID: 1, Team2ID: 2}
	moved := current
	moved.Date = time.Date(2026, 11, 21, 0, 0, 0, 0, time.UTC)

	matchRepo.On("GetByID", mock.Anything, int64(5)).Return(current, true, nil)
	teamRepo.On("GetByID", mock.Anything, int64(1)).Return(team.Team{ID: 1, Name: "A", Code: "A"}, true, nil)
	teamRepo.On("GetByID", mock.Anything, int64(2)).Return(team.Team{ID: 2, Name: "B", Code: "B"}, true, nil)
	matchRepo.On("Update", mock.Anything, moved).Return(nil)

	svc := NewCatalogService(teamRepo, playerRepo, matchRepo, rosterRepo, nil, nil, logging.NewNop())
	got, err := svc.UpdateMatch(t.Context(), 5, MatchInput{Date: moved.Date, Team1ID: 1, Team2ID: 2})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}
	if !got.Date.Equal(moved.Date) {
		t.Fatalf("unexpected date %v", got.Date)
	}
	rosterRepo.AssertNotCalled(t, "ReplaceByMatch", mock.Anything, mock.Anything, mock.Anything)
}

func countPlaying(entries []RosterEntryView) int {
	count := 0
	for _, entry := range entries {
		if entry.IsPlaying {
			count++
		}
	}
	return count
}
