package usecase

import (
	"errors"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
)

func TestSquadService_SelectPlayers_ValidationGrid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *SelectPlayersInput)
		wantErr error
	}{
		{
			name:    "too few players",
			mutate:  func(in *SelectPlayersInput) { in.PlayerIDs = in.PlayerIDs[:6] },
			wantErr: fantasy.ErrInvalidSquadSize,
		},
		{
			name:    "too many players",
			mutate:  func(in *SelectPlayersInput) { in.PlayerIDs = append(in.PlayerIDs, "pa-wk-01") },
			wantErr: fantasy.ErrInvalidSquadSize,
		},
		{
			name:    "missing captain",
			mutate:  func(in *SelectPlayersInput) { in.CaptainID = "  " },
			wantErr: fantasy.ErrMissingCaptaincy,
		},
		{
			name:    "missing vice captain",
			mutate:  func(in *SelectPlayersInput) { in.ViceCaptainID = "" },
			wantErr: fantasy.ErrMissingCaptaincy,
		},
		{
			name:    "captain is vice captain",
			mutate:  func(in *SelectPlayersInput) { in.ViceCaptainID = in.CaptainID },
			wantErr: fantasy.ErrDuplicateCaptaincy,
		},
		{
			name:    "captain outside squad",
			mutate:  func(in *SelectPlayersInput) { in.CaptainID = "pa-wk-01" },
			wantErr: fantasy.ErrCaptaincyNotInSquad,
		},
		{
			name:    "duplicate player",
			mutate:  func(in *SelectPlayersInput) { in.PlayerIDs[2] = in.PlayerIDs[1] },
			wantErr: fantasy.ErrDuplicatePlayerInSquad,
		},
		{
			name: "five from one team",
			mutate: func(in *SelectPlayersInput) {
				in.PlayerIDs = []string{"kg-bat-01", "kg-bat-02", "kg-bowl-02", "kg-wk-01", "kg-ar-02", "pa-bat-02", "pa-bowl-02"}
				in.CaptainID, in.ViceCaptainID = "kg-bat-01", "pa-bat-02"
			},
			wantErr: fantasy.ErrExceededTeamLimit,
		},
		{
			name: "four batters",
			mutate: func(in *SelectPlayersInput) {
				in.PlayerIDs = []string{"kg-bat-01", "kg-bat-02", "pa-bat-01", "pa-bat-02", "kg-bowl-02", "pa-bowl-02", "kg-wk-01"}
				in.CaptainID, in.ViceCaptainID = "kg-bat-01", "pa-bat-01"
			},
			wantErr: fantasy.ErrExceededRoleLimit,
		},
		{
			name: "over budget",
			mutate: func(in *SelectPlayersInput) {
				in.PlayerIDs = []string{"kg-bat-01", "kg-bowl-01", "kg-ar-01", "kg-wk-01", "pa-bat-01", "pa-bowl-01", "pa-ar-01"}
				in.CaptainID, in.ViceCaptainID = "kg-bat-01", "pa-ar-01"
			},
			wantErr: fantasy.ErrExceededBudget,
		},
		{
			name: "player from another match",
			mutate: func(in *SelectPlayersInput) {
				in.PlayerIDs[6] = "bk-bat-01"
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown player",
			mutate: func(in *SelectPlayersInput) {
				in.PlayerIDs[6] = "nobody"
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown match",
			mutate:  func(in *SelectPlayersInput) { in.MatchID = 404 },
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture(t)
			input := matchOneSelection("user-a")
			tt.mutate(&input)

			_, err := f.squads.SelectPlayers(t.Context(), input)
			if !crerr.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			wantSelectionErr := crerr.Is(tt.wantErr, fantasy.ErrInvalidSelection)
			if IsSelectionError(err) != wantSelectionErr {
				t.Fatalf("IsSelectionError=%v want=%v for %v", IsSelectionError(err), wantSelectionErr, err)
			}

			if _, err := f.squads.GetUserSquad(t.Context(), "user-a", 1); !errors.Is(err, ErrNotFound) {
				t.Fatalf("rejected selection must not persist a squad, got %v", err)
			}
		})
	}
}

func TestSquadService_SelectPlayers_BudgetBoundaryIsInclusive(t *testing.T) {
	f := newTestFixture(t)
	f.squads.rules.BudgetCap = 53

	if _, err := f.squads.SelectPlayers(t.Context(), matchOneSelection("user-a")); err != nil {
		t.Fatalf("squad costing exactly the cap must pass: %v", err)
	}
}

func TestSquadService_SelectPlayers_FailedReplaceKeepsPreviousSquad(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	saved, err := f.squads.SelectPlayers(ctx, matchOneSelection("user-a"))
	if err != nil {
		t.Fatalf("select players: %v", err)
	}

	invalid := matchOneSelection("user-a")
	invalid.PlayerIDs = []string{"kg-bat-01", "kg-bowl-01", "kg-ar-01", "kg-wk-01", "pa-bat-01", "pa-bowl-01", "pa-ar-01"}
	invalid.ViceCaptainID = "pa-ar-01"
	if _, err := f.squads.SelectPlayers(ctx, invalid); !crerr.Is(err, fantasy.ErrExceededBudget) {
		t.Fatalf("expected budget error, got %v", err)
	}

	view, err := f.squads.GetUserSquad(ctx, "user-a", 1)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if view.Squad.ID != saved.ID {
		t.Fatalf("squad id changed: got=%s want=%s", view.Squad.ID, saved.ID)
	}
	if len(view.Players) != 7 {
		t.Fatalf("expected 7 picks, got %d", len(view.Players))
	}
	if view.Players[0].Player.ID != "kg-bat-01" || !view.Players[0].IsCaptain {
		t.Fatalf("expected previous captain first, got %+v", view.Players[0])
	}
	if view.TotalCost != 53 {
		t.Fatalf("expected total cost 53, got %v", view.TotalCost)
	}
}

func TestSquadService_SelectPlayers_ReplacesPicksAndKeepsID(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	first, err := f.squads.SelectPlayers(ctx, matchOneSelection("user-a"))
	if err != nil {
		t.Fatalf("first select: %v", err)
	}

	next := matchOneSelection("user-a")
	next.PlayerIDs[3] = "pa-wk-01"
	next.CaptainID, next.ViceCaptainID = "pa-wk-01", "kg-bat-01"
	second, err := f.squads.SelectPlayers(ctx, next)
	if err != nil {
		t.Fatalf("second select: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same squad id, got %s and %s", first.ID, second.ID)
	}
	captain, ok := second.Captain()
	if !ok || captain.PlayerID != "pa-wk-01" {
		t.Fatalf("unexpected captain %+v", captain)
	}
	vice, ok := second.ViceCaptain()
	if !ok || vice.PlayerID != "kg-bat-01" {
		t.Fatalf("unexpected vice captain %+v", vice)
	}
}

func TestSquadService_CreateSquad_Idempotent(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	first, err := f.squads.CreateSquad(ctx, "user-a", 1)
	if err != nil {
		t.Fatalf("create squad: %v", err)
	}
	second, err := f.squads.CreateSquad(ctx, "user-a", 1)
	if err != nil {
		t.Fatalf("create squad again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected one squad per user and match, got %s and %s", first.ID, second.ID)
	}
	if len(second.Picks) != 0 {
		t.Fatalf("expected empty squad, got %d picks", len(second.Picks))
	}

	if _, err := f.squads.CreateSquad(ctx, "", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty user, got %v", err)
	}
	if _, err := f.squads.CreateSquad(ctx, "user-a", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestSquadService_GetUserSquad_Ordering(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	if _, err := f.squads.SelectPlayers(ctx, matchOneSelection("user-a")); err != nil {
		t.Fatalf("select players: %v", err)
	}

	view, err := f.squads.GetUserSquad(ctx, "user-a", 1)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}

	if !view.Players[0].IsCaptain || !view.Players[1].IsViceCaptain {
		t.Fatalf("expected captain then vice captain first, got %s, %s", view.Players[0].Player.ID, view.Players[1].Player.ID)
	}
	for i := 3; i < len(view.Players); i++ {
		if view.Players[i-1].Player.Name > view.Players[i].Player.Name {
			t.Fatalf("remaining picks must be ordered by name: %s before %s", view.Players[i-1].Player.Name, view.Players[i].Player.Name)
		}
	}
	if view.Players[0].Team.Code != "KG" {
		t.Fatalf("expected captain team resolved, got %+v", view.Players[0].Team)
	}
}

func TestSquadService_SelectPlayers_FlaggedPicks(t *testing.T) {
	f := newTestFixture(t)
	ctx := t.Context()

	designated := matchOneSelection("user-a")
	picks := make([]fantasy.FlaggedPick, 0, len(designated.PlayerIDs))
	for _, id := range designated.PlayerIDs {
		picks = append(picks, fantasy.FlaggedPick{
			PlayerID:      id,
			IsCaptain:     id == designated.CaptainID,
			IsViceCaptain: id == designated.ViceCaptainID,
		})
	}

	squad, err := f.squads.SelectPlayers(ctx, SelectPlayersInput{UserID: "user-a", MatchID: 1, Picks: picks})
	if err != nil {
		t.Fatalf("select flagged picks: %v", err)
	}
	captain, ok := squad.Captain()
	if !ok || captain.PlayerID != "kg-bat-01" || len(squad.Picks) != 7 {
		t.Fatalf("unexpected squad: %+v", squad)
	}

	picks[4].IsCaptain = true
	_, err = f.squads.SelectPlayers(ctx, SelectPlayersInput{UserID: "user-a", MatchID: 1, Picks: picks})
	if !crerr.Is(err, fantasy.ErrDuplicateCaptaincy) {
		t.Fatalf("expected duplicate captaincy for two captain flags, got %v", err)
	}

	mixed := matchOneSelection("user-a")
	mixed.Picks = picks
	if _, err := f.squads.SelectPlayers(ctx, mixed); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for mixed forms, got %v", err)
	}
}
