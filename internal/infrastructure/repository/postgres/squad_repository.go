package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

var squadSelectColumns = []string{
	"seq",
	"id",
	"user_id",
	"match_id",
	"total_points::float8 AS total_points",
	"created_at",
	"updated_at",
}

var squadPickSelectColumns = []string{
	"squad_id",
	"player_id",
	"team_id",
	"role",
	"cost::float8 AS cost",
	"is_captain",
	"is_vice_captain",
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByUserAndMatch(ctx context.Context, userID string, matchID int64) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("build select squad query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, fmt.Errorf("select squad: %w", err)
	}

	picks, err := r.listPicks(ctx, []string{row.ID})
	if err != nil {
		return fantasy.Squad{}, false, err
	}

	return squadFromRow(row, picks[row.ID]), true, nil
}

func (r *SquadRepository) Create(ctx context.Context, squad fantasy.Squad) (fantasy.Squad, error) {
	query, args, err := qb.InsertInto("fantasy_squads").
		Columns("id", "user_id", "match_id").
		Values(squad.ID, squad.UserID, squad.MatchID).
		OnConflict(qb.Conflict{Target: []string{"user_id", "match_id"}}).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("build insert squad query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fantasy.Squad{}, fmt.Errorf("insert squad: %w", err)
	}

	stored, ok, err := r.GetByUserAndMatch(ctx, squad.UserID, squad.MatchID)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if !ok {
		return fantasy.Squad{}, fmt.Errorf("squad user=%s match=%d vanished after insert", squad.UserID, squad.MatchID)
	}

	return stored, nil
}

// Upsert writes the squad row and replaces its picks. total_points is left
// untouched because only scoring writes it.
func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert squad tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	upsertQuery, upsertArgs, err := sqlx.Named(`
INSERT INTO fantasy_squads (id, user_id, match_id)
VALUES (:id, :user_id, :match_id)
ON CONFLICT (user_id, match_id)
DO UPDATE SET updated_at = NOW()
RETURNING id`, map[string]any{
		"id":       squad.ID,
		"user_id":  squad.UserID,
		"match_id": squad.MatchID,
	})
	if err != nil {
		return fmt.Errorf("bind upsert squad query: %w", err)
	}
	upsertQuery = tx.Rebind(upsertQuery)

	var squadID string
	if err := tx.GetContext(ctx, &squadID, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("upsert squad: %w", err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("fantasy_squad_picks").
		Where(qb.Eq("squad_id", squadID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete squad picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete squad picks: %w", err)
	}

	if len(squad.Picks) > 0 {
		rows := make([]squadPickTableModel, 0, len(squad.Picks))
		for _, pick := range squad.Picks {
			rows = append(rows, squadPickTableModel{
				SquadID:       squadID,
				PlayerID:      pick.PlayerID,
				TeamID:        pick.TeamID,
				Role:          string(pick.Role),
				Cost:          pick.Cost,
				IsCaptain:     pick.IsCaptain,
				IsViceCaptain: pick.IsViceCaptain,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("fantasy_squad_picks", rows).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert squad picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert squad picks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert squad tx: %w", err)
	}

	return nil
}

func (r *SquadRepository) ListByMatch(ctx context.Context, matchID int64) ([]fantasy.Squad, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squads by match query: %w", err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squads by match: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	picks, err := r.listPicks(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadFromRow(row, picks[row.ID]))
	}

	return out, nil
}

func (r *SquadRepository) SaveTotalPoints(ctx context.Context, matchID int64, totalsBySquadID map[string]float64) error {
	if len(totalsBySquadID) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save squad totals tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for squadID, total := range totalsBySquadID {
		query, args, err := qb.Update("fantasy_squads").
			Set("total_points", total).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("id", squadID),
				qb.Eq("match_id", matchID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update squad total query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update squad total squad=%s: %w", squadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save squad totals tx: %w", err)
	}

	return nil
}

func (r *SquadRepository) listPicks(ctx context.Context, squadIDs []string) (map[string][]fantasy.SquadPick, error) {
	out := make(map[string][]fantasy.SquadPick, len(squadIDs))
	if len(squadIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select(squadPickSelectColumns...).From("fantasy_squad_picks").
		Where(qb.In("squad_id", stringSliceToAny(squadIDs))).
		OrderBy("squad_id", "is_captain DESC", "is_vice_captain DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squad picks query: %w", err)
	}

	var rows []squadPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squad picks: %w", err)
	}

	for _, row := range rows {
		out[row.SquadID] = append(out[row.SquadID], fantasy.SquadPick{
			PlayerID:      row.PlayerID,
			TeamID:        row.TeamID,
			Role:          player.Role(row.Role),
			Cost:          row.Cost,
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
		})
	}

	return out, nil
}

func squadFromRow(row squadTableModel, picks []fantasy.SquadPick) fantasy.Squad {
	return fantasy.Squad{
		ID:          row.ID,
		UserID:      row.UserID,
		MatchID:     row.MatchID,
		TotalPoints: nullFloat64Ptr(row.TotalPoints),
		Picks:       picks,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func nullFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}
