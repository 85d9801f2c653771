package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"role",
	"cost::float8 AS cost",
	"team_id",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	conditions := make([]qb.Condition, 0, 4)
	if filter.Name != "" {
		conditions = append(conditions, qb.ILike("name", filter.Name))
	}
	if filter.Role != "" {
		conditions = append(conditions, qb.Eq("role", string(filter.Role)))
	}
	if filter.TeamID > 0 {
		conditions = append(conditions, qb.Eq("team_id", filter.TeamID))
	}
	if filter.MaxCost > 0 {
		conditions = append(conditions, qb.Lte("cost", filter.MaxCost))
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy("team_id", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	return r.selectPlayers(ctx, "select players", query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("team_id", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	return r.selectPlayers(ctx, "select players by ids", query, args)
}

func (r *PlayerRepository) ListByTeams(ctx context.Context, teamIDs []int64) ([]player.Player, error) {
	if len(teamIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("team_id", int64SliceToAny(teamIDs))).
		OrderBy("team_id", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by teams query: %w", err)
	}

	return r.selectPlayers(ctx, "select players by teams", query, args)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		ID:     item.ID,
		Name:   item.Name,
		Role:   string(item.Role),
		Cost:   item.Cost,
		TeamID: item.TeamID,
	}).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return player.ErrDuplicateID
		}
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("role", string(item.Role)).
		Set("cost", item.Cost).
		Set("team_id", item.TeamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, op, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:     row.ID,
		Name:   row.Name,
		Role:   player.Role(row.Role),
		Cost:   row.Cost,
		TeamID: row.TeamID,
	}
}
