package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo catalog into an empty database. Sequences
// are advanced past the seeded IDs so later inserts do not collide.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, name, code)
VALUES (:id, :name, :code)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":   t.ID,
			"name": t.Name,
			"code": t.Code,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %d query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %d: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name, role, cost, team_id)
VALUES (:id, :name, :role, :cost, :team_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":      p.ID,
			"name":    p.Name,
			"role":    string(p.Role),
			"cost":    p.Cost,
			"team_id": p.TeamID,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (id, match_date, team_1, team_2)
VALUES (:id, :match_date, :team_1, :team_2)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         m.ID,
			"match_date": m.Date,
			"team_1":     m.Team1ID,
			"team_2":     m.Team2ID,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %d query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %d: %w", m.ID, err)
		}
	}

	for _, table := range []string{"teams", "matches"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`,
			table, table,
		)); err != nil {
			return fmt.Errorf("advance %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
