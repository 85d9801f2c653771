package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByMatch(ctx context.Context, matchID int64) ([]roster.Entry, error) {
	query, args, err := qb.Select("match_id", "player_id", "is_playing").From("match_rosters").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Entry{
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			IsPlaying: row.IsPlaying,
		})
	}

	return out, nil
}

func (r *RosterRepository) ReplaceByMatch(ctx context.Context, matchID int64, entries []roster.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace roster tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("match_rosters").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}

	playing := make([]any, 0, len(entries))
	if len(entries) > 0 {
		rows := make([]rosterTableModel, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, rosterTableModel{
				MatchID:   matchID,
				PlayerID:  entry.PlayerID,
				IsPlaying: entry.IsPlaying,
			})
			if entry.IsPlaying {
				playing = append(playing, entry.PlayerID)
			}
		}

		insertQuery, insertArgs, err := qb.InsertModels("match_rosters", rows).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert roster: %w", err)
		}
	}

	statsQuery, statsArgs, err := qb.DeleteFrom("player_stats").
		Where(qb.Eq("match_id", matchID), qb.NotIn("player_id", playing)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete benched stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, statsQuery, statsArgs...); err != nil {
		return fmt.Errorf("delete benched stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace roster tx: %w", err)
	}

	return nil
}
