package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

const overallPartition = "leaderboard:overall"

func matchdayPartition(matchID int64) string {
	return "leaderboard:match:" + strconv.FormatInt(matchID, 10)
}

type LeaderboardRepository struct {
	db *sqlx.DB
}

var leaderboardSelectColumns = []string{
	"id",
	"user_id",
	"match_id",
	"total_points::float8 AS total_points",
	"rank",
	"updated_at",
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) RefreshMatchday(ctx context.Context, matchID int64, standings []leaderboard.Standing) error {
	partition := matchdayPartition(matchID)
	return r.withPartition(ctx, partition, func(tx *sqlx.Tx) error {
		for _, standing := range standings {
			query, args, err := qb.InsertInto("leaderboard_entries").
				Columns("user_id", "match_id", "total_points").
				Values(standing.UserID, matchID, standing.TotalPoints).
				OnConflict(qb.Conflict{
					Target:    []string{"user_id", "match_id"},
					Predicate: "match_id IS NOT NULL",
					Update:    []string{"total_points"},
					Touch:     []string{"updated_at"},
				}).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build upsert leaderboard entry query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert leaderboard entry user=%s: %w", standing.UserID, err)
			}
		}

		return rerank(ctx, tx, partition, qb.Eq("match_id", matchID))
	})
}

func (r *LeaderboardRepository) RefreshOverall(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	users := stringSliceToAny(userIDs)

	return r.withPartition(ctx, overallPartition, func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("leaderboard_entries").
			Where(
				qb.IsNull("match_id"),
				qb.In("user_id", users),
				qb.Expr("NOT EXISTS (SELECT 1 FROM fantasy_squads s WHERE s.user_id = leaderboard_entries.user_id)"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete orphan overall entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete orphan overall entries: %w", err)
		}

		sums, args, err := qb.Select("user_id", "NULL::BIGINT", "ROUND(COALESCE(SUM(total_points), 0), 2)").
			From("fantasy_squads").
			Where(qb.In("user_id", users)).
			GroupBy("user_id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build sum squad totals query: %w", err)
		}
		upsert := `INSERT INTO leaderboard_entries (user_id, match_id, total_points) ` + sums + `
ON CONFLICT (user_id) WHERE match_id IS NULL
DO UPDATE SET total_points = EXCLUDED.total_points, updated_at = NOW()`
		if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
			return fmt.Errorf("upsert overall entries: %w", err)
		}

		return rerank(ctx, tx, overallPartition, qb.IsNull("match_id"))
	})
}

// withPartition runs fn in a transaction holding the partition's advisory
// lock, so refreshes of one partition serialize.
func (r *LeaderboardRepository) withPartition(ctx context.Context, partition string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh leaderboard tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(partition)); err != nil {
		return fmt.Errorf("lock leaderboard partition %s: %w", partition, err)
	}
	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh leaderboard tx: %w", err)
	}
	return nil
}

func rerank(ctx context.Context, tx *sqlx.Tx, partition string, filter qb.Condition) error {
	positions, args, err := qb.Select("id", "ROW_NUMBER() OVER (ORDER BY total_points DESC, id ASC) AS position").
		From("leaderboard_entries").
		Where(filter).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build rank leaderboard query: %w", err)
	}

	query := `
UPDATE leaderboard_entries AS e
SET rank = ranked.position
FROM (` + positions + `) AS ranked
WHERE e.id = ranked.id AND e.rank IS DISTINCT FROM ranked.position`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("rerank leaderboard partition %s: %w", partition, err)
	}
	return nil
}

func (r *LeaderboardRepository) ListMatchday(ctx context.Context, matchID int64, page leaderboard.Page) ([]leaderboard.Entry, error) {
	return r.list(ctx, qb.Eq("match_id", matchID), page)
}

func (r *LeaderboardRepository) ListOverall(ctx context.Context, page leaderboard.Page) ([]leaderboard.Entry, error) {
	return r.list(ctx, qb.IsNull("match_id"), page)
}

func (r *LeaderboardRepository) list(ctx context.Context, partition qb.Condition, page leaderboard.Page) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select(leaderboardSelectColumns...).From("leaderboard_entries").
		Where(partition).
		OrderBy("rank", "id").
		Limit(page.Limit).
		Offset(page.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leaderboard query: %w", err)
	}

	var rows []leaderboardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		entry := leaderboard.Entry{
			ID:          row.ID,
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
			Rank:        row.Rank,
			UpdatedAt:   row.UpdatedAt,
		}
		if row.MatchID.Valid {
			value := row.MatchID.Int64
			entry.MatchID = &value
		}
		out = append(out, entry)
	}

	return out, nil
}
