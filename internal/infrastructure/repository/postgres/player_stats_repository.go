package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

var playerStatSelectColumns = []string{
	"match_id",
	"player_id",
	"runs",
	"run_rate",
	"economy",
	"wickets",
	"sixes",
	"fours",
	"catches",
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByMatch(ctx context.Context, matchID int64) ([]playerstats.Stat, error) {
	query, args, err := qb.Select(playerStatSelectColumns...).From("player_stats").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Stat{
			MatchID:  row.MatchID,
			PlayerID: row.PlayerID,
			Runs:     row.Runs,
			RunRate:  row.RunRate,
			Economy:  row.Economy,
			Wickets:  row.Wickets,
			Sixes:    row.Sixes,
			Fours:    row.Fours,
			Catches:  row.Catches,
		})
	}

	return out, nil
}

func (r *PlayerStatsRepository) UpsertMany(ctx context.Context, matchID int64, stats []playerstats.Stat) error {
	if len(stats) == 0 {
		return nil
	}

	rows := make([]playerStatTableModel, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, playerStatTableModel{
			MatchID:  matchID,
			PlayerID: stat.PlayerID,
			Runs:     stat.Runs,
			RunRate:  stat.RunRate,
			Economy:  stat.Economy,
			Wickets:  stat.Wickets,
			Sixes:    stat.Sixes,
			Fours:    stat.Fours,
			Catches:  stat.Catches,
		})
	}

	query, args, err := qb.InsertModels("player_stats", rows).
		OnConflict(qb.Conflict{
			Target: []string{"match_id", "player_id"},
			Update: []string{"runs", "run_rate", "economy", "wickets", "sixes", "fours", "catches"},
			Touch:  []string{"updated_at"},
		}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}

	return nil
}
