package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("match_date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	item.Date = match.DateOnly(item.Date)
	query, args, err := qb.InsertInto("matches").
		Columns("match_date", "team_1", "team_2").
		Values(item.Date, item.Team1ID, item.Team2ID).
		Returning("id").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("match_date", match.DateOnly(item.Date)).
		Set("team_1", item.Team1ID).
		Set("team_2", item.Team2ID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID int64) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:      row.ID,
		Date:    match.DateOnly(row.MatchDate),
		Team1ID: row.Team1,
		Team2ID: row.Team2,
	}
}
