package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	qb "github.com/riskibarqy/npl-fantasy/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	query, args, err := qb.InsertInto("teams").
		Columns("name", "code").
		Values(item.Name, item.Code).
		Returning("id").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, team.ErrDuplicateCode
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return item, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("code", item.Code).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.ErrDuplicateCode
		}
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

// Delete relies on ON DELETE CASCADE to remove the team's players and matches.
func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:   row.ID,
		Name: row.Name,
		Code: row.Code,
	}
}
