package team

import "context"

// Repository describes team persistence needs from use cases.
// Delete removes the team's players and every match it takes part in.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	Create(ctx context.Context, team Team) (Team, error)
	Update(ctx context.Context, team Team) error
	Delete(ctx context.Context, teamID int64) error
}
