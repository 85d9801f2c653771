package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListByTeams(ctx context.Context, teamIDs []int64) ([]Player, error)
	Create(ctx context.Context, player Player) error
	Update(ctx context.Context, player Player) error
	Delete(ctx context.Context, playerID string) error
}
