package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	Create(ctx context.Context, match Match) (Match, error)
	Update(ctx context.Context, match Match) error
	Delete(ctx context.Context, matchID int64) error
}
