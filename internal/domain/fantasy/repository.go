package fantasy

import "context"

// Repository describes squad persistence needs from use cases.
type Repository interface {
	GetByUserAndMatch(ctx context.Context, userID string, matchID int64) (Squad, bool, error)
	// Create inserts an empty squad unless one already exists for the
	// user and match, and returns the stored row either way.
	Create(ctx context.Context, squad Squad) (Squad, error)
	// Upsert stores the squad row and replaces all of its picks in one
	// transaction.
	Upsert(ctx context.Context, squad Squad) error
	ListByMatch(ctx context.Context, matchID int64) ([]Squad, error)
	SaveTotalPoints(ctx context.Context, matchID int64, totalsBySquadID map[string]float64) error
}
