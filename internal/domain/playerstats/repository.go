package playerstats

import "context"

// Repository describes player stat persistence needs from use cases.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]Stat, error)
	UpsertMany(ctx context.Context, matchID int64, stats []Stat) error
}
