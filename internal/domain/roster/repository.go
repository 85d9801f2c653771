package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]Entry, error)
	// ReplaceByMatch swaps the whole roster atomically and drops stats of
	// players that are no longer playing.
	ReplaceByMatch(ctx context.Context, matchID int64, entries []Entry) error
}
