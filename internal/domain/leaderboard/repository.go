package leaderboard

import "context"

// Repository describes leaderboard persistence needs from use cases.
// Each refresh re-ranks the whole partition in a single transaction.
type Repository interface {
	RefreshMatchday(ctx context.Context, matchID int64, standings []Standing) error
	// RefreshOverall re-sums the stored squad totals of the given users while
	// holding the overall partition, so concurrent refreshes cannot publish a
	// stale sum. Users without any squad left lose their overall entry.
	RefreshOverall(ctx context.Context, userIDs []string) error
	ListMatchday(ctx context.Context, matchID int64, page Page) ([]Entry, error)
	ListOverall(ctx context.Context, page Page) ([]Entry, error)
}
