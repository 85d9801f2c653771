package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	basecache "github.com/riskibarqy/npl-fantasy/internal/platform/cache"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

const (
	overallPrefix  = "leaderboard:overall:"
	matchdayPrefix = "leaderboard:match:"
)

// LeaderboardRepository serves leaderboard pages through a read-through
// cache. Every refresh evicts all cached pages of the refreshed partition.
type LeaderboardRepository struct {
	next   leaderboard.Repository
	cache  basecache.Cache
	logger *logging.Logger
}

func NewLeaderboardRepository(next leaderboard.Repository, cache basecache.Cache, logger *logging.Logger) *LeaderboardRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardRepository{next: next, cache: cache, logger: logger}
}

func (r *LeaderboardRepository) RefreshMatchday(ctx context.Context, matchID int64, standings []leaderboard.Standing) error {
	if err := r.next.RefreshMatchday(ctx, matchID, standings); err != nil {
		return err
	}
	r.evict(ctx, matchdayKeyPrefix(matchID))
	return nil
}

func (r *LeaderboardRepository) RefreshOverall(ctx context.Context, userIDs []string) error {
	if err := r.next.RefreshOverall(ctx, userIDs); err != nil {
		return err
	}
	r.evict(ctx, overallPrefix)
	return nil
}

func (r *LeaderboardRepository) ListMatchday(ctx context.Context, matchID int64, page leaderboard.Page) ([]leaderboard.Entry, error) {
	key := matchdayKeyPrefix(matchID) + pageKey(page)
	return r.load(ctx, key, func(ctx context.Context) ([]leaderboard.Entry, error) {
		return r.next.ListMatchday(ctx, matchID, page)
	})
}

func (r *LeaderboardRepository) ListOverall(ctx context.Context, page leaderboard.Page) ([]leaderboard.Entry, error) {
	key := overallPrefix + pageKey(page)
	return r.load(ctx, key, func(ctx context.Context) ([]leaderboard.Entry, error) {
		return r.next.ListOverall(ctx, page)
	})
}

func (r *LeaderboardRepository) load(
	ctx context.Context,
	key string,
	fetch func(context.Context) ([]leaderboard.Entry, error),
) ([]leaderboard.Entry, error) {
	raw, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return sonic.Marshal(items)
	})
	if err != nil {
		return nil, err
	}

	var items []leaderboard.Entry
	if err := sonic.Unmarshal(raw, &items); err != nil {
		r.logger.WarnContext(ctx, "decode cached leaderboard page failed", "key", key, "error", err)
		_ = r.cache.Delete(ctx, key)
		return fetch(ctx)
	}
	if items == nil {
		items = []leaderboard.Entry{}
	}

	return items, nil
}

func (r *LeaderboardRepository) evict(ctx context.Context, prefix string) {
	if err := r.cache.DeletePrefix(ctx, prefix); err != nil {
		r.logger.WarnContext(ctx, "evict leaderboard cache failed", "prefix", prefix, "error", err)
	}
}

func matchdayKeyPrefix(matchID int64) string {
	return matchdayPrefix + strconv.FormatInt(matchID, 10) + ":"
}

func pageKey(page leaderboard.Page) string {
	return fmt.Sprintf("%d:%d", page.Limit, page.Offset)
}
