package cache

import (
	"context"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
	basecache "github.com/riskibarqy/npl-fantasy/internal/platform/cache"
)

const teamPrefix = "team:"

// TeamRepository caches team reads. Writes drop every cached team key since
// a team delete also removes matches.
type TeamRepository struct {
	next  team.Repository
	cache basecache.Cache
}

func NewTeamRepository(next team.Repository, cache basecache.Cache) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	raw, err := r.cache.GetOrLoad(ctx, teamPrefix+"list", func(ctx context.Context) ([]byte, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return sonic.Marshal(items)
	})
	if err != nil {
		return nil, err
	}

	var items []team.Team
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return r.next.List(ctx)
	}
	if items == nil {
		items = []team.Team{}
	}
	return items, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamPrefix + "id:" + strconv.FormatInt(teamID, 10)
	raw, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return sonic.Marshal(cachedTeamByID{Value: item, Exists: exists})
	})
	if err != nil {
		return team.Team{}, false, err
	}

	var cached cachedTeamByID
	if err := sonic.Unmarshal(raw, &cached); err != nil {
		return r.next.GetByID(ctx, teamID)
	}
	return cached.Value, cached.Exists, nil
}

type cachedTeamByID struct {
	Value  team.Team `json:"value"`
	Exists bool      `json:"exists"`
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return team.Team{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TeamRepository) invalidate(ctx context.Context) {
	_ = r.cache.DeletePrefix(ctx, teamPrefix)
}
