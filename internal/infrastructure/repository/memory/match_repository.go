package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0, len(r.store.matches))
	for _, m := range r.store.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matches[matchID]
	return m, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextMatchID++
	item.ID = r.store.nextMatchID
	r.store.matches[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matches[item.ID]; ok {
		r.store.matches[item.ID] = item
	}
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteMatchLocked(matchID)
	return nil
}
