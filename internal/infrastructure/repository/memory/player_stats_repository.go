package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	store *Store
}

func NewPlayerStatsRepository(store *Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{store: store}
}

func (r *PlayerStatsRepository) ListByMatch(_ context.Context, matchID int64) ([]playerstats.Stat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := r.store.stats[matchID]
	out := make([]playerstats.Stat, 0, len(stats))
	for _, stat := range stats {
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

func (r *PlayerStatsRepository) UpsertMany(_ context.Context, matchID int64, stats []playerstats.Stat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byPlayer, ok := r.store.stats[matchID]
	if !ok {
		byPlayer = make(map[string]playerstats.Stat, len(stats))
		r.store.stats[matchID] = byPlayer
	}
	for _, stat := range stats {
		stat.MatchID = matchID
		byPlayer[stat.PlayerID] = stat
	}

	return nil
}
