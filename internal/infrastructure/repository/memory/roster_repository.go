package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) ListByMatch(_ context.Context, matchID int64) ([]roster.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := r.store.rosters[matchID]
	out := make([]roster.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

func (r *RosterRepository) ReplaceByMatch(_ context.Context, matchID int64, entries []roster.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	next := make(map[string]roster.Entry, len(entries))
	for _, entry := range entries {
		entry.MatchID = matchID
		next[entry.PlayerID] = entry
	}
	r.store.rosters[matchID] = next

	for playerID := range r.store.stats[matchID] {
		if entry, ok := next[playerID]; !ok || !entry.IsPlaying {
			delete(r.store.stats[matchID], playerID)
		}
	}

	return nil
}
