package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, p := range r.store.players {
		if filter.Match(p) {
			out = append(out, p)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.store.players[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeams(_ context.Context, teamIDs []int64) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	out := make([]player.Player, 0)
	for _, p := range r.store.players {
		if _, ok := wanted[p.TeamID]; ok {
			out = append(out, p)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.players[item.ID]; exists {
		return player.ErrDuplicateID
	}
	r.store.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.players[item.ID]; exists {
		r.store.players[item.ID] = item
	}
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deletePlayerLocked(playerID)
	return nil
}

func sortPlayers(players []player.Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].TeamID != players[j].TeamID {
			return players[i].TeamID < players[j].TeamID
		}
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})
}
