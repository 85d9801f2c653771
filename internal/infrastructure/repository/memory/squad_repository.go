package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
)

type SquadRepository struct {
	store *Store
}

func NewSquadRepository(store *Store) *SquadRepository {
	return &SquadRepository{store: store}
}

func (r *SquadRepository) GetByUserAndMatch(_ context.Context, userID string, matchID int64) (fantasy.Squad, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.squadByKey[squadKey(userID, matchID)]
	if !ok {
		return fantasy.Squad{}, false, nil
	}

	return cloneSquad(r.store.squads[id]), true, nil
}

func (r *SquadRepository) Create(_ context.Context, squad fantasy.Squad) (fantasy.Squad, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if id, ok := r.store.squadByKey[squadKey(squad.UserID, squad.MatchID)]; ok {
		return cloneSquad(r.store.squads[id]), nil
	}

	r.insertLocked(squad)
	return cloneSquad(squad), nil
}

// Upsert replaces the squad's picks. A stored total is kept because only
// scoring writes it.
func (r *SquadRepository) Upsert(_ context.Context, squad fantasy.Squad) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.squadByKey[squadKey(squad.UserID, squad.MatchID)]
	if !ok {
		r.insertLocked(squad)
		return nil
	}

	existing := r.store.squads[id]
	squad.ID = existing.ID
	squad.TotalPoints = existing.TotalPoints
	squad.CreatedAt = existing.CreatedAt
	r.store.squads[id] = cloneSquad(squad)
	return nil
}

func (r *SquadRepository) insertLocked(squad fantasy.Squad) {
	r.store.squadCounter++
	r.store.squadSeq[squad.ID] = r.store.squadCounter
	r.store.squads[squad.ID] = cloneSquad(squad)
	r.store.squadByKey[squadKey(squad.UserID, squad.MatchID)] = squad.ID
}

func (r *SquadRepository) ListByMatch(_ context.Context, matchID int64) ([]fantasy.Squad, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fantasy.Squad, 0)
	for _, squad := range r.store.squads {
		if squad.MatchID == matchID {
			out = append(out, cloneSquad(squad))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.store.squadSeq[out[i].ID] < r.store.squadSeq[out[j].ID]
	})

	return out, nil
}

func (r *SquadRepository) SaveTotalPoints(_ context.Context, matchID int64, totalsBySquadID map[string]float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, total := range totalsBySquadID {
		squad, ok := r.store.squads[id]
		if !ok || squad.MatchID != matchID {
			continue
		}
		value := total
		squad.TotalPoints = &value
		r.store.squads[id] = squad
	}

	return nil
}
