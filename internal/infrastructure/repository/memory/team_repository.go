package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, t := range r.store.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.codeTakenLocked(item.Code, 0) {
		return team.Team{}, team.ErrDuplicateCode
	}

	r.store.nextTeamID++
	item.ID = r.store.nextTeamID
	r.store.teams[item.ID] = item
	return item, nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.teams[item.ID]; !ok {
		return nil
	}
	if r.codeTakenLocked(item.Code, item.ID) {
		return team.ErrDuplicateCode
	}

	r.store.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteTeamLocked(teamID)
	return nil
}

func (r *TeamRepository) codeTakenLocked(code string, exceptID int64) bool {
	for id, t := range r.store.teams {
		if id != exceptID && strings.EqualFold(t.Code, code) {
			return true
		}
	}
	return false
}
