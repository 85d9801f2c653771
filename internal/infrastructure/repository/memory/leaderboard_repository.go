package memory

import (
	"context"
	"sort"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/scoring"
)

type LeaderboardRepository struct {
	store *Store
	now   func() time.Time
}

func NewLeaderboardRepository(store *Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: store, now: time.Now}
}

func (r *LeaderboardRepository) RefreshMatchday(_ context.Context, matchID int64, standings []leaderboard.Standing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := matchID
	r.refreshLocked(&id, standings)
	return nil
}

func (r *LeaderboardRepository) RefreshOverall(_ context.Context, userIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sums := make(map[string]float64, len(userIDs))
	for _, userID := range userIDs {
		sums[userID] = 0
	}
	hasSquad := make(map[string]bool, len(userIDs))
	for _, squad := range r.store.squads {
		if _, ok := sums[squad.UserID]; ok {
			sums[squad.UserID] += squad.Points()
			hasSquad[squad.UserID] = true
		}
	}

	standings := make([]leaderboard.Standing, 0, len(userIDs))
	for _, userID := range userIDs {
		if !hasSquad[userID] {
			key := entryKey(nil, userID)
			if id, ok := r.store.entryByKey[key]; ok {
				delete(r.store.entries, id)
				delete(r.store.entryByKey, key)
			}
			continue
		}
		standings = append(standings, leaderboard.Standing{
			UserID:      userID,
			TotalPoints: scoring.Round2(sums[userID]),
		})
	}

	r.refreshLocked(nil, standings)
	return nil
}

// refreshLocked upserts standings into the partition and renumbers every
// entry of that partition.
func (r *LeaderboardRepository) refreshLocked(matchID *int64, standings []leaderboard.Standing) {
	now := r.now().UTC()
	for _, standing := range standings {
		key := entryKey(matchID, standing.UserID)
		if id, ok := r.store.entryByKey[key]; ok {
			entry := r.store.entries[id]
			entry.TotalPoints = standing.TotalPoints
			entry.UpdatedAt = now
			r.store.entries[id] = entry
			continue
		}

		r.store.nextEntryID++
		entry := leaderboard.Entry{
			ID:          r.store.nextEntryID,
			UserID:      standing.UserID,
			TotalPoints: standing.TotalPoints,
			UpdatedAt:   now,
		}
		if matchID != nil {
			value := *matchID
			entry.MatchID = &value
		}
		r.store.entries[entry.ID] = entry
		r.store.entryByKey[key] = entry.ID
	}

	partition := r.partitionLocked(matchID)
	leaderboard.AssignRanks(partition)
	for _, entry := range partition {
		r.store.entries[entry.ID] = entry
	}
}

func (r *LeaderboardRepository) partitionLocked(matchID *int64) []leaderboard.Entry {
	out := make([]leaderboard.Entry, 0)
	for _, entry := range r.store.entries {
		switch {
		case matchID == nil && entry.IsOverall():
			out = append(out, cloneEntry(entry))
		case matchID != nil && entry.MatchID != nil && *entry.MatchID == *matchID:
			out = append(out, cloneEntry(entry))
		}
	}
	return out
}

func (r *LeaderboardRepository) ListMatchday(_ context.Context, matchID int64, page leaderboard.Page) ([]leaderboard.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id := matchID
	return pageByRank(r.partitionLocked(&id), page), nil
}

func (r *LeaderboardRepository) ListOverall(_ context.Context, page leaderboard.Page) ([]leaderboard.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return pageByRank(r.partitionLocked(nil), page), nil
}

func pageByRank(entries []leaderboard.Entry, page leaderboard.Page) []leaderboard.Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank < entries[j].Rank
		}
		return entries[i].ID < entries[j].ID
	})
	if page.Offset >= len(entries) {
		return []leaderboard.Entry{}
	}
	end := len(entries)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return entries[page.Offset:end]
}
