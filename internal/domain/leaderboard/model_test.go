package leaderboard

import "testing"

func TestAssignRanks_TiesKeepInsertionOrder(t *testing.T) {
	entries := []Entry{
		{ID: 3, UserID: "C", TotalPoints: 10},
		{ID: 2, UserID: "B", TotalPoints: 30},
		{ID: 1, UserID: "A", TotalPoints: 30},
	}

	AssignRanks(entries)

	want := []struct {
		user string
		rank int
	}{
		{user: "A", rank: 1},
		{user: "B", rank: 2},
		{user: "C", rank: 3},
	}
	for i, w := range want {
		if entries[i].UserID != w.user || entries[i].Rank != w.rank {
			t.Fatalf("position %d: got user=%s rank=%d, want user=%s rank=%d",
				i, entries[i].UserID, entries[i].Rank, w.user, w.rank)
		}
	}
}

func TestAssignRanks_Empty(t *testing.T) {
	var entries []Entry
	AssignRanks(entries)
	if len(entries) != 0 {
		t.Fatalf("expected no entries")
	}
}
