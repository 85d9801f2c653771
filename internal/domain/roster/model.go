package roster

// Entry marks whether a player from one of the two sides is fielded in a match.
type Entry struct {
	MatchID   int64
	PlayerID  string
	IsPlaying bool
}

func PlayingSet(entries []Entry) map[string]struct{} {
	out := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsPlaying {
			out[entry.PlayerID] = struct{}{}
		}
	}
	return out
}
