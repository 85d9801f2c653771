package memory

import (
	"strconv"
	"sync"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/domain/leaderboard"
	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/npl-fantasy/internal/domain/roster"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
)

// Store holds every table behind a single lock so that cascading deletes and
// multi-table replaces are atomic, the way one database transaction is.
type Store struct {
	mu sync.RWMutex

	teams   map[int64]team.Team
	players map[string]player.Player
	matches map[int64]match.Match
	rosters map[int64]map[string]roster.Entry
	stats   map[int64]map[string]playerstats.Stat

	squads     map[string]fantasy.Squad
	squadByKey map[string]string

	entries      map[int64]leaderboard.Entry
	entryByKey   map[string]int64
	nextTeamID   int64
	nextMatchID  int64
	nextEntryID  int64
	squadCounter int64
	squadSeq     map[string]int64
}

func NewStore() *Store {
	return &Store{
		teams:      make(map[int64]team.Team),
		players:    make(map[string]player.Player),
		matches:    make(map[int64]match.Match),
		rosters:    make(map[int64]map[string]roster.Entry),
		stats:      make(map[int64]map[string]playerstats.Stat),
		squads:     make(map[string]fantasy.Squad),
		squadByKey: make(map[string]string),
		entries:    make(map[int64]leaderboard.Entry),
		entryByKey: make(map[string]int64),
		squadSeq:   make(map[string]int64),
	}
}

// Seed loads catalog rows with their IDs preserved.
func (s *Store) Seed(teams []team.Team, players []player.Player, matches []match.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range teams {
		s.teams[t.ID] = t
		if t.ID > s.nextTeamID {
			s.nextTeamID = t.ID
		}
	}
	for _, p := range players {
		s.players[p.ID] = p
	}
	for _, m := range matches {
		s.matches[m.ID] = m
		if m.ID > s.nextMatchID {
			s.nextMatchID = m.ID
		}
	}
}

func (s *Store) deleteTeamLocked(teamID int64) {
	for id, p := range s.players {
		if p.TeamID == teamID {
			s.deletePlayerLocked(id)
		}
	}
	for id, m := range s.matches {
		if m.HasTeam(teamID) {
			s.deleteMatchLocked(id)
		}
	}
	delete(s.teams, teamID)
}

func (s *Store) deletePlayerLocked(playerID string) {
	for _, entries := range s.rosters {
		delete(entries, playerID)
	}
	for _, stats := range s.stats {
		delete(stats, playerID)
	}
	for id, squad := range s.squads {
		kept := squad.Picks[:0:0]
		for _, pick := range squad.Picks {
			if pick.PlayerID != playerID {
				kept = append(kept, pick)
			}
		}
		squad.Picks = kept
		s.squads[id] = squad
	}
	delete(s.players, playerID)
}

func (s *Store) deleteMatchLocked(matchID int64) {
	delete(s.rosters, matchID)
	delete(s.stats, matchID)
	for id, squad := range s.squads {
		if squad.MatchID == matchID {
			delete(s.squadByKey, squadKey(squad.UserID, squad.MatchID))
			delete(s.squadSeq, id)
			delete(s.squads, id)
		}
	}
	for id, entry := range s.entries {
		if entry.MatchID != nil && *entry.MatchID == matchID {
			delete(s.entryByKey, entryKey(entry.MatchID, entry.UserID))
			delete(s.entries, id)
		}
	}
	delete(s.matches, matchID)
}

func squadKey(userID string, matchID int64) string {
	return userID + "::" + strconv.FormatInt(matchID, 10)
}

func entryKey(matchID *int64, userID string) string {
	if matchID == nil {
		return "overall::" + userID
	}
	return strconv.FormatInt(*matchID, 10) + "::" + userID
}

func cloneSquad(s fantasy.Squad) fantasy.Squad {
	copied := s
	copied.Picks = append([]fantasy.SquadPick(nil), s.Picks...)
	if s.TotalPoints != nil {
		total := *s.TotalPoints
		copied.TotalPoints = &total
	}
	return copied
}

func cloneEntry(e leaderboard.Entry) leaderboard.Entry {
	copied := e
	if e.MatchID != nil {
		matchID := *e.MatchID
		copied.MatchID = &matchID
	}
	return copied
}
