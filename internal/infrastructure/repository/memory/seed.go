package memory

import (
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/domain/team"
)

const (
	TeamIDKathmandu  int64 = 1
	TeamIDPokhara    int64 = 2
	TeamIDBiratnagar int64 = 3
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDKathmandu, Name: "Kathmandu Gurkhas", Code: "KG"},
		{ID: TeamIDPokhara, Name: "Pokhara Avengers", Code: "PA"},
		{ID: TeamIDBiratnagar, Name: "Biratnagar Kings", Code: "BK"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "kg-bat-01", TeamID: TeamIDKathmandu, Name: "Aarav Shrestha", Role: player.RoleBatter, Cost: 9.5},
		{ID: "kg-bat-02", TeamID: TeamIDKathmandu, Name: "Bibek Thapa", Role: player.RoleBatter, Cost: 8},
		{ID: "kg-bowl-01", TeamID: TeamIDKathmandu, Name: "Chandra Rai", Role: player.RoleBowler, Cost: 8.5},
		{ID: "kg-bowl-02", TeamID: TeamIDKathmandu, Name: "Dipesh Gurung", Role: player.RoleBowler, Cost: 7},
		{ID: "kg-ar-01", TeamID: TeamIDKathmandu, Name: "Ekraj Magar", Role: player.RoleAllRounder, Cost: 10},
		{ID: "kg-ar-02", TeamID: TeamIDKathmandu, Name: "Gyanendra Karki", Role: player.RoleAllRounder, Cost: 7.5},
		{ID: "kg-wk-01", TeamID: TeamIDKathmandu, Name: "Hari Tamang", Role: player.RoleWicketkeeper, Cost: 8},
		{ID: "pa-bat-01", TeamID: TeamIDPokhara, Name: "Ishan Poudel", Role: player.RoleBatter, Cost: 9},
		{ID: "pa-bat-02", TeamID: TeamIDPokhara, Name: "Jeevan Adhikari", Role: player.RoleBatter, Cost: 7.5},
		{ID: "pa-bowl-01", TeamID: TeamIDPokhara, Name: "Kiran Bhandari", Role: player.RoleBowler, Cost: 9},
		{ID: "pa-bowl-02", TeamID: TeamIDPokhara, Name: "Lokesh Basnet", Role: player.RoleBowler, Cost: 6.5},
		{ID: "pa-ar-01", TeamID: TeamIDPokhara, Name: "Manish Khadka", Role: player.RoleAllRounder, Cost: 9.5},
		{ID: "pa-ar-02", TeamID: TeamIDPokhara, Name: "Nabin Lama", Role: player.RoleAllRounder, Cost: 7},
		{ID: "pa-wk-01", TeamID: TeamIDPokhara, Name: "Om Sapkota", Role: player.RoleWicketkeeper, Cost: 8.5},
		{ID: "bk-bat-01", TeamID: TeamIDBiratnagar, Name: "Prakash Yadav", Role: player.RoleBatter, Cost: 8.5},
		{ID: "bk-bowl-01", TeamID: TeamIDBiratnagar, Name: "Rabin Limbu", Role: player.RoleBowler, Cost: 8},
		{ID: "bk-ar-01", TeamID: TeamIDBiratnagar, Name: "Sagar Dhakal", Role: player.RoleAllRounder, Cost: 9},
		{ID: "bk-wk-01", TeamID: TeamIDBiratnagar, Name: "Tilak Bhatta", Role: player.RoleWicketkeeper, Cost: 7.5},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{ID: 1, Date: time.Date(2026, 11, 17, 0, 0, 0, 0, time.UTC), Team1ID: TeamIDKathmandu, Team2ID: TeamIDPokhara},
		{ID: 2, Date: time.Date(2026, 11, 19, 0, 0, 0, 0, time.UTC), Team1ID: TeamIDPokhara, Team2ID: TeamIDBiratnagar},
	}
}
