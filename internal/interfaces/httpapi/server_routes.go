package httpapi

import (
	"net/http"

	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/players", handler.ListMatchPlayers)
	mux.HandleFunc("GET /v1/matches/{matchID}/leaderboard", handler.ListMatchdayLeaderboard)
	mux.HandleFunc("GET /v1/leaderboards/overall", handler.ListOverallLeaderboard)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/matches/{matchID}/squad", RequireUser(http.HandlerFunc(handler.CreateSquad)))
	mux.Handle("PUT /v1/matches/{matchID}/squad/picks", RequireUser(http.HandlerFunc(handler.SelectPlayers)))
	mux.Handle("GET /v1/matches/{matchID}/squad", RequireUser(http.HandlerFunc(handler.GetMySquad)))
	mux.Handle("GET /v1/matches/{matchID}/squad/result", RequireUser(http.HandlerFunc(handler.GetMySquadResult)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdminToken(adminToken, fn))
	}

	admin("GET /v1/admin/teams/{teamID}", handler.GetTeam)
	admin("POST /v1/admin/teams", handler.CreateTeam)
	admin("PUT /v1/admin/teams/{teamID}", handler.UpdateTeam)
	admin("DELETE /v1/admin/teams/{teamID}", handler.DeleteTeam)

	admin("GET /v1/admin/players/{playerID}", handler.GetPlayer)
	admin("POST /v1/admin/players", handler.CreatePlayer)
	admin("PUT /v1/admin/players/{playerID}", handler.UpdatePlayer)
	admin("DELETE /v1/admin/players/{playerID}", handler.DeletePlayer)

	admin("POST /v1/admin/matches", handler.CreateMatch)
	admin("PUT /v1/admin/matches/{matchID}", handler.UpdateMatch)
	admin("DELETE /v1/admin/matches/{matchID}", handler.DeleteMatch)

	admin("GET /v1/admin/matches/{matchID}/roster", handler.GetRoster)
	admin("PUT /v1/admin/matches/{matchID}/roster", handler.ReplaceRoster)
	admin("GET /v1/admin/matches/{matchID}/stats", handler.ListMatchStats)
	admin("PUT /v1/admin/matches/{matchID}/stats", handler.SaveMatchStats)

	admin("POST /v1/admin/matches/{matchID}/score", handler.ScoreMatch)
	admin("POST /v1/admin/matches/{matchID}/score/schedule", handler.ScheduleScoreMatch)
	admin("POST /v1/admin/scoring/rescore", handler.Rescore)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST "+usecase.ScoreMatchJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreMatchJob)))
}
