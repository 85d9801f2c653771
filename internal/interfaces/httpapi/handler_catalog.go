package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/player"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.catalogService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.CreateTeam(ctx, usecase.TeamInput{Name: req.Name, Code: req.Code})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "code", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.UpdateTeam(ctx, teamID, usecase.TeamInput{Name: req.Name, Code: req.Code})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeleteTeam(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"deleted": true, "team_id": teamID})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	maxCost, err := queryFloat(r, "max_cost")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	players, err := h.catalogService.ListPlayers(ctx, player.Filter{
		Name:    query.Get("name"),
		Role:    player.Role(strings.TrimSpace(query.Get("role"))),
		TeamID:  teamID,
		MaxCost: maxCost,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.catalogService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.CreatePlayer(ctx, usecase.PlayerInput{
		ID:     req.ID,
		Name:   req.Name,
		Role:   req.Role,
		Cost:   req.Cost,
		TeamID: req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "player_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.UpdatePlayer(ctx, playerID, usecase.PlayerInput{
		ID:     playerID,
		Name:   req.Name,
		Role:   req.Role,
		Cost:   req.Cost,
		TeamID: req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.catalogService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"deleted": true, "player_id": playerID})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.catalogService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) ListMatchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlayers")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.catalogService.ListMatchPlayers(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	input, err := h.decodeMatchInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.catalogService.CreateMatch(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team1_id", input.Team1ID, "team2_id", input.Team2ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.catalogService.GetMatch(ctx, created.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "read created match failed", "match_id", created.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, view))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := h.decodeMatchInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.catalogService.UpdateMatch(ctx, matchID, input); err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, view))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeleteMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"deleted": true, "match_id": matchID})
}

func (h *Handler) decodeMatchInput(ctx context.Context, r *http.Request) (usecase.MatchInput, error) {
	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		return usecase.MatchInput{}, err
	}

	date, err := time.Parse(matchDateLayout, req.Date)
	if err != nil {
		return usecase.MatchInput{}, fmt.Errorf("%w: date must use YYYY-MM-DD", usecase.ErrInvalidInput)
	}

	return usecase.MatchInput{
		Date:    date,
		Team1ID: req.Team1ID,
		Team2ID: req.Team2ID,
	}, nil
}
