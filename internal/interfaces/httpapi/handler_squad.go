package httpapi

import (
	"net/http"

	"github.com/riskibarqy/npl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

func (h *Handler) CreateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSquad")
	defer span.End()

	userID, err := requestUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squadService.CreateSquad(ctx, userID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "create squad failed", "user_id", userID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) SelectPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayers")
	defer span.End()

	userID, err := requestUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectPlayersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squadService.SelectPlayers(ctx, usecase.SelectPlayersInput{
		UserID:        userID,
		MatchID:       matchID,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
		Picks:         flaggedPicks(req.Picks),
	})
	if err != nil {
		if usecase.IsSelectionError(err) {
			h.logger.InfoContext(ctx, "squad selection rejected", "user_id", userID, "match_id", matchID, "reason", err.Error())
		} else {
			h.logger.WarnContext(ctx, "select players failed", "user_id", userID, "match_id", matchID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) GetMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquad")
	defer span.End()

	userID, err := requestUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.squadService.GetUserSquad(ctx, userID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "user_id", userID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadViewToDTO(ctx, view))
}

func (h *Handler) GetMySquadResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquadResult")
	defer span.End()

	userID, err := requestUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.squadService.GetUserResult(ctx, userID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad result failed", "user_id", userID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadResultToDTO(ctx, result))
}

func flaggedPicks(in []pickRequest) []fantasy.FlaggedPick {
	if len(in) == 0 {
		return nil
	}
	out := make([]fantasy.FlaggedPick, 0, len(in))
	for _, p := range in {
		out = append(out, fantasy.FlaggedPick{PlayerID: p.PlayerID, IsCaptain: p.IsCaptain, IsViceCaptain: p.IsViceCaptain})
	}
	return out
}
