package httpapi

import "net/http"

func (h *Handler) ListMatchdayLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchdayLeaderboard")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.ListMatchday(ctx, matchID, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchday leaderboard failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, entries))
}

func (h *Handler) ListOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverallLeaderboard")
	defer span.End()

	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.ListOverall(ctx, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "list overall leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, entries))
}

func pageParams(r *http.Request) (int, int, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
