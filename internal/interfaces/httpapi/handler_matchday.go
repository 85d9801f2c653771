package httpapi

import (
	"net/http"

	"github.com/riskibarqy/npl-fantasy/internal/domain/playerstats"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.rosterService.GetRoster(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, rosterEntryDTO{
			Player:    playerToDTO(ctx, entry.Player),
			IsPlaying: entry.IsPlaying,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReplaceRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceRoster")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replaceRosterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.ReplaceRoster(ctx, matchID, req.PlayingPlayerIDs); err != nil {
		h.logger.WarnContext(ctx, "replace roster failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id":      matchID,
		"playing_count": len(req.PlayingPlayerIDs),
	})
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.ListMatchStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, playerStatToDTO(ctx, stat))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SaveMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMatchStats")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats := make([]playerstats.Stat, 0, len(req.Stats))
	for _, record := range req.Stats {
		stats = append(stats, statRecordToDomain(record))
	}

	if err := h.statsService.SaveMatchStats(ctx, matchID, stats); err != nil {
		h.logger.WarnContext(ctx, "save match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id":    matchID,
		"saved_count": len(stats),
	})
}
