package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.scoringService.ScoreMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "score match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

// Rescore scores the listed matches, or every completed match when the body
// is empty or lists none.
func (h *Handler) Rescore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Rescore")
	defer span.End()

	var req rescoreRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	var (
		reports []usecase.ScoreReport
		err     error
	)
	if len(req.MatchIDs) == 0 {
		reports, err = h.scoringService.RescoreCompleted(ctx)
	} else {
		reports, err = h.scoringService.ScoreMatches(ctx, req.MatchIDs)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "rescore failed", "match_ids", req.MatchIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"scored_matches": len(reports),
		"reports":        reports,
	})
}

// ScheduleScoreMatch queues a deferred ScoreMatch for the match.
func (h *Handler) ScheduleScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleScoreMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req scheduleScoreRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	job, err := h.scoringJobService.ScheduleScoreMatch(ctx, matchID, time.Duration(req.DelaySeconds)*time.Second)
	if err != nil {
		h.logger.WarnContext(ctx, "schedule score job failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, job)
}

// RunScoreMatchJob is the job queue callback for a scheduled ScoreMatch.
func (h *Handler) RunScoreMatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreMatchJob")
	defer span.End()

	var req scoreMatchJobRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.scoringService.ScoreMatch(ctx, req.MatchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "score job failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
