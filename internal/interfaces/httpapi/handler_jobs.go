package httpapi

import (
	"net/http"
)

type recalcJobRequest struct {
	ClubID   string `json:"club_id" validate:"required"`
	SeasonID string `json:"season_id"`
}

type recalcAllJobRequest struct {
	MaxWorkers int `json:"max_workers" validate:"gte=0,lte=64"`
}

// RunRecalcJob is the QStash callback for a single-club recalculation.
// Per-match failures come back inside the summary with a 200 so the queue
// does not redeliver a job that mostly succeeded.
func (h *Handler) RunRecalcJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalcJob")
	defer span.End()

	var req recalcJobRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.aggregationService.RecalculateSeason(ctx, req.ClubID, req.SeasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalc job failed", "club_id", req.ClubID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recalc job finished",
		"club_id", summary.ClubID,
		"season_id", summary.SeasonID,
		"processed", summary.Processed,
		"total", summary.Total,
		"failed", len(summary.Errors),
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}

// RunRecalcAllJob recalculates every club's active season. An empty body is
// accepted and falls back to the default worker count.
func (h *Handler) RunRecalcAllJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalcAllJob")
	defer span.End()

	var req recalcAllJobRequest
	if r.ContentLength > 0 {
		if err := decodeRequest(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	maxWorkers := req.MaxWorkers
	if maxWorkers == 0 {
		maxWorkers = h.recalcMaxWorkers
	}

	summaries, err := h.aggregationService.RecalculateAllClubs(ctx, maxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalc-all job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaries)
}
