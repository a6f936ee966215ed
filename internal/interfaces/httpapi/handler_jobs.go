package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func (h *Handler) RunRevaluePlayersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRevaluePlayersJob")
	defer span.End()

	if h.playerService == nil {
		writeError(ctx, w, fmt.Errorf("%w: player service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.playerService.RevalueAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "revalue players job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "revalue players job finished",
		"total", result.Total,
		"updated", result.Updated,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	writeSuccess(ctx, w, http.StatusOK, revaluationResultToDTO(result))
}
