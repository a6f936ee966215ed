package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func (h *Handler) GetPlayerValuation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerValuation")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	valuation, err := h.playerService.GetValuation(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, valuationToDTO(valuation))
}

func (h *Handler) AddPlayerStatistic(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayerStatistic")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addSeasonStatisticRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	updated, err := h.playerService.AddSeasonStatistic(ctx, usecase.AddSeasonStatisticInput{
		PlayerID:  playerID,
		Statistic: player.SeasonStatistic(req),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player statistic failed", "player_id", playerID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(updated))
}
