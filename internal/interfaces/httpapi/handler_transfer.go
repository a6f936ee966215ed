package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func (h *Handler) InitiateTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitiateTransfer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req initiateTransferRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.transferService.InitiateTransfer(ctx, usecase.InitiateTransferInput{
		ActorID:            principal.UserID,
		PlayerID:           req.PlayerID,
		FromClubID:         req.FromClubID,
		ToClubID:           req.ToClubID,
		TransferType:       req.TransferType,
		LoanDurationMonths: req.LoanDurationMonths,
		AskingPrice:        req.AskingPrice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "initiate transfer failed", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, transferToDTO(created))
}

func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTransfer")
	defer span.End()

	transferID := strings.TrimSpace(r.PathValue("transferID"))
	item, err := h.transferService.GetTransfer(ctx, transferID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferToDTO(item))
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	page, err := parseOptionalPositiveInt(r, "page")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseOptionalPositiveInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.transferService.ListTransfers(ctx, usecase.ListTransfersInput{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list transfers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferPageToDTO(result))
}

func (h *Handler) SubmitNegotiation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitNegotiation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitNegotiationRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	transferID := strings.TrimSpace(r.PathValue("transferID"))
	updated, err := h.transferService.SubmitNegotiation(ctx, usecase.SubmitNegotiationInput{
		TransferID:    transferID,
		ActorID:       principal.UserID,
		ProposedPrice: req.ProposedPrice,
		Message:       req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit negotiation failed", "transfer_id", transferID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, transferToDTO(updated))
}

func (h *Handler) AcceptNegotiation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptNegotiation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transferID := strings.TrimSpace(r.PathValue("transferID"))
	negotiationID := strings.TrimSpace(r.PathValue("negotiationID"))
	updated, err := h.transferService.AcceptNegotiation(ctx, usecase.AcceptNegotiationInput{
		TransferID:    transferID,
		NegotiationID: negotiationID,
		ActorID:       principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "accept negotiation failed",
			"transfer_id", transferID,
			"negotiation_id", negotiationID,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferToDTO(updated))
}

func (h *Handler) UpdateTransferStatus(w http.ResponseWriter, r *http.Request) {
	h.changeTransferStatus(w, r, "httpapi.Handler.UpdateTransferStatus", h.transferService.UpdateStatus)
}

func (h *Handler) TransitionTransfer(w http.ResponseWriter, r *http.Request) {
	h.changeTransferStatus(w, r, "httpapi.Handler.TransitionTransfer", h.transferService.TransitionStatus)
}

func (h *Handler) changeTransferStatus(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	change func(ctx context.Context, input usecase.ChangeTransferStatusInput) (transfer.Transfer, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req changeTransferStatusRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	transferID := strings.TrimSpace(r.PathValue("transferID"))
	updated, err := change(ctx, usecase.ChangeTransferStatusInput{
		TransferID: transferID,
		ActorID:    principal.UserID,
		Status:     req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "change transfer status failed",
			"transfer_id", transferID,
			"status", req.Status,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferToDTO(updated))
}
