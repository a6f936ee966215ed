package httpapi

import (
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
)

var (
	negotiatorRoles = []user.Role{user.RoleClubManager, user.RoleAgent, user.RoleAdmin}
	deciderRoles    = []user.Role{user.RoleClubManager, user.RoleAdmin}
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{playerID}/valuation", handler.GetPlayerValuation)
}

func registerAuthorizedTransferRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/transfers", RequireAuth(verifier, http.HandlerFunc(handler.ListTransfers)))
	mux.Handle("GET /v1/transfers/{transferID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTransfer)))
	mux.Handle("POST /v1/transfers", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.InitiateTransfer), negotiatorRoles...)))
	mux.Handle("POST /v1/transfers/{transferID}/negotiations", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.SubmitNegotiation), negotiatorRoles...)))
	mux.Handle("PUT /v1/transfers/{transferID}/negotiations/{negotiationID}/accept", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.AcceptNegotiation), deciderRoles...)))
	// Administrative override: any status to any status, audited.
	mux.Handle("PUT /v1/transfers/{transferID}/status", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.UpdateTransferStatus), deciderRoles...)))
	mux.Handle("POST /v1/transfers/{transferID}/transitions", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.TransitionTransfer), deciderRoles...)))
}

func registerAuthorizedPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players/{playerID}/statistics", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayerStatistic)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/revalue-players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRevaluePlayersJob)))
}
