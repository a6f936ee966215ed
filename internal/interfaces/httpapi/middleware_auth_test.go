package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
)

func principalEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatalf("expected principal in request context")
		}
		w.Header().Set("X-User-ID", principal.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuth(t *testing.T) {
	verifier := staticVerifier{"good": {UserID: "user-1", Role: user.RoleAgent}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "bearer good", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/transfers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(verifier, principalEcho(t)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d body=%s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusNoContent && rec.Header().Get("X-User-ID") != "user-1" {
				t.Fatalf("expected principal user-1, got %q", rec.Header().Get("X-User-ID"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole(next, user.RoleClubManager, user.RoleAdmin)

	t.Run("no principal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/transfers", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d want=401", rec.Code)
		}
	})

	t.Run("role not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/transfers", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "scout-1", Role: user.RoleScout}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status=%d want=403", rec.Code)
		}
	})

	t.Run("role allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/transfers", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "admin-1", Role: user.RoleAdmin}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status=%d want=204", rec.Code)
		}
	})
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: "", provided: "anything", wantStatus: http.StatusServiceUnavailable},
		{name: "missing header", configured: "secret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "guess", wantStatus: http.StatusUnauthorized},
		{name: "matching token", configured: "secret", provided: "secret", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/revalue-players", nil)
			if tt.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tt.provided)
			}
			rec := httptest.NewRecorder()

			RequireInternalJobToken(tt.configured, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
		})
	}
}
