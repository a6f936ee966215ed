package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

const (
	testSecret = "test-secret"
	testIssuer = "transfer-market-identity"
)

func TestVerifyAccessTokenReturnsPrincipal(t *testing.T) {
	token, err := Issue(testSecret, testIssuer, user.Principal{
		UserID: "user-123",
		Email:  "manager@example.com",
		Role:   user.RoleClubManager,
	}, time.Hour, time.Now())
	require.NoError(t, err)

	principal, err := NewVerifier(testSecret, testIssuer, nil).VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
	assert.Equal(t, "manager@example.com", principal.Email)
	assert.Equal(t, user.RoleClubManager, principal.Role)
}

func TestVerifyAccessTokenRejections(t *testing.T) {
	now := time.Now()
	valid := user.Principal{UserID: "user-123", Role: user.RoleAgent}

	expired, err := Issue(testSecret, testIssuer, valid, time.Minute, now.Add(-2*time.Hour))
	require.NoError(t, err)
	wrongSecret, err := Issue("other-secret", testIssuer, valid, time.Hour, now)
	require.NoError(t, err)
	wrongIssuer, err := Issue(testSecret, "someone-else", valid, time.Hour, now)
	require.NoError(t, err)
	unknownRole, err := Issue(testSecret, testIssuer, user.Principal{UserID: "user-123", Role: "owner"}, time.Hour, now)
	require.NoError(t, err)
	noSubject, err := Issue(testSecret, testIssuer, user.Principal{Role: user.RoleAdmin}, time.Hour, now)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             string(user.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123", Issuer: testIssuer},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: string(user.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: "  "},
		{name: "malformed", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "unknown role", token: unknownRole},
		{name: "missing subject", token: noSubject},
		{name: "missing expiry", token: noExpiry},
		{name: "alg none", token: noneAlg},
	}

	verifier := NewVerifier(testSecret, testIssuer, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.VerifyAccessToken(context.Background(), tc.token)
			require.ErrorIs(t, err, usecase.ErrUnauthorized)
		})
	}
}

func TestVerifyAccessTokenWithoutSecret(t *testing.T) {
	_, err := NewVerifier("", "", nil).VerifyAccessToken(context.Background(), "anything")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}
