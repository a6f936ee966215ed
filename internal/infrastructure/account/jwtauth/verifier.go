package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

// Claims is the bearer token payload issued by the identity service.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens and turns them into principals.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	logger *logging.Logger
}

func NewVerifier(secret, issuer string, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
		logger: logger.Named("jwt_verifier"),
	}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if len(v.secret) == 0 {
		return user.Principal{}, fmt.Errorf("%w: token verification is not configured", usecase.ErrDependencyUnavailable)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		reason := rejectionReason(err)
		v.logger.DebugContext(ctx, "bearer token rejected", "reason", reason)
		return user.Principal{}, fmt.Errorf("%w: %s", usecase.ErrUnauthorized, reason)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}
	role, ok := user.ParseRole(claims.Role)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown role %q", usecase.ErrUnauthorized, claims.Role)
	}

	return user.Principal{
		UserID: subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

// Issue signs a token for principal. Production tokens come from the identity service;
// this backs the dev token command and tests.
func Issue(secret, issuer string, principal user.Principal, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "token is missing required claims"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "token issuer mismatch"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "token signature invalid"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "token malformed"
	default:
		return "invalid token"
	}
}
