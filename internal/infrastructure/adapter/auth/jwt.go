package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

// Claims are the session claims issued by the identity provider
type Claims struct {
	SiteOwner bool   `json:"site_owner,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies HS256 session tokens of the hosted identity provider
type JWTAuthenticator struct {
	secret []byte
	issuer string
	logger core.Logger
}

var _ gateway.Authenticator = (*JWTAuthenticator)(nil)

// NewJWTAuthenticator creates a hosted-mode authenticator
func NewJWTAuthenticator(secret, issuer string, logger core.Logger) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Mode returns hosted
func (a *JWTAuthenticator) Mode() gateway.AuthMode {
	return gateway.AuthModeHosted
}

// Authenticate validates the bearer token and maps its claims to a principal
func (a *JWTAuthenticator) Authenticate(_ context.Context, credentials gateway.Credentials) (*entity.Principal, error) {
	tokenString := strings.TrimSpace(credentials.BearerToken)
	if tokenString == "" {
		return nil, errs.ErrAuthRequired
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, parserOpts...)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "expired"
		}
		a.logger.Debug("Rejected session token", map[string]any{"reason": reason, "error": err.Error()})
		return nil, fmt.Errorf("%w: %s token", errs.ErrAuthRequired, reason)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errs.ErrAuthRequired
	}

	return &entity.Principal{
		UserID:    claims.Subject,
		SiteOwner: claims.SiteOwner,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

// IssueToken signs a session token for a principal. Used by tooling and tests.
func IssueToken(secret, issuer string, principal entity.Principal, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		SiteOwner: principal.SiteOwner,
		Email:     principal.Email,
		Name:      principal.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
