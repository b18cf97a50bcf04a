package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/session"
)

var (
	// ErrTokenInvalid means the token failed signature or claim validation.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the token's signed expiry window has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrUnrecognized means the refresh token has no live session entry.
	ErrUnrecognized = errors.New("refresh token not recognized")
	// ErrIdentityMismatch means the refresh token's embedded identity does not
	// match the session record it was presented against.
	ErrIdentityMismatch = errors.New("refresh token identity mismatch")
)

// TokenService issues and validates the service's HS256 tokens. Access and
// refresh tokens are signed with distinct secrets; refresh-token liveness is
// backed by the session store.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	sessions      session.Store
}

// NewTokenService creates a token service
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, sessions session.Store) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		sessions:      sessions,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime. Session entries
// use the same TTL so a refresh token and its session expire together.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken signs the identity into a short-lived access token.
func (s *TokenService) IssueAccessToken(identity models.Identity) (string, error) {
	return sign(identity, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs the identity into a refresh token. The caller is
// responsible for registering the token in the session store.
func (s *TokenService) IssueRefreshToken(identity models.Identity) (string, error) {
	return sign(identity, s.refreshSecret, s.refreshTTL)
}

// VerifyAccessToken checks signature and expiry of an access token and
// returns the embedded identity. It never consults the session store.
func (s *TokenService) VerifyAccessToken(token string) (*models.Identity, error) {
	return verify(token, s.accessSecret)
}

// VerifyRefreshToken checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefreshToken(token string) (*models.Identity, error) {
	return verify(token, s.refreshSecret)
}

// RotateAccessToken mints a fresh access token for a live refresh token. The
// refresh token itself is not rotated; it serves the whole session until
// logout or natural expiry. Any session-store failure is treated as the token
// not being recognized — rotation fails closed.
func (s *TokenService) RotateAccessToken(ctx context.Context, refreshToken string) (string, error) {
	email, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Error().Err(err).Msg("Session store lookup failed during rotation")
		}
		return "", ErrUnrecognized
	}

	identity, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if identity.Email != email {
		return "", ErrIdentityMismatch
	}

	return s.IssueAccessToken(*identity)
}

func sign(identity models.Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := models.Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func verify(tokenString string, secret []byte) (*models.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims.Identity, nil
}
