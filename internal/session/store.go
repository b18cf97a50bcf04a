package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a refresh token has no live session entry.
var ErrNotFound = errors.New("session not found")

// Store maps an opaque refresh-token string to the identity email it was
// issued for. An entry existing is the sole proof the refresh token is still
// live; logout or TTL expiry removes it and the token is permanently dead.
type Store interface {
	// Put creates or overwrites the mapping for a refresh token.
	Put(ctx context.Context, refreshToken, email string, ttl time.Duration) error
	// Get returns the email recorded for a refresh token, or ErrNotFound.
	Get(ctx context.Context, refreshToken string) (string, error)
	// Delete removes the mapping. It returns ErrNotFound when there was no
	// entry, so callers can tell "already logged out" from "logged out now".
	Delete(ctx context.Context, refreshToken string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
}

// Key namespaces a refresh token in the backing store.
func Key(refreshToken string) string {
	return "session:" + refreshToken
}
