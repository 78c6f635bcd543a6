// Package session provides storage backends for refresh tokens. The
// engine keeps no session state of its own; whoever holds a valid token
// is the viewing context.
package session

import (
	"context"
	"time"
)

// TokenData holds the data stored for each refresh token.
type TokenData struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is implemented by the Redis backend and the in-process fallback.
type Store interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID, role string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (TokenData, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
	Close() error
}
