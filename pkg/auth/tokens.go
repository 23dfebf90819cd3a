package auth

import (
	"context"
	"time"
)

// TokenIssuer abstracts session token creation and parsing (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(ctx context.Context, user User, sessionID string, now time.Time) (token string, expiresAt time.Time, err error)
	// Parse returns ErrNoSession for malformed, foreign or expired tokens.
	Parse(token string) (Session, error)
}
