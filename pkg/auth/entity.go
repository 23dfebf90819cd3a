package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity known to the service. Its ID is also the owner id of
// every portfolio record.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is one signed-in browser or client. SessionID is the token's jti.
type Session struct {
	UserID    uuid.UUID `json:"userId"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Result is returned by sign-up and sign-in.
type Result struct {
	User    User
	Token   string
	Session Session
}
