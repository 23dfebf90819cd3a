package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SessionRevoker implements auth.Revoker with one key per signed-out session
// that expires together with the token.
type SessionRevoker struct {
	client *goredis.Client
	now    func() time.Time
}

func NewSessionRevoker(client *goredis.Client) *SessionRevoker {
	return &SessionRevoker{client: client, now: time.Now}
}

func revokedKey(sessionID string) string {
	return keyPrefix + "revoked:" + sessionID
}

func (r *SessionRevoker) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(sessionID), 1, ttl).Err()
}

func (r *SessionRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
