package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the bidirectional user ↔ refresh-token mapping:
// user_session:{userID} -> tokenHash and refresh_token:{tokenHash} -> userID,
// always written together with the same TTL. At most one live refresh token
// exists per user; saving a new pair displaces the previous token first.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

// Save stores both mapping directions, deleting the user's previous
// refresh-token entry if one exists.
func (s *SessionStore) Save(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	old, err := s.rdb.Get(ctx, key(nsUserSession, userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if old != "" {
		if err := s.rdb.Del(ctx, key(nsRefreshToken, old)).Err(); err != nil {
			return err
		}
	}
	if err := s.rdb.Set(ctx, key(nsUserSession, userID), tokenHash, ttl).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(nsRefreshToken, tokenHash), userID, ttl).Err()
}

// UserIDByToken resolves a refresh-token hash to its user id. Unknown and
// expired tokens both come back as ErrNotFound.
func (s *SessionStore) UserIDByToken(ctx context.Context, tokenHash string) (string, error) {
	v, err := s.rdb.Get(ctx, key(nsRefreshToken, tokenHash)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Delete removes both mapping directions for the user. The returned bool
// reports whether a session existed.
func (s *SessionStore) Delete(ctx context.Context, userID string) (bool, error) {
	tokenHash, err := s.rdb.Get(ctx, key(nsUserSession, userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.rdb.Del(ctx, key(nsRefreshToken, tokenHash)).Err(); err != nil {
		return false, err
	}
	if err := s.rdb.Del(ctx, key(nsUserSession, userID)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
