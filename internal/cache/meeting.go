package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/egovmeet/video-verification/internal/model"
)

// MeetingSecretStore persists the ephemeral per-meeting record (OTP plus
// citizen snapshot) under the meeting id. The TTL is derived from the meeting
// deadline, so stale unattended meetings clean themselves up.
type MeetingSecretStore struct {
	rdb *redis.Client
}

func NewMeetingSecretStore(rdb *redis.Client) *MeetingSecretStore {
	return &MeetingSecretStore{rdb: rdb}
}

// Set stores the secret with the given TTL. A non-positive TTL means the
// meeting deadline has already passed; the secret is not written at all, so
// citizen join fails the same way it does after natural expiry.
func (m *MeetingSecretStore) Set(ctx context.Context, meetingID string, sec model.MeetingSecret, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(sec)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, key(nsMeeting, meetingID), raw, ttl).Err()
}

// Get returns the secret for a meeting, or ErrNotFound if it never existed,
// expired, or was deleted on finish.
func (m *MeetingSecretStore) Get(ctx context.Context, meetingID string) (model.MeetingSecret, error) {
	raw, err := m.rdb.Get(ctx, key(nsMeeting, meetingID)).Result()
	if err == redis.Nil {
		return model.MeetingSecret{}, ErrNotFound
	}
	if err != nil {
		return model.MeetingSecret{}, err
	}
	var sec model.MeetingSecret
	if err := json.Unmarshal([]byte(raw), &sec); err != nil {
		return model.MeetingSecret{}, err
	}
	return sec, nil
}

// Delete removes the secret. Deleting an absent key is not an error.
func (m *MeetingSecretStore) Delete(ctx context.Context, meetingID string) error {
	return m.rdb.Del(ctx, key(nsMeeting, meetingID)).Err()
}
