package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoomTokenConfig carries the signing parameters the video room provider
// expects (Jitsi-style JWT auth).
type RoomTokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Subject  string
	Group    string
	TTLHours int
}

// RoomIdentity is the display identity embedded in a room token. Operators
// join as moderators; citizens do not.
type RoomIdentity struct {
	Moderator bool
	Name      string
	Username  string
}

// NewRoomToken signs an HS256 token accepted by the video room provider. The
// room claim is the meeting id, so a token grants entry to exactly one room.
func NewRoomToken(cfg RoomTokenConfig, roomID string, id RoomIdentity) (string, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(cfg.TTLHours) * time.Hour)
	claims := jwt.MapClaims{
		"context": map[string]interface{}{
			"moderator": id.Moderator,
			"name":      id.Name,
			"username":  id.Username,
			"group":     cfg.Group,
		},
		"iss":  cfg.Issuer,
		"aud":  cfg.Audience,
		"sub":  cfg.Subject,
		"room": roomID,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.Secret))
}
