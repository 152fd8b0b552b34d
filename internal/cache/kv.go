// Package cache implements the Redis-backed ephemeral stores: operator
// sessions, cached citizen profiles and per-meeting secrets. Values are JSON
// (or bare strings for the session mappings) and every key is built as
// "{namespace}:{identifier}".
package cache

import "errors"

// Key namespaces. The prefix keeps the stores from colliding in a shared
// Redis database.
const (
	nsRefreshToken = "refresh_token"
	nsUserSession  = "user_session"
	nsCitizen      = "citizen"
	nsMeeting      = "meeting"
)

// ErrNotFound is returned when a key is absent, which covers both "never
// written" and "expired" — Redis does not distinguish them.
var ErrNotFound = errors.New("cache: not found")

func key(ns, id string) string { return ns + ":" + id }
