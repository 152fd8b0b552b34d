package utils

import (
	"regexp"
	"strings"
)

// Wire-format patterns. The pin alphabet excludes I and O in both cases to
// avoid visually ambiguous codes; matching is case-insensitive and the value
// is canonicalized afterwards.
var (
	pinCodeRe  = regexp.MustCompile(`^[A-HJ-NP-Za-hj-np-z0-9]{7}$`)
	phoneRe    = regexp.MustCompile(`^994[0-9]{9}$`)
	otpRe      = regexp.MustCompile(`^[0-9]{6}$`)
	documentRe = regexp.MustCompile(`^(AA[0-9]{7}|AZE[0-9]{8})$`)
)

func ValidPinCode(s string) bool  { return pinCodeRe.MatchString(s) }
func ValidPhone(s string) bool    { return phoneRe.MatchString(s) }
func ValidOTP(s string) bool      { return otpRe.MatchString(s) }
func ValidDocument(s string) bool { return documentRe.MatchString(s) }

// CanonicalPin returns the uppercase form persisted in MySQL.
func CanonicalPin(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// CachePin returns the lowercase form used as the Redis cache key.
func CachePin(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
