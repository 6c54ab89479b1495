package model

import "time"

// SessionToken is an opaque high-entropy token identifying an
// authenticated session
type SessionToken string

// Session associates a token with an authenticated username. A session
// past its expiry is logically absent even if not yet swept from storage.
type Session struct {
	Token     SessionToken
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
