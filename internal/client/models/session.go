package models

import "time"

// Session is one authenticated login: the access/refresh token pair and the
// access token's expiry. It lives encrypted in the local vault and is
// replaced in place on refresh and destroyed on logout.
type Session struct {
	AccessToken  string
	RefreshToken string

	// ExpiresAt is the access token expiry in UTC. Zero when unknown
	// (e.g. the token carried no exp claim).
	ExpiresAt time.Time
}

// Expired reports whether the access token is known to be past its expiry.
// An unknown expiry is treated as not expired; the server gets to decide.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
