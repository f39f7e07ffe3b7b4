package api

import "errors"

var (
	// ErrSessionExpired is returned by AuthorizedRequest when a 401 could
	// not be recovered by a token refresh. The registered session-expired
	// callback has already fired by the time a caller sees this.
	ErrSessionExpired = errors.New("session expired")

	// ErrMissingRefreshToken means a refresh was needed but no refresh
	// token is stored.
	ErrMissingRefreshToken = errors.New("missing refresh token")
)
