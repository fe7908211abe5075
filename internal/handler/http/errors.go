package http

import "errors"

// Sentinel errors used by the session middleware when extracting the token
// from an incoming request. Callers can match against them with errors.Is.
var (
	// ErrNoSessionToken is returned when the request carries neither a
	// session cookie nor an "Authorization" header.
	ErrNoSessionToken = errors.New("no session token in request")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two
	// space-separated parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the token value extracted from the
	// cookie or header is an empty string.
	ErrEmptyToken = errors.New("empty session token")
)
