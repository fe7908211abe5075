package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidRoleProvided = errors.New("invalid role provided")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
