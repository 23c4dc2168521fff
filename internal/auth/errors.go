package auth

import "errors"

var (
	ErrNoToken        = errors.New("no authentication token available")
	ErrMalformedToken = errors.New("token is not a well-formed JWT")
	ErrMissingExpiry  = errors.New("token has no exp claim")
	ErrExpiredToken   = errors.New("token is expired")
	ErrRoleMismatch   = errors.New("token type does not match acting role")
)
