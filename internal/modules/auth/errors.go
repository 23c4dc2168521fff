package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongRole          = errors.New("account is not a merchant account")
)
