package auth

import (
	"context"

	"merchantdesk/internal/upstream"
)

type SignInAPI interface {
	SignIn(ctx context.Context, email, password string) (*upstream.SignInResponse, error)
}

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	Save(token string) error
	Clear() error
}
