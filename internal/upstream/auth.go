package upstream

import (
	"context"
	"net/http"

	"merchantdesk/internal/domain"
)

// AuthService exchanges merchant credentials for a bearer token.
type AuthService struct {
	client *Client
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"identity"`
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var out SignInResponse
	req := SignInRequest{Email: email, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "/auth/sign-in", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
