package auth

import (
	"context"
	"fmt"

	sessionauth "merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type Service struct {
	api     SignInAPI
	tokens  TokenStore
	session *sessionauth.Session

	// onSignIn brings the realtime channels up, onSignOut tears them
	// down. Both optional.
	onSignIn  func(domain.Identity)
	onSignOut func()
}

func NewService(api SignInAPI, tokens TokenStore, session *sessionauth.Session, onSignIn func(domain.Identity), onSignOut func()) *Service {
	return &Service{
		api:       api,
		tokens:    tokens,
		session:   session,
		onSignIn:  onSignIn,
		onSignOut: onSignOut,
	}
}

// SignIn exchanges credentials upstream, checks the returned token really
// is merchant-typed and persists it encrypted.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (domain.Identity, error) {
	resp, err := s.api.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if upstream.IsAuthError(err) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("sign in: %w", err)
	}

	claims, err := sessionauth.ValidateToken(resp.Token, domain.UserMerchant)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrWrongRole, err)
	}

	identity := resp.Identity
	if identity.UserID == "" {
		identity.UserID = claims.UserID
	}
	if identity.UserType == "" {
		identity.UserType = claims.Type
	}

	if err := s.tokens.Save(resp.Token); err != nil {
		return domain.Identity{}, fmt.Errorf("persist token: %w", err)
	}

	s.session.Set(identity)
	if s.onSignIn != nil {
		s.onSignIn(identity)
	}
	return identity, nil
}

// SignOut clears credentials and session state and drops the realtime
// connections.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	s.session.Clear()
	if s.onSignOut != nil {
		s.onSignOut()
	}
	return nil
}

func (s *Service) Current() (domain.Identity, error) {
	return s.session.Current()
}
