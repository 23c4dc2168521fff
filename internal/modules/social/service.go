package social

import (
	"context"
	"fmt"
	"strings"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type Service struct {
	api     SocialAPI
	session *auth.Session
}

func NewService(api SocialAPI, session *auth.Session) *Service {
	return &Service{api: api, session: session}
}

func (s *Service) List(ctx context.Context) ([]domain.SocialLink, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	links, err := s.api.List(ctx, identity.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list socials: %w", err)
	}
	if links == nil {
		links = []domain.SocialLink{}
	}
	return links, nil
}

// Upsert replaces the link for a platform; the store holds at most one
// link per platform.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*domain.SocialLink, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if !knownPlatforms[platform] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, req.Platform)
	}

	link, err := s.api.Upsert(ctx, identity.StoreID, upstream.SocialLinkPayload{
		Platform: platform,
		URL:      req.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert social link: %w", err)
	}
	return link, nil
}

func (s *Service) Delete(ctx context.Context, socialID string) error {
	identity, err := s.session.Current()
	if err != nil {
		return err
	}

	if err := s.api.Delete(ctx, identity.StoreID, socialID); err != nil {
		if upstream.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete social link: %w", err)
	}
	return nil
}
