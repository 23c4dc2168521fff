package upstream

import (
	"context"
	"fmt"
	"net/http"

	"merchantdesk/internal/domain"
)

// SocialsService manages the store's social-media links.
type SocialsService struct {
	client *Client
}

type SocialLinkPayload struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (s *SocialsService) List(ctx context.Context, storeID string) ([]domain.SocialLink, error) {
	var out struct {
		Socials []domain.SocialLink `json:"socials"`
	}
	path := fmt.Sprintf("/stores/%s/socials", storeID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Socials, nil
}

func (s *SocialsService) Upsert(ctx context.Context, storeID string, payload SocialLinkPayload) (*domain.SocialLink, error) {
	var out struct {
		Social domain.SocialLink `json:"social"`
	}
	path := fmt.Sprintf("/stores/%s/socials", storeID)
	if err := s.client.do(ctx, http.MethodPut, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Social, nil
}

func (s *SocialsService) Delete(ctx context.Context, storeID, socialID string) error {
	path := fmt.Sprintf("/stores/%s/socials/%s", storeID, socialID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
