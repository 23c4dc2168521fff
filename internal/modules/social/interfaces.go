package social

import (
	"context"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type SocialAPI interface {
	List(ctx context.Context, storeID string) ([]domain.SocialLink, error)
	Upsert(ctx context.Context, storeID string, payload upstream.SocialLinkPayload) (*domain.SocialLink, error)
	Delete(ctx context.Context, storeID, socialID string) error
}
