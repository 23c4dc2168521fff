package branch

import (
	"context"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type BranchAPI interface {
	List(ctx context.Context, storeID string) ([]domain.Branch, error)
	Create(ctx context.Context, storeID string, payload upstream.BranchPayload) (*domain.Branch, error)
	Update(ctx context.Context, storeID, branchID string, payload upstream.BranchPayload) (*domain.Branch, error)
	Delete(ctx context.Context, storeID, branchID string) error
}

type StoreAPI interface {
	Profile(ctx context.Context) (*domain.Store, error)
}
