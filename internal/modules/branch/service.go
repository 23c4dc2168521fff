package branch

import (
	"context"
	"fmt"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

// MainBranchID is the synthetic identifier of the implicit main branch.
// The store's own address acts as a branch that exists without ever being
// created and cannot be removed.
const MainBranchID = "main"

type Service struct {
	branches BranchAPI
	stores   StoreAPI
	session  *auth.Session
}

func NewService(branches BranchAPI, stores StoreAPI, session *auth.Session) *Service {
	return &Service{branches: branches, stores: stores, session: session}
}

// List returns the implicit main branch first, then the explicit branches.
func (s *Service) List(ctx context.Context) ([]domain.Branch, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	store, err := s.stores.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store profile: %w", err)
	}

	branches, err := s.branches.List(ctx, identity.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	out := make([]domain.Branch, 0, len(branches)+1)
	out = append(out, domain.Branch{
		ID:      MainBranchID,
		StoreID: store.ID,
		Name:    store.Name,
		Address: store.Address,
		Phone:   store.Phone,
		IsMain:  true,
		Active:  true,
	})
	out = append(out, branches...)
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateBranchRequest) (*domain.Branch, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	created, err := s.branches.Create(ctx, identity.StoreID, upstream.BranchPayload{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, branchID string, req UpdateBranchRequest) (*domain.Branch, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	// The main branch mirrors the store profile and is edited there.
	if branchID == MainBranchID {
		return nil, ErrMainBranch
	}

	updated, err := s.branches.Update(ctx, identity.StoreID, branchID, upstream.BranchPayload{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update branch: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, branchID string) error {
	identity, err := s.session.Current()
	if err != nil {
		return err
	}

	if branchID == MainBranchID {
		return ErrMainBranch
	}

	if err := s.branches.Delete(ctx, identity.StoreID, branchID); err != nil {
		if upstream.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}
