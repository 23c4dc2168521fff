package upstream

import (
	"context"
	"fmt"
	"net/http"

	"merchantdesk/internal/domain"
)

// BranchesService manages the store's physical locations.
type BranchesService struct {
	client *Client
}

type BranchPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

func (s *BranchesService) List(ctx context.Context, storeID string) ([]domain.Branch, error) {
	var out struct {
		Branches []domain.Branch `json:"branches"`
	}
	path := fmt.Sprintf("/stores/%s/branches", storeID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Branches, nil
}

func (s *BranchesService) Create(ctx context.Context, storeID string, payload BranchPayload) (*domain.Branch, error) {
	var out struct {
		Branch domain.Branch `json:"branch"`
	}
	path := fmt.Sprintf("/stores/%s/branches", storeID)
	if err := s.client.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Branch, nil
}

func (s *BranchesService) Update(ctx context.Context, storeID, branchID string, payload BranchPayload) (*domain.Branch, error) {
	var out struct {
		Branch domain.Branch `json:"branch"`
	}
	path := fmt.Sprintf("/stores/%s/branches/%s", storeID, branchID)
	if err := s.client.do(ctx, http.MethodPut, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Branch, nil
}

func (s *BranchesService) Delete(ctx context.Context, storeID, branchID string) error {
	path := fmt.Sprintf("/stores/%s/branches/%s", storeID, branchID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
