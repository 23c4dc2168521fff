package upstream

import (
	"context"
	"fmt"
	"net/http"

	"merchantdesk/internal/domain"
)

// StoresService reads the merchant's storefront profile.
type StoresService struct {
	client *Client
}

func (s *StoresService) Profile(ctx context.Context) (*domain.Store, error) {
	var store domain.Store
	if err := s.client.do(ctx, http.MethodGet, "/stores/me", nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// StoreCategories returns the distinct service categories of one store,
// used to pick the realtime category rooms to join.
func (s *StoresService) StoreCategories(ctx context.Context, storeID string) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	path := fmt.Sprintf("/stores/%s/categories", storeID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Categories, nil
}
