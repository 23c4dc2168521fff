package upstream

import (
	"context"
	"fmt"
	"net/http"

	"merchantdesk/internal/domain"
)

// CatalogService manages the published service list and the pending
// change requests awaiting marketplace approval.
type CatalogService struct {
	client *Client
}

type ServiceRequestPayload struct {
	ServiceID string         `json:"service_id,omitempty"`
	Payload   map[string]any `json:"payload"`
}

func (s *CatalogService) Services(ctx context.Context, storeID string) ([]domain.CatalogService, error) {
	var out struct {
		Services []domain.CatalogService `json:"services"`
	}
	path := fmt.Sprintf("/stores/%s/services", storeID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Services, nil
}

func (s *CatalogService) Requests(ctx context.Context, storeID string) ([]domain.ServiceRequest, error) {
	var out struct {
		Requests []domain.ServiceRequest `json:"requests"`
	}
	path := fmt.Sprintf("/stores/%s/service-requests", storeID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Requests, nil
}

func (s *CatalogService) CreateRequest(ctx context.Context, storeID string, payload ServiceRequestPayload) (*domain.ServiceRequest, error) {
	var out struct {
		Request domain.ServiceRequest `json:"request"`
	}
	path := fmt.Sprintf("/stores/%s/service-requests", storeID)
	if err := s.client.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

func (s *CatalogService) UpdateRequest(ctx context.Context, storeID, requestID string, payload ServiceRequestPayload) (*domain.ServiceRequest, error) {
	var out struct {
		Request domain.ServiceRequest `json:"request"`
	}
	path := fmt.Sprintf("/stores/%s/service-requests/%s", storeID, requestID)
	if err := s.client.do(ctx, http.MethodPut, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

func (s *CatalogService) WithdrawRequest(ctx context.Context, storeID, requestID string) error {
	path := fmt.Sprintf("/stores/%s/service-requests/%s", storeID, requestID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
