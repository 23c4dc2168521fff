package catalog

import (
	"context"
	"fmt"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type Service struct {
	api     CatalogAPI
	session *auth.Session
}

func NewService(api CatalogAPI, session *auth.Session) *Service {
	return &Service{api: api, session: session}
}

func (s *Service) Services(ctx context.Context) ([]domain.CatalogService, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	services, err := s.api.Services(ctx, identity.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *Service) Requests(ctx context.Context) ([]domain.ServiceRequest, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	requests, err := s.api.Requests(ctx, identity.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return requests, nil
}

func (s *Service) CreateRequest(ctx context.Context, body ServiceRequestBody) (*domain.ServiceRequest, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	created, err := s.api.CreateRequest(ctx, identity.StoreID, upstream.ServiceRequestPayload{
		ServiceID: body.ServiceID,
		Payload:   body.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}
	return created, nil
}

// UpdateRequest edits a pending request. Approved or rejected requests are
// immutable history.
func (s *Service) UpdateRequest(ctx context.Context, requestID string, body ServiceRequestBody) (*domain.ServiceRequest, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	current, err := s.findRequest(ctx, identity.StoreID, requestID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.RequestPending {
		return nil, ErrNotPending
	}

	updated, err := s.api.UpdateRequest(ctx, identity.StoreID, requestID, upstream.ServiceRequestPayload{
		ServiceID: body.ServiceID,
		Payload:   body.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("update service request: %w", err)
	}
	return updated, nil
}

func (s *Service) WithdrawRequest(ctx context.Context, requestID string) error {
	identity, err := s.session.Current()
	if err != nil {
		return err
	}

	current, err := s.findRequest(ctx, identity.StoreID, requestID)
	if err != nil {
		return err
	}
	if current.Status != domain.RequestPending {
		return ErrNotPending
	}

	if err := s.api.WithdrawRequest(ctx, identity.StoreID, requestID); err != nil {
		return fmt.Errorf("withdraw service request: %w", err)
	}
	return nil
}

func (s *Service) findRequest(ctx context.Context, storeID, requestID string) (*domain.ServiceRequest, error) {
	requests, err := s.api.Requests(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	for i := range requests {
		if requests[i].ID == requestID {
			return &requests[i], nil
		}
	}
	return nil, ErrRequestNotFound
}
