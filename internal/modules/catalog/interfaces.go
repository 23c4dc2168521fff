package catalog

import (
	"context"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type CatalogAPI interface {
	Services(ctx context.Context, storeID string) ([]domain.CatalogService, error)
	Requests(ctx context.Context, storeID string) ([]domain.ServiceRequest, error)
	CreateRequest(ctx context.Context, storeID string, payload upstream.ServiceRequestPayload) (*domain.ServiceRequest, error)
	UpdateRequest(ctx context.Context, storeID, requestID string, payload upstream.ServiceRequestPayload) (*domain.ServiceRequest, error)
	WithdrawRequest(ctx context.Context, storeID, requestID string) error
}
