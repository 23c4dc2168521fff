package domain

import "time"

type ServiceRequestStatus string

const (
	RequestPending   ServiceRequestStatus = "pending"
	RequestApproved  ServiceRequestStatus = "approved"
	RequestRejected  ServiceRequestStatus = "rejected"
	RequestWithdrawn ServiceRequestStatus = "withdrawn"
)

// CatalogService is one published entry of the merchant's service catalog.
type CatalogService struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration_minutes,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceRequest is a pending catalog change awaiting marketplace approval.
type ServiceRequest struct {
	ID        string               `json:"id"`
	StoreID   string               `json:"store_id"`
	ServiceID string               `json:"service_id,omitempty"`
	Payload   map[string]any       `json:"payload,omitempty"`
	Status    ServiceRequestStatus `json:"status"`
	Reason    string               `json:"reason,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
