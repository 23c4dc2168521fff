package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          string        `json:"id"`
	StoreID     string        `json:"store_id"`
	BranchID    string        `json:"branch_id,omitempty"`
	ServiceID   string        `json:"service_id"`
	ServiceName string        `json:"service_name,omitempty"`
	Customer    *Party        `json:"customer,omitempty"`
	Status      BookingStatus `json:"status"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	TotalPrice  float64       `json:"total_price"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}
