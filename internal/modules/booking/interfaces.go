package booking

import (
	"context"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type BookingAPI interface {
	List(ctx context.Context, storeID string, filter upstream.BookingFilter) ([]domain.Booking, error)
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error)
}
