package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"merchantdesk/internal/domain"
)

// BookingsService reads and updates the store's booking list.
type BookingsService struct {
	client *Client
}

type BookingFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

func (f BookingFilter) query() string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.Format(time.RFC3339))
	}
	if f.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", f.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s *BookingsService) List(ctx context.Context, storeID string, filter BookingFilter) ([]domain.Booking, error) {
	var out struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	path := fmt.Sprintf("/stores/%s/bookings%s", storeID, filter.query())
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Bookings, nil
}

func (s *BookingsService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	path := fmt.Sprintf("/bookings/%s", bookingID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

func (s *BookingsService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	body := map[string]string{"status": string(status)}
	if reason != "" {
		body["reason"] = reason
	}
	path := fmt.Sprintf("/bookings/%s/status", bookingID)
	if err := s.client.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}
