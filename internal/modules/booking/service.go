package booking

import (
	"context"
	"fmt"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type Service struct {
	api     BookingAPI
	session *auth.Session
}

func NewService(api BookingAPI, session *auth.Session) *Service {
	return &Service{api: api, session: session}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Booking, error) {
	identity, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrValidation)
	}

	bookings, err := s.api.List(ctx, identity.StoreID, upstream.BookingFilter{
		Status: filter.Status,
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}

	b, err := s.api.Get(ctx, bookingID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, "")
}

// Cancel is allowed from pending or confirmed and carries an optional
// reason shown to the customer.
func (s *Service) Cancel(ctx context.Context, bookingID, reason string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingCancelled, reason)
}

func (s *Service) transition(ctx context.Context, bookingID string, target domain.BookingStatus, reason string) (*domain.Booking, error) {
	current, err := s.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !allowed(current.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
	}

	updated, err := s.api.UpdateStatus(ctx, bookingID, target, reason)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return updated, nil
}

func allowed(from, to domain.BookingStatus) bool {
	switch to {
	case domain.BookingConfirmed:
		return from == domain.BookingPending
	case domain.BookingCancelled:
		return from == domain.BookingPending || from == domain.BookingConfirmed
	case domain.BookingCompleted:
		return from == domain.BookingConfirmed
	}
	return false
}
