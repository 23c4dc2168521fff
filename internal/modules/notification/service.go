package notification

import (
	"context"
	"fmt"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
)

type Service struct {
	api     NotificationAPI
	cache   Cache
	center  Center
	session *auth.Session
}

func NewService(api NotificationAPI, cache Cache, center Center, session *auth.Session) *Service {
	return &Service{api: api, cache: cache, center: center, session: session}
}

// List serves from the local cache and falls back to REST when the
// cache is empty, backfilling it for the next call.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	cached, err := s.cache.List(ctx, limit)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	remote, err := s.api.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	for _, n := range remote {
		if putErr := s.cache.Put(ctx, n); putErr != nil {
			break
		}
	}
	return remote, nil
}

func (s *Service) Unread() (int, error) {
	if _, err := s.session.Current(); err != nil {
		return 0, err
	}
	return s.center.Unread(), nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	if _, err := s.session.Current(); err != nil {
		return err
	}
	if err := s.center.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead pauses live delivery so notifications arriving mid-sweep
// do not land already counted against the fresh zero.
func (s *Service) MarkAllRead(ctx context.Context) error {
	if _, err := s.session.Current(); err != nil {
		return err
	}

	s.center.Pause()
	defer s.center.Resume()

	if err := s.center.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
