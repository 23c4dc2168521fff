package upstream

import (
	"context"
	"fmt"
	"net/http"

	"merchantdesk/internal/domain"
)

// NotificationsService reads server-side notification state. The local
// cache mirrors it; the server stays authoritative.
type NotificationsService struct {
	client *Client
}

func (s *NotificationsService) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	var out struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	path := "/notifications"
	if limit > 0 {
		path = fmt.Sprintf("/notifications?limit=%d", limit)
	}
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Notifications, nil
}

func (s *NotificationsService) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Unread int `json:"unread"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

func (s *NotificationsService) MarkRead(ctx context.Context, notificationID string) error {
	path := fmt.Sprintf("/notifications/%s/read", notificationID)
	return s.client.do(ctx, http.MethodPost, path, nil, nil)
}

func (s *NotificationsService) MarkAllRead(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil)
}
