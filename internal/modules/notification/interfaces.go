package notification

import (
	"context"

	"merchantdesk/internal/domain"
)

type NotificationAPI interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// Cache is the local mirror queried before falling back to REST.
type Cache interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
	Put(ctx context.Context, n domain.Notification) error
}

// Center is the live notification hub: unread counter, read receipts
// and delivery pause during bulk operations.
type Center interface {
	Unread() int
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Pause()
	Resume()
}
