package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"merchantdesk/internal/domain"
)

const defaultCap = 200

// NotificationCache keeps a bounded rolling copy of the notification list.
// It is a cache of server state: entries beyond the cap are evicted oldest
// first, and nothing here is ever the source of truth.
type NotificationCache struct {
	db  *gorm.DB
	cap int
}

type notificationRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Type       string    `gorm:"column:type"`
	Title      string    `gorm:"column:title"`
	Message    string    `gorm:"column:message"`
	Priority   string    `gorm:"column:priority"`
	Read       bool      `gorm:"column:read"`
	Data       string    `gorm:"column:data"`
	Sender     string    `gorm:"column:sender"`
	Store      string    `gorm:"column:store"`
	ActionURL  string    `gorm:"column:action_url"`
	ActionType string    `gorm:"column:action_type"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (notificationRow) TableName() string { return "notifications" }

func NewNotificationCache(db *gorm.DB, capacity int) (*NotificationCache, error) {
	if capacity <= 0 {
		capacity = defaultCap
	}
	if err := db.AutoMigrate(&notificationRow{}); err != nil {
		return nil, fmt.Errorf("migrate notification cache: %w", err)
	}
	return &NotificationCache{db: db, cap: capacity}, nil
}

// Put upserts one notification and evicts beyond the capacity.
func (c *NotificationCache) Put(ctx context.Context, n domain.Notification) error {
	row, err := toRow(n)
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("cache notification: %w", err)
	}

	return c.evict(ctx)
}

func (c *NotificationCache) evict(ctx context.Context) error {
	sub := c.db.WithContext(ctx).
		Model(&notificationRow{}).
		Select("id").
		Order("created_at DESC").
		Limit(c.cap)

	return c.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Delete(&notificationRow{}).Error
}

func (c *NotificationCache) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > c.cap {
		limit = c.cap
	}

	var rows []notificationRow
	err := c.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cached notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, fromRow(rows[i]))
	}
	return out, nil
}

func (c *NotificationCache) Unread(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}

func (c *NotificationCache) MarkRead(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (c *NotificationCache) MarkAllRead(ctx context.Context) error {
	return c.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("read = ?", false).
		Update("read", true).Error
}

func toRow(n domain.Notification) (notificationRow, error) {
	row := notificationRow{
		ID:         n.ID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		Priority:   string(n.Priority),
		Read:       n.Read,
		ActionURL:  n.ActionURL,
		ActionType: n.ActionType,
		CreatedAt:  n.CreatedAt,
	}

	var err error
	if row.Data, err = marshalField(n.Data); err != nil {
		return row, err
	}
	if row.Sender, err = marshalField(n.Sender); err != nil {
		return row, err
	}
	if row.Store, err = marshalField(n.Store); err != nil {
		return row, err
	}
	return row, nil
}

func fromRow(row notificationRow) domain.Notification {
	n := domain.Notification{
		ID:         row.ID,
		Type:       domain.NotificationType(row.Type),
		Title:      row.Title,
		Message:    row.Message,
		Priority:   domain.NotificationPriority(row.Priority),
		Read:       row.Read,
		ActionURL:  row.ActionURL,
		ActionType: row.ActionType,
		CreatedAt:  row.CreatedAt,
	}

	if row.Data != "" {
		_ = json.Unmarshal([]byte(row.Data), &n.Data)
	}
	if row.Sender != "" {
		_ = json.Unmarshal([]byte(row.Sender), &n.Sender)
	}
	if row.Store != "" {
		_ = json.Unmarshal([]byte(row.Store), &n.Store)
	}
	return n
}

func marshalField(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal cache field: %w", err)
	}
	return string(raw), nil
}
