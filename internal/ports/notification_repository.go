package ports

import (
	"context"
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID               string
	AccountID        string
	Type             string
	Title            string
	Message          string
	ArtworkID        *string
	RelatedAccountID *string
	Metadata         map[string]any
	IsRead           bool
	ReadAt           *time.Time
	CreatedAt        time.Time
}

type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	ListNotifications(ctx context.Context, accountID string, filter NotificationFilter) ([]Notification, error)
	CountUnread(ctx context.Context, accountID string) (int64, error)
	// MarkRead is scoped to accountID; marking an already read notification is a no-op.
	MarkRead(ctx context.Context, accountID string, notificationID string, readAt time.Time) error
	MarkAllRead(ctx context.Context, accountID string, readAt time.Time) (int64, error)
}
