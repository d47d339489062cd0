package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// NotificationRepository persists publish-event notifications.
type NotificationRepository interface {
	InsertMany(ctx context.Context, notifications []*domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
}
