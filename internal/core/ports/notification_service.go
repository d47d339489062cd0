package ports

import (
	"context"
	"time"
)

// PublishEvent describes one article becoming published.
type PublishEvent struct {
	ArticleID    string
	AuthorUserID string
	Title        string
	OccurredAt   time.Time
}

// NotificationService fans a publish event out to the author's subscribers.
type NotificationService interface {
	Process(ctx context.Context, event PublishEvent) error
}

// PublishQueue decouples publish-event fanout from the request path.
type PublishQueue interface {
	Enqueue(event PublishEvent)
}
