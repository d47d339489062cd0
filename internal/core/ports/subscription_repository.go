package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// SubscriptionRepository defines persistence operations for the follow edge.
// The unique compound index on (userId, authorUserId) backs the idempotency
// guarantees: Upsert returns the existing edge on conflict, DeleteIfExists
// succeeds whether or not the edge was present.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error)
	DeleteIfExists(ctx context.Context, userID, authorUserID string) error
	Exists(ctx context.Context, userID, authorUserID string) (bool, error)
	ListByAuthor(ctx context.Context, authorUserID string) ([]*domain.Subscription, error)
	CountByAuthor(ctx context.Context, authorUserID string) (int64, error)
}
