package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// SubscriptionService defines the follow-edge use cases. All operations
// require an authenticated user and a well-formed author identifier; create
// and delete are idempotent.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorUserID string) error
	IsSubscribed(ctx context.Context, userID, authorUserID string) (bool, error)
}
