package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// SubscriptionService implements the idempotent follow-edge operations.
type SubscriptionService struct {
	subscriptions ports.SubscriptionRepository
	log           zerolog.Logger
}

func NewSubscriptionService(subscriptions ports.SubscriptionRepository, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, log: log}
}

// Subscribe upserts the (userID, authorUserID) edge. Repeating the call
// returns the same edge; it never reports a duplicate as an error.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error) {
	authorUserID, err := s.validate(userID, authorUserID)
	if err != nil {
		return nil, err
	}
	if authorUserID == userID {
		return nil, domain.ErrSelfSubscription
	}

	sub, err := s.subscriptions.Upsert(ctx, userID, authorUserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("author_user_id", authorUserID).Msg("failed to create subscription")
		return nil, err
	}
	return sub, nil
}

// Unsubscribe deletes the edge if it exists. Deleting a non-existent edge is
// a no-op success.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorUserID string) error {
	authorUserID, err := s.validate(userID, authorUserID)
	if err != nil {
		return err
	}

	if err := s.subscriptions.DeleteIfExists(ctx, userID, authorUserID); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("author_user_id", authorUserID).Msg("failed to remove subscription")
		return err
	}
	return nil
}

// IsSubscribed reports whether the edge exists.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, authorUserID string) (bool, error) {
	authorUserID, err := s.validate(userID, authorUserID)
	if err != nil {
		return false, err
	}

	exists, err := s.subscriptions.Exists(ctx, userID, authorUserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("author_user_id", authorUserID).Msg("failed to load subscription status")
		return false, err
	}
	return exists, nil
}

// validate enforces authentication and a well-formed author identifier.
func (s *SubscriptionService) validate(userID, authorUserID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	trimmed := strings.TrimSpace(authorUserID)
	if trimmed == "" {
		return "", domain.NewValidationError("authorUserId", "authorUserId is required")
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", domain.NewValidationError("authorUserId", "authorUserId must be a valid UUID")
	}
	return trimmed, nil
}
