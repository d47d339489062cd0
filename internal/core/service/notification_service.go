package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) guarding against
// repeated fanout for the same article.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, articleID string) (bool, error)
	Mark(ctx context.Context, articleID string) error
}

type notificationService struct {
	profiles      ports.ProfileRepository
	subscriptions ports.SubscriptionRepository
	notifications ports.NotificationRepository
	dedup         DedupChecker
	log           zerolog.Logger
}

// NewNotificationService returns a NotificationService that fans publish
// events out to the publishing author's subscribers.
func NewNotificationService(
	profiles ports.ProfileRepository,
	subscriptions ports.SubscriptionRepository,
	notifications ports.NotificationRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{
		profiles:      profiles,
		subscriptions: subscriptions,
		notifications: notifications,
		dedup:         dedup,
		log:           log,
	}
}

// Process deduplicates and fans out a single publish event: one notification
// per subscriber of the author. A re-publish within the dedup TTL is skipped
// so unpublish/publish cycles do not spam subscribers.
func (s *notificationService) Process(ctx context.Context, event ports.PublishEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.ArticleID)
	if err != nil {
		s.log.Warn().Err(err).Str("article_id", event.ArticleID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("article_id", event.ArticleID).Msg("duplicate publish event skipped")
		return nil
	}

	subscribers, err := s.subscriptions.ListByAuthor(ctx, event.AuthorUserID)
	if err != nil {
		return fmt.Errorf("process publish event: %w", err)
	}

	// Mark before writing so a retry after a partial failure does not double
	// notify the subscribers already reached.
	if markErr := s.dedup.Mark(ctx, event.ArticleID); markErr != nil {
		s.log.Warn().Err(markErr).Str("article_id", event.ArticleID).Msg("failed to set dedup key")
	}

	if len(subscribers) == 0 {
		s.log.Debug().Str("article_id", event.ArticleID).Msg("no subscribers to notify")
		return nil
	}

	message := fmt.Sprintf("New article published by %s", s.authorName(ctx, event.AuthorUserID))
	now := time.Now().UTC()

	notifications := make([]*domain.Notification, 0, len(subscribers))
	for _, sub := range subscribers {
		notifications = append(notifications, &domain.Notification{
			ID:        uuid.NewString(),
			UserID:    sub.UserID,
			ArticleID: event.ArticleID,
			Message:   message,
			CreatedAt: now,
		})
	}

	if err := s.notifications.InsertMany(ctx, notifications); err != nil {
		return fmt.Errorf("process publish event: insert notifications: %w", err)
	}

	s.log.Info().
		Str("article_id", event.ArticleID).
		Str("author_user_id", event.AuthorUserID).
		Int("subscribers", len(notifications)).
		Msg("publish event fanned out")

	return nil
}

func (s *notificationService) authorName(ctx context.Context, authorUserID string) string {
	profile, err := s.profiles.FindByUserID(ctx, authorUserID)
	if err != nil || profile.DisplayName == nil || *profile.DisplayName == "" {
		return "an author you follow"
	}
	return *profile.DisplayName
}
