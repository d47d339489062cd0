package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

func publishEvent(articleID, authorUserID string) ports.PublishEvent {
	return ports.PublishEvent{
		ArticleID:    articleID,
		AuthorUserID: authorUserID,
		Title:        "A fresh article",
		OccurredAt:   time.Now().UTC(),
	}
}

func TestNotificationService_Process_FansOutToSubscribers(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Jane Writer")

	subs := newStubSubscriptionRepo()
	_, _ = subs.Upsert(context.Background(), "fan-1", "author-1")
	_, _ = subs.Upsert(context.Background(), "fan-2", "author-1")
	_, _ = subs.Upsert(context.Background(), "fan-3", "other-author")

	notifications := &stubNotificationRepo{}
	dedup := &stubDedup{}
	svc := NewNotificationService(profiles, subs, notifications, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifications.inserted) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications.inserted))
	}
	for _, n := range notifications.inserted {
		if n.ArticleID != "a-1" {
			t.Errorf("unexpected article id: %q", n.ArticleID)
		}
		if n.Message != "New article published by Jane Writer" {
			t.Errorf("unexpected message: %q", n.Message)
		}
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "a-1" {
		t.Errorf("expected dedup marked for a-1, got: %v", dedup.marked)
	}
}

func TestNotificationService_Process_DuplicateSkipped(t *testing.T) {
	subs := newStubSubscriptionRepo()
	_, _ = subs.Upsert(context.Background(), "fan-1", "author-1")

	notifications := &stubNotificationRepo{}
	svc := NewNotificationService(newStubProfileRepo(), subs, notifications, &stubDedup{dupResult: true}, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if len(notifications.inserted) != 0 {
		t.Errorf("expected no notifications for duplicate event, got %d", len(notifications.inserted))
	}
}

func TestNotificationService_Process_DedupCheckError_ProcessesAnyway(t *testing.T) {
	subs := newStubSubscriptionRepo()
	_, _ = subs.Upsert(context.Background(), "fan-1", "author-1")

	notifications := &stubNotificationRepo{}
	dedup := &stubDedup{dupErr: errors.New("redis timeout")}
	svc := NewNotificationService(newStubProfileRepo(), subs, notifications, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err != nil {
		t.Fatalf("expected fanout despite dedup failure, got: %v", err)
	}
	if len(notifications.inserted) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notifications.inserted))
	}
}

func TestNotificationService_Process_NoSubscribers(t *testing.T) {
	notifications := &stubNotificationRepo{}
	dedup := &stubDedup{}
	svc := NewNotificationService(newStubProfileRepo(), newStubSubscriptionRepo(), notifications, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications.inserted) != 0 {
		t.Errorf("expected no inserts, got %d", len(notifications.inserted))
	}
	if len(dedup.marked) != 1 {
		t.Error("expected dedup still marked so a retry stays quiet")
	}
}

func TestNotificationService_Process_FallbackAuthorName(t *testing.T) {
	// Author has no profile (or no display name): the message degrades.
	subs := newStubSubscriptionRepo()
	_, _ = subs.Upsert(context.Background(), "fan-1", "author-1")

	notifications := &stubNotificationRepo{}
	svc := NewNotificationService(newStubProfileRepo(), subs, notifications, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications.inserted) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.inserted))
	}
	if got := notifications.inserted[0].Message; got != "New article published by an author you follow" {
		t.Errorf("unexpected fallback message: %q", got)
	}
}

func TestNotificationService_Process_InsertFailurePropagates(t *testing.T) {
	subs := newStubSubscriptionRepo()
	_, _ = subs.Upsert(context.Background(), "fan-1", "author-1")

	notifications := &stubNotificationRepo{insertErr: errors.New("mongo unavailable")}
	svc := NewNotificationService(newStubProfileRepo(), subs, notifications, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), publishEvent("a-1", "author-1")); err == nil {
		t.Error("expected insert failure to propagate for retry visibility")
	}
}
