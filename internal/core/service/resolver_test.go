package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

type stubIdentityClient struct {
	user       *domain.User
	userErr    error
	session    *domain.Session
	sessionErr error
	calls      []string
}

func (c *stubIdentityClient) GetUser(_ context.Context) (*domain.User, error) {
	c.calls = append(c.calls, "GetUser")
	return c.user, c.userErr
}

func (c *stubIdentityClient) GetSession(_ context.Context) (*domain.Session, error) {
	c.calls = append(c.calls, "GetSession")
	return c.session, c.sessionErr
}

func (c *stubIdentityClient) VerifyOTP(_ context.Context, _, _ string) error { return nil }

func (c *stubIdentityClient) SignOut(_ context.Context, _ string) error { return nil }

func TestSessionResolver_NilClientIsAnonymous(t *testing.T) {
	resolver := NewSessionResolver(zerolog.Nop())

	session, user := resolver.Resolve(context.Background(), nil)
	if session != nil || user != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", session, user)
	}
}

func TestSessionResolver_UserValidatedBeforeSession(t *testing.T) {
	client := &stubIdentityClient{
		user:    &domain.User{ID: "user-1", Email: "u@example.com"},
		session: &domain.Session{AccessToken: "at", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Hour)},
	}
	resolver := NewSessionResolver(zerolog.Nop())

	session, user := resolver.Resolve(context.Background(), client)

	if user == nil || user.ID != "user-1" {
		t.Fatalf("expected resolved user, got: %v", user)
	}
	if session == nil {
		t.Fatal("expected resolved session")
	}
	if session.User != user {
		t.Error("expected session to carry the validated user")
	}
	if len(client.calls) != 2 || client.calls[0] != "GetUser" || client.calls[1] != "GetSession" {
		t.Errorf("expected GetUser before GetSession, got: %v", client.calls)
	}
}

func TestSessionResolver_ProviderFailureDegradesToAnonymous(t *testing.T) {
	client := &stubIdentityClient{userErr: errors.New("provider unreachable")}
	resolver := NewSessionResolver(zerolog.Nop())

	session, user := resolver.Resolve(context.Background(), client)

	if session != nil || user != nil {
		t.Errorf("expected anonymous on provider failure, got (%v, %v)", session, user)
	}
	// Session state must never be read when user validation fails.
	for _, call := range client.calls {
		if call == "GetSession" {
			t.Error("GetSession must not be called after a failed user lookup")
		}
	}
}

func TestSessionResolver_RejectedTokenIsAnonymous(t *testing.T) {
	client := &stubIdentityClient{
		// Stale cookie: session state present, but the provider rejects it.
		session: &domain.Session{AccessToken: "stale"},
	}
	resolver := NewSessionResolver(zerolog.Nop())

	session, user := resolver.Resolve(context.Background(), client)
	if session != nil || user != nil {
		t.Errorf("expected anonymous for rejected token, got (%v, %v)", session, user)
	}
}

func TestSessionResolver_SessionFailureKeepsUser(t *testing.T) {
	client := &stubIdentityClient{
		user:       &domain.User{ID: "user-1"},
		sessionErr: errors.New("token state corrupt"),
	}
	resolver := NewSessionResolver(zerolog.Nop())

	session, user := resolver.Resolve(context.Background(), client)
	if session != nil {
		t.Error("expected no session on session lookup failure")
	}
	if user == nil || user.ID != "user-1" {
		t.Errorf("expected validated user to survive, got: %v", user)
	}
}
