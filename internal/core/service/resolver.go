package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// SessionResolver produces the validated (session, user) pair for one request.
//
// The order of calls is fixed: the user lookup re-validates the bearer token
// against the provider and must succeed before any session state is trusted.
// Reversing the order would mean trusting a forged or stale session cookie.
type SessionResolver struct {
	log zerolog.Logger
}

func NewSessionResolver(log zerolog.Logger) *SessionResolver {
	return &SessionResolver{log: log}
}

// Resolve returns (nil, nil) for anonymous requests. Provider errors are
// swallowed and logged, never propagated: a broken identity provider degrades
// callers to anonymous, not to authenticated.
func (r *SessionResolver) Resolve(ctx context.Context, client ports.IdentityClient) (*domain.Session, *domain.User) {
	if client == nil {
		return nil, nil
	}

	user, err := client.GetUser(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("identity provider user lookup failed, treating request as anonymous")
		return nil, nil
	}
	if user == nil {
		return nil, nil
	}

	session, err := client.GetSession(ctx)
	if err != nil {
		// A verified user without a resumable session still counts as "no
		// session" for gating; the user is kept for diagnostics.
		r.log.Warn().Err(err).Str("user_id", user.ID).Msg("session lookup failed for verified user")
		return nil, user
	}
	if session == nil {
		return nil, user
	}

	session.User = user
	return session, user
}
