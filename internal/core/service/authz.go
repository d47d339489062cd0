package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// Authz implements the role and ownership authorization guards on top of the
// profile store.
type Authz struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewAuthz(profiles ports.ProfileRepository, log zerolog.Logger) *Authz {
	return &Authz{profiles: profiles, log: log}
}

// EnsureRole fails unless userID resolves to a profile whose role meets the
// minimum in the READER < AUTHOR < ADMIN hierarchy.
//
//   - empty userID           → ErrUnauthorized
//   - no profile for userID  → ErrForbidden (a provider identity without an
//     application profile has no privileges)
//   - rank(role) < rank(min) → ErrForbidden
func (a *Authz) EnsureRole(ctx context.Context, userID string, minimum domain.Role) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	profile, err := a.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrForbidden
		}
		return err
	}

	if !profile.Role.Meets(minimum) {
		return domain.ErrForbidden
	}
	return nil
}

// EnsureOwnerOrRole allows the action when the role check passes, or when the
// actor owns the resource. Ownership always overrides a failed role check; an
// absent identity is still ErrUnauthorized.
func (a *Authz) EnsureOwnerOrRole(ctx context.Context, userID, resourceOwnerID string, minimum domain.Role) error {
	err := a.EnsureRole(ctx, userID, minimum)
	if err == nil {
		return nil
	}
	if userID != "" && userID == resourceOwnerID {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
		return err
	}
	// Profile lookup failed for an actor who is not the owner: deny rather
	// than leak the store error into an authorization decision.
	a.log.Error().Err(err).Str("user_id", userID).Msg("role lookup failed during ownership check")
	return domain.ErrForbidden
}

// HasRole is the non-fatal variant of EnsureRole for computing booleans such
// as "viewer is admin". Store failures count as false.
func (a *Authz) HasRole(ctx context.Context, userID string, minimum domain.Role) bool {
	return a.EnsureRole(ctx, userID, minimum) == nil
}
