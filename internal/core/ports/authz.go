package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// Authz is the role/ownership authorization guard.
//
// EnsureRole and EnsureOwnerOrRole fail fast with domain.ErrUnauthorized (no
// verified identity) or domain.ErrForbidden (identity lacks the required
// privilege) and are meant for terminal authorization decisions. HasRole is
// the non-fatal variant for computing booleans such as "viewer is admin".
type Authz interface {
	EnsureRole(ctx context.Context, userID string, minimum domain.Role) error
	EnsureOwnerOrRole(ctx context.Context, userID, resourceOwnerID string, minimum domain.Role) error
	HasRole(ctx context.Context, userID string, minimum domain.Role) bool
}
