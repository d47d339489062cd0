package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// ListProfilesFilter carries the query parameters for listing profiles.
type ListProfilesFilter struct {
	// Search matches displayName or userId, case-insensitive partial match.
	Search string
	// Role restricts the listing to a single role when non-empty.
	Role domain.Role
	Page int // 1-based
	Limit int
}

// ProfileRepository defines persistence operations for profiles. The unique
// index on userId is the sole concurrency-correctness mechanism: a
// duplicate-key violation on create must surface as the existing row, never as
// a hard failure.
type ProfileRepository interface {
	// FindByUserID returns domain.ErrProfileNotFound when absent.
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Profile, error)
	List(ctx context.Context, filter ListProfilesFilter) ([]*domain.Profile, int64, error)
	// Upsert creates the profile or replaces its mutable fields by userId.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	// UpsertRole sets only the role, creating a profile with null display
	// fields when none exists yet.
	UpsertRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error)
}
