package ports

import (
	"context"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// UpdateProfileInput carries the self-service profile form. RequestedRole is
// limited to READER or AUTHOR; anything else falls back to READER. Role
// escalation to ADMIN only happens through AssignRole.
type UpdateProfileInput struct {
	UserID        string
	DisplayName   string
	Bio           string
	ProfileImage  string
	RequestedRole string
}

// AuthorSummary is the public directory projection of an author profile.
type AuthorSummary struct {
	Profile         *domain.Profile
	ArticleCount    int64
	SubscriberCount int64
}

// AuthorDetail is the public author page: profile, counts, and published work.
type AuthorDetail struct {
	AuthorSummary
	Articles []*domain.Article
}

// ListProfilesInput carries the admin user-listing parameters.
type ListProfilesInput struct {
	Search string
	Page   int
}

// ListProfilesResult is a page of profiles plus pagination metadata.
type ListProfilesResult struct {
	Items    []*domain.Profile
	Total    int64
	Page     int
	PageSize int
}

// ProfileService defines profile and role-administration use cases.
type ProfileService interface {
	// Get returns the caller's own profile, nil when none exists yet.
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	// Update upserts the caller's profile; the profile is created lazily on
	// the first edit.
	Update(ctx context.Context, input UpdateProfileInput) (*domain.Profile, error)
	// AssignRole requires ADMIN and upserts the target profile's role.
	AssignRole(ctx context.Context, actorUserID, targetUserID, role string) (domain.Role, error)
	// ListUsers requires ADMIN.
	ListUsers(ctx context.Context, actorUserID string, input ListProfilesInput) (*ListProfilesResult, error)
	// ListAuthors is the public author directory.
	ListAuthors(ctx context.Context, page int) ([]*AuthorSummary, int64, error)
	// GetAuthor is the public author page; ErrProfileNotFound when absent.
	GetAuthor(ctx context.Context, authorUserID string) (*AuthorDetail, error)
}
