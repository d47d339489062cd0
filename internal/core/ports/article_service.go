package ports

import (
	"context"
	"time"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// CreateArticleInput carries all data needed to create an article.
type CreateArticleInput struct {
	ActorUserID string
	Title       string
	Content     string
	ImageURL    string
	Published   bool
}

// TogglePublishInput flips the published flag of one article.
type TogglePublishInput struct {
	ActorUserID string
	ArticleID   string
	Published   bool
}

// PublishResult is the canonical projection returned by TogglePublish.
type PublishResult struct {
	ID        string
	Published bool
	UpdatedAt time.Time
}

// AuthorRef is the lightweight author projection attached to article views.
type AuthorRef struct {
	UserID      string
	DisplayName *string
}

// ArticleView is an article joined with its author projection.
type ArticleView struct {
	Article *domain.Article
	Author  *AuthorRef // nil when the author has no profile
}

// ArticleDetail is the full view returned for a single article.
type ArticleDetail struct {
	Article *domain.Article
	Author  *AuthorRef
	// Related holds up to three other articles by the same author.
	Related []*domain.Article
}

// GetArticleInput identifies an article and the viewer requesting it.
type GetArticleInput struct {
	ID           string
	ViewerUserID string // empty for anonymous viewers
}

// ListArticlesInput carries the parameters of a listing request.
type ListArticlesInput struct {
	AuthorUserID string
	Status       ArticleStatusFilter
	Search       string
	Page         int
}

// ListArticlesResult is a page of article views plus pagination metadata.
type ListArticlesResult struct {
	Items    []*ArticleView
	Total    int64
	Page     int
	PageSize int
}

// ArticleService defines the article use cases.
type ArticleService interface {
	// Create requires the AUTHOR role.
	Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error)
	// TogglePublish requires ownership or the ADMIN role.
	TogglePublish(ctx context.Context, input TogglePublishInput) (*PublishResult, error)
	// Get applies the visibility rule: drafts are only shown to the owner or
	// an admin.
	Get(ctx context.Context, input GetArticleInput) (*ArticleDetail, error)
	// ListPublished is the public listing; only published articles appear.
	ListPublished(ctx context.Context, input ListArticlesInput) (*ListArticlesResult, error)
	// ListOwn lists the acting author's articles, drafts included.
	ListOwn(ctx context.Context, actorUserID string, input ListArticlesInput) (*ListArticlesResult, error)
	// ListAll is the admin listing across authors; requires ADMIN.
	ListAll(ctx context.Context, actorUserID string, input ListArticlesInput) (*ListArticlesResult, error)
}
