package ports

import (
	"context"
	"time"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// ArticleStatusFilter narrows a listing by publication state.
type ArticleStatusFilter string

const (
	ArticleStatusAll       ArticleStatusFilter = "all"
	ArticleStatusPublished ArticleStatusFilter = "published"
	ArticleStatusDraft     ArticleStatusFilter = "draft"
)

// ListArticlesFilter carries all query parameters for listing articles.
// Results are ordered by updatedAt descending.
type ListArticlesFilter struct {
	AuthorUserID string              // empty = all authors
	Status       ArticleStatusFilter // zero value treated as "all"
	Search       string              // partial match on title or content
	ExcludeID    string              // omit one article (related-articles query)
	Page         int                 // 1-based
	Limit        int
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) error
	// FindByID returns domain.ErrArticleNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, int64, error)
	// SetPublished flips exactly the published flag and updatedAt, returning
	// the updated article.
	SetPublished(ctx context.Context, id string, published bool, at time.Time) (*domain.Article, error)
	CountByAuthor(ctx context.Context, authorUserID string, publishedOnly bool) (int64, error)
}
