package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const (
	articlePageSize   = 10
	maxTitleLength    = 100
	minContentLength  = 20
	relatedArticleMax = 3
)

// ArticleService implements the article use cases: creation, publication
// toggling, and the public/own/admin listings.
type ArticleService struct {
	articles  ports.ArticleRepository
	profiles  ports.ProfileRepository
	authz     ports.Authz
	queue     ports.PublishQueue // nil disables fanout
	sanitizer *bluemonday.Policy
	log       zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	profiles ports.ProfileRepository,
	authz ports.Authz,
	queue ports.PublishQueue,
	log zerolog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		profiles:  profiles,
		authz:     authz,
		queue:     queue,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// Create validates and persists a new article owned by the acting author.
// Requires the AUTHOR role.
func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	if err := s.authz.EnsureRole(ctx, input.ActorUserID, domain.RoleAuthor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	imageURL := strings.TrimSpace(input.ImageURL)

	if title == "" {
		return nil, domain.NewValidationError("title", "Title is required")
	}
	if len(title) > maxTitleLength {
		return nil, domain.NewValidationError("title", "Title must be less than 100 characters")
	}
	if content == "" {
		return nil, domain.NewValidationError("content", "Content is required")
	}
	if len(content) < minContentLength {
		return nil, domain.NewValidationError("content", "Content must be at least 20 characters")
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:           uuid.NewString(),
		AuthorUserID: input.ActorUserID,
		Title:        title,
		Content:      s.sanitizer.Sanitize(content),
		Published:    input.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if imageURL != "" {
		article.ImageURL = &imageURL
	}

	if err := s.articles.Create(ctx, article); err != nil {
		s.log.Error().Err(err).Str("author_user_id", input.ActorUserID).Msg("failed to create article")
		return nil, err
	}

	s.log.Info().Str("article_id", article.ID).Str("author_user_id", article.AuthorUserID).Bool("published", article.Published).Msg("article created")

	if article.Published {
		s.enqueuePublish(article, now)
	}
	return article, nil
}

// TogglePublish flips exactly the published flag. The owning author or an
// ADMIN may do this; the transition is freely reversible.
func (s *ArticleService) TogglePublish(ctx context.Context, input ports.TogglePublishInput) (*ports.PublishResult, error) {
	article, err := s.articles.FindByID(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.EnsureOwnerOrRole(ctx, input.ActorUserID, article.AuthorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated, err := s.articles.SetPublished(ctx, article.ID, input.Published, now)
	if err != nil {
		s.log.Error().Err(err).Str("actor_user_id", input.ActorUserID).Str("article_id", article.ID).Msg("failed to update publication state")
		return nil, err
	}

	s.log.Info().Str("article_id", article.ID).Bool("published", updated.Published).Str("actor_user_id", input.ActorUserID).Msg("publication state changed")

	if !article.Published && updated.Published {
		s.enqueuePublish(updated, now)
	}

	return &ports.PublishResult{
		ID:        updated.ID,
		Published: updated.Published,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}

// Get returns one article with author projection and related articles.
// Drafts are hidden from everyone but the owner and admins; a hidden article
// is indistinguishable from a missing one.
func (s *ArticleService) Get(ctx context.Context, input ports.GetArticleInput) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !article.VisibleTo(input.ViewerUserID) && !s.authz.HasRole(ctx, input.ViewerUserID, domain.RoleAdmin) {
		return nil, domain.ErrArticleNotFound
	}

	detail := &ports.ArticleDetail{
		Article: article,
		Author:  s.authorRef(ctx, article.AuthorUserID),
	}

	related, _, err := s.articles.List(ctx, ports.ListArticlesFilter{
		AuthorUserID: article.AuthorUserID,
		Status:       ports.ArticleStatusPublished,
		ExcludeID:    article.ID,
		Page:         1,
		Limit:        relatedArticleMax,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("article_id", article.ID).Msg("failed to load related articles")
	} else {
		detail.Related = related
	}
	return detail, nil
}

// ListPublished is the public listing: published articles only.
func (s *ArticleService) ListPublished(ctx context.Context, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	return s.list(ctx, ports.ListArticlesFilter{
		AuthorUserID: input.AuthorUserID,
		Status:       ports.ArticleStatusPublished,
		Search:       input.Search,
		Page:         input.Page,
		Limit:        articlePageSize,
	})
}

// ListOwn lists the acting user's articles, drafts included.
func (s *ArticleService) ListOwn(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	if actorUserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.list(ctx, ports.ListArticlesFilter{
		AuthorUserID: actorUserID,
		Status:       input.Status,
		Search:       input.Search,
		Page:         input.Page,
		Limit:        articlePageSize,
	})
}

// ListAll is the admin listing across all authors.
func (s *ArticleService) ListAll(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	if err := s.authz.EnsureRole(ctx, actorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.ListArticlesFilter{
		Status: input.Status,
		Search: input.Search,
		Page:   input.Page,
		Limit:  articlePageSize,
	})
}

func (s *ArticleService) list(ctx context.Context, filter ports.ListArticlesFilter) (*ports.ListArticlesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.AuthorUserID]; !ok {
			seen[a.AuthorUserID] = struct{}{}
			authorIDs = append(authorIDs, a.AuthorUserID)
		}
	}

	authorMap := make(map[string]*ports.AuthorRef, len(authorIDs))
	if len(authorIDs) > 0 {
		profiles, err := s.profiles.FindByUserIDs(ctx, authorIDs)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to load author profiles for listing")
		} else {
			for _, p := range profiles {
				authorMap[p.UserID] = &ports.AuthorRef{UserID: p.UserID, DisplayName: p.DisplayName}
			}
		}
	}

	items := make([]*ports.ArticleView, 0, len(articles))
	for _, a := range articles {
		items = append(items, &ports.ArticleView{Article: a, Author: authorMap[a.AuthorUserID]})
	}

	return &ports.ListArticlesResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit,
	}, nil
}

func (s *ArticleService) authorRef(ctx context.Context, authorUserID string) *ports.AuthorRef {
	profile, err := s.profiles.FindByUserID(ctx, authorUserID)
	if err != nil {
		return nil
	}
	return &ports.AuthorRef{UserID: profile.UserID, DisplayName: profile.DisplayName}
}

func (s *ArticleService) enqueuePublish(article *domain.Article, at time.Time) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(ports.PublishEvent{
		ArticleID:    article.ID,
		AuthorUserID: article.AuthorUserID,
		Title:        article.Title,
		OccurredAt:   at,
	})
}
