package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/middleware"
	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// contextFor builds an echo context carrying the request-scoped identity the
// Session middleware would have stored. userID == "" simulates anonymous.
func contextFor(e *echo.Echo, req *http.Request, userID string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	identity := &middleware.Identity{}
	if userID != "" {
		identity.User = &domain.User{ID: userID}
		identity.Session = &domain.Session{AccessToken: "token"}
	}
	c.Set("identity", identity)
	return c, rec
}

// ---------------------------------------------------------------------------
// Function-field service stubs
// ---------------------------------------------------------------------------

type stubArticleService struct {
	createFn        func(ctx context.Context, input ports.CreateArticleInput) (*domain.Article, error)
	togglePublishFn func(ctx context.Context, input ports.TogglePublishInput) (*ports.PublishResult, error)
	getFn           func(ctx context.Context, input ports.GetArticleInput) (*ports.ArticleDetail, error)
	listPublishedFn func(ctx context.Context, input ports.ListArticlesInput) (*ports.ListArticlesResult, error)
	listOwnFn       func(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error)
	listAllFn       func(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error)
}

func (s *stubArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, input)
}

func (s *stubArticleService) TogglePublish(ctx context.Context, input ports.TogglePublishInput) (*ports.PublishResult, error) {
	return s.togglePublishFn(ctx, input)
}

func (s *stubArticleService) Get(ctx context.Context, input ports.GetArticleInput) (*ports.ArticleDetail, error) {
	return s.getFn(ctx, input)
}

func (s *stubArticleService) ListPublished(ctx context.Context, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	return s.listPublishedFn(ctx, input)
}

func (s *stubArticleService) ListOwn(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	return s.listOwnFn(ctx, actorUserID, input)
}

func (s *stubArticleService) ListAll(ctx context.Context, actorUserID string, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	return s.listAllFn(ctx, actorUserID, input)
}

type stubProfileService struct {
	getFn         func(ctx context.Context, userID string) (*domain.Profile, error)
	updateFn      func(ctx context.Context, input ports.UpdateProfileInput) (*domain.Profile, error)
	assignRoleFn  func(ctx context.Context, actorUserID, targetUserID, role string) (domain.Role, error)
	listUsersFn   func(ctx context.Context, actorUserID string, input ports.ListProfilesInput) (*ports.ListProfilesResult, error)
	listAuthorsFn func(ctx context.Context, page int) ([]*ports.AuthorSummary, int64, error)
	getAuthorFn   func(ctx context.Context, authorUserID string) (*ports.AuthorDetail, error)
}

func (s *stubProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getFn(ctx, userID)
}

func (s *stubProfileService) Update(ctx context.Context, input ports.UpdateProfileInput) (*domain.Profile, error) {
	return s.updateFn(ctx, input)
}

func (s *stubProfileService) AssignRole(ctx context.Context, actorUserID, targetUserID, role string) (domain.Role, error) {
	return s.assignRoleFn(ctx, actorUserID, targetUserID, role)
}

func (s *stubProfileService) ListUsers(ctx context.Context, actorUserID string, input ports.ListProfilesInput) (*ports.ListProfilesResult, error) {
	return s.listUsersFn(ctx, actorUserID, input)
}

func (s *stubProfileService) ListAuthors(ctx context.Context, page int) ([]*ports.AuthorSummary, int64, error) {
	return s.listAuthorsFn(ctx, page)
}

func (s *stubProfileService) GetAuthor(ctx context.Context, authorUserID string) (*ports.AuthorDetail, error) {
	return s.getAuthorFn(ctx, authorUserID)
}

type stubSubscriptionService struct {
	subscribeFn    func(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error)
	unsubscribeFn  func(ctx context.Context, userID, authorUserID string) error
	isSubscribedFn func(ctx context.Context, userID, authorUserID string) (bool, error)
}

func (s *stubSubscriptionService) Subscribe(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error) {
	return s.subscribeFn(ctx, userID, authorUserID)
}

func (s *stubSubscriptionService) Unsubscribe(ctx context.Context, userID, authorUserID string) error {
	return s.unsubscribeFn(ctx, userID, authorUserID)
}

func (s *stubSubscriptionService) IsSubscribed(ctx context.Context, userID, authorUserID string) (bool, error) {
	return s.isSubscribedFn(ctx, userID, authorUserID)
}
