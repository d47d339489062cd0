package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

func newArticleSvc(articles *stubArticleRepo, profiles *stubProfileRepo, queue *stubQueue) *ArticleService {
	return NewArticleService(articles, profiles, newAuthz(profiles), queue, zerolog.Nop())
}

func validContent() string {
	return strings.Repeat("interesting words ", 3)
}

func TestArticleService_Create_RequiresAuthorRole(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("reader-1", domain.RoleReader, "Reader")
	svc := newArticleSvc(newStubArticleRepo(), profiles, nil)

	_, err := svc.Create(context.Background(), ports.CreateArticleInput{
		ActorUserID: "reader-1",
		Title:       "My first article",
		Content:     validContent(),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for READER, got: %v", err)
	}
}

func TestArticleService_Create_Validation(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	svc := newArticleSvc(newStubArticleRepo(), profiles, nil)

	cases := []struct {
		name    string
		title   string
		content string
		field   string
	}{
		{"empty title", "", validContent(), "title"},
		{"title too long", strings.Repeat("x", 101), validContent(), "title"},
		{"empty content", "A title", "", "content"},
		{"content too short", "A title", "too short", "content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ports.CreateArticleInput{
				ActorUserID: "author-1",
				Title:       tc.title,
				Content:     tc.content,
			})

			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestArticleService_Create_SanitizesContent(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	articles := newStubArticleRepo()
	svc := newArticleSvc(articles, profiles, nil)

	created, err := svc.Create(context.Background(), ports.CreateArticleInput{
		ActorUserID: "author-1",
		Title:       "A title",
		Content:     "hello <script>alert('x')</script> " + validContent(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(created.Content, "<script") {
		t.Errorf("expected script tags stripped, got: %q", created.Content)
	}
	if created.ID == "" {
		t.Error("expected a generated article id")
	}
	if created.AuthorUserID != "author-1" {
		t.Errorf("expected ownership set to actor, got: %q", created.AuthorUserID)
	}
}

func TestArticleService_Create_PublishedEnqueuesFanout(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	queue := &stubQueue{}
	svc := newArticleSvc(newStubArticleRepo(), profiles, queue)

	created, err := svc.Create(context.Background(), ports.CreateArticleInput{
		ActorUserID: "author-1",
		Title:       "A title",
		Content:     validContent(),
		Published:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.events) != 1 || queue.events[0].ArticleID != created.ID {
		t.Errorf("expected one publish event for %s, got: %v", created.ID, queue.events)
	}
}

func TestArticleService_TogglePublish_OwnerMayPublish(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", false)
	queue := &stubQueue{}
	svc := newArticleSvc(articles, profiles, queue)

	result, err := svc.TogglePublish(context.Background(), ports.TogglePublishInput{
		ActorUserID: "author-1",
		ArticleID:   "a-1",
		Published:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Published {
		t.Error("expected article to be published")
	}
	if result.ID != "a-1" {
		t.Errorf("unexpected result id: %q", result.ID)
	}
	if len(queue.events) != 1 {
		t.Errorf("expected publish fanout enqueued, got: %v", queue.events)
	}
}

func TestArticleService_TogglePublish_NonOwnerAuthorForbidden(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-2", domain.RoleAuthor, "Other Author")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", false)
	svc := newArticleSvc(articles, profiles, nil)

	_, err := svc.TogglePublish(context.Background(), ports.TogglePublishInput{
		ActorUserID: "author-2",
		ArticleID:   "a-1",
		Published:   true,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner author, got: %v", err)
	}
}

func TestArticleService_TogglePublish_AdminMayUnpublishAny(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("admin-1", domain.RoleAdmin, "Admin")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", true)
	svc := newArticleSvc(articles, profiles, nil)

	result, err := svc.TogglePublish(context.Background(), ports.TogglePublishInput{
		ActorUserID: "admin-1",
		ArticleID:   "a-1",
		Published:   false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Published {
		t.Error("expected article unpublished")
	}
}

func TestArticleService_TogglePublish_UnknownArticle(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("admin-1", domain.RoleAdmin, "Admin")
	svc := newArticleSvc(newStubArticleRepo(), profiles, nil)

	_, err := svc.TogglePublish(context.Background(), ports.TogglePublishInput{
		ActorUserID: "admin-1",
		ArticleID:   "missing",
		Published:   true,
	})
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound, got: %v", err)
	}
}

func TestArticleService_TogglePublish_RepublishDoesNotRefanout(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", true)
	queue := &stubQueue{}
	svc := newArticleSvc(articles, profiles, queue)

	_, err := svc.TogglePublish(context.Background(), ports.TogglePublishInput{
		ActorUserID: "author-1",
		ArticleID:   "a-1",
		Published:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.events) != 0 {
		t.Errorf("expected no fanout for published→published, got: %v", queue.events)
	}
}

func TestArticleService_Get_DraftHiddenFromStrangers(t *testing.T) {
	profiles := newStubProfileRepo()
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", false)
	svc := newArticleSvc(articles, profiles, nil)

	// A hidden draft must be indistinguishable from a missing article.
	_, err := svc.Get(context.Background(), ports.GetArticleInput{ID: "a-1", ViewerUserID: "stranger"})
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound for stranger, got: %v", err)
	}

	_, err = svc.Get(context.Background(), ports.GetArticleInput{ID: "a-1"})
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound for anonymous, got: %v", err)
	}
}

func TestArticleService_Get_DraftVisibleToOwnerAndAdmin(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	profiles.seed("admin-1", domain.RoleAdmin, "Admin")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", false)
	svc := newArticleSvc(articles, profiles, nil)

	for _, viewer := range []string{"author-1", "admin-1"} {
		detail, err := svc.Get(context.Background(), ports.GetArticleInput{ID: "a-1", ViewerUserID: viewer})
		if err != nil {
			t.Errorf("viewer %s: unexpected error: %v", viewer, err)
			continue
		}
		if detail.Article.ID != "a-1" {
			t.Errorf("viewer %s: unexpected article: %v", viewer, detail.Article.ID)
		}
	}
}

func TestArticleService_Get_RelatedExcludesSelfAndDrafts(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", true)
	articles.seed("a-2", "author-1", true)
	articles.seed("a-3", "author-1", false)
	svc := newArticleSvc(articles, profiles, nil)

	detail, err := svc.Get(context.Background(), ports.GetArticleInput{ID: "a-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Related) != 1 || detail.Related[0].ID != "a-2" {
		t.Errorf("expected related [a-2], got: %v", detail.Related)
	}
	if detail.Author == nil || detail.Author.UserID != "author-1" {
		t.Errorf("expected author projection, got: %v", detail.Author)
	}
}

func TestArticleService_ListOwn_RequiresActor(t *testing.T) {
	svc := newArticleSvc(newStubArticleRepo(), newStubProfileRepo(), nil)

	_, err := svc.ListOwn(context.Background(), "", ports.ListArticlesInput{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestArticleService_ListAll_RequiresAdmin(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author")
	svc := newArticleSvc(newStubArticleRepo(), profiles, nil)

	_, err := svc.ListAll(context.Background(), "author-1", ports.ListArticlesInput{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for AUTHOR, got: %v", err)
	}
}

func TestArticleService_ListPublished_JoinsAuthors(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.seed("author-1", domain.RoleAuthor, "Author One")
	articles := newStubArticleRepo()
	articles.seed("a-1", "author-1", true)
	articles.seed("a-2", "author-1", false) // draft, must be excluded
	svc := newArticleSvc(articles, profiles, nil)

	result, err := svc.ListPublished(context.Background(), ports.ListArticlesInput{Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected only the published article, got %d items", len(result.Items))
	}
	item := result.Items[0]
	if item.Author == nil || item.Author.DisplayName == nil || *item.Author.DisplayName != "Author One" {
		t.Errorf("expected author joined onto listing, got: %v", item.Author)
	}
}
