package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	byUserID map[string]*domain.Profile
	findErr  error
	upserts  int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) seed(userID string, role domain.Role, displayName string) *domain.Profile {
	p := &domain.Profile{
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if displayName != "" {
		p.DisplayName = &displayName
	}
	r.byUserID[userID] = p
	return p
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *stubProfileRepo) FindByUserIDs(_ context.Context, userIDs []string) ([]*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Profile
	for _, id := range userIDs {
		if p, ok := r.byUserID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) List(_ context.Context, filter ports.ListProfilesFilter) ([]*domain.Profile, int64, error) {
	var out []*domain.Profile
	for _, p := range r.byUserID {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.upserts++
	r.byUserID[p.UserID] = p
	return p, nil
}

func (r *stubProfileRepo) UpsertRole(_ context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	r.upserts++
	p, ok := r.byUserID[userID]
	if !ok {
		p = &domain.Profile{UserID: userID, CreatedAt: time.Now().UTC()}
		r.byUserID[userID] = p
	}
	p.Role = role
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}

type stubArticleRepo struct {
	byID      map[string]*domain.Article
	createErr error
	created   []*domain.Article
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{byID: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) seed(id, authorUserID string, published bool) *domain.Article {
	now := time.Now().UTC()
	a := &domain.Article{
		ID:           id,
		AuthorUserID: authorUserID,
		Title:        "Title of " + id,
		Content:      strings.Repeat("content ", 5),
		Published:    published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[id] = a
	return a
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[a.ID] = a
	r.created = append(r.created, a)
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (r *stubArticleRepo) List(_ context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	var out []*domain.Article
	for _, a := range r.byID {
		if filter.AuthorUserID != "" && a.AuthorUserID != filter.AuthorUserID {
			continue
		}
		if filter.Status == ports.ArticleStatusPublished && !a.Published {
			continue
		}
		if filter.Status == ports.ArticleStatusDraft && a.Published {
			continue
		}
		if filter.ExcludeID != "" && a.ID == filter.ExcludeID {
			continue
		}
		out = append(out, a)
	}
	total := int64(len(out))
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *stubArticleRepo) SetPublished(_ context.Context, id string, published bool, at time.Time) (*domain.Article, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Published = published
	a.UpdatedAt = at
	return a, nil
}

func (r *stubArticleRepo) CountByAuthor(_ context.Context, authorUserID string, publishedOnly bool) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if a.AuthorUserID != authorUserID {
			continue
		}
		if publishedOnly && !a.Published {
			continue
		}
		n++
	}
	return n, nil
}

type stubSubscriptionRepo struct {
	edges  map[string]*domain.Subscription
	nextID int
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{edges: make(map[string]*domain.Subscription)}
}

func (r *stubSubscriptionRepo) key(userID, authorUserID string) string {
	return userID + "|" + authorUserID
}

func (r *stubSubscriptionRepo) Upsert(_ context.Context, userID, authorUserID string) (*domain.Subscription, error) {
	k := r.key(userID, authorUserID)
	if existing, ok := r.edges[k]; ok {
		return existing, nil
	}
	r.nextID++
	sub := &domain.Subscription{
		ID:           fmt.Sprintf("sub-%d", r.nextID),
		UserID:       userID,
		AuthorUserID: authorUserID,
		CreatedAt:    time.Now().UTC(),
	}
	r.edges[k] = sub
	return sub, nil
}

func (r *stubSubscriptionRepo) DeleteIfExists(_ context.Context, userID, authorUserID string) error {
	delete(r.edges, r.key(userID, authorUserID))
	return nil
}

func (r *stubSubscriptionRepo) Exists(_ context.Context, userID, authorUserID string) (bool, error) {
	_, ok := r.edges[r.key(userID, authorUserID)]
	return ok, nil
}

func (r *stubSubscriptionRepo) ListByAuthor(_ context.Context, authorUserID string) ([]*domain.Subscription, error) {
	var out []*domain.Subscription
	for _, s := range r.edges {
		if s.AuthorUserID == authorUserID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSubscriptionRepo) CountByAuthor(_ context.Context, authorUserID string) (int64, error) {
	subs, _ := r.ListByAuthor(context.Background(), authorUserID)
	return int64(len(subs)), nil
}

type stubNotificationRepo struct {
	insertErr error
	inserted  []*domain.Notification
}

func (r *stubNotificationRepo) InsertMany(_ context.Context, notifications []*domain.Notification) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, notifications...)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.inserted {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type stubQueue struct {
	events []ports.PublishEvent
}

func (q *stubQueue) Enqueue(event ports.PublishEvent) {
	q.events = append(q.events, event)
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, articleID string) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, articleID string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, articleID)
	return nil
}
