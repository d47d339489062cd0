package domain

import "time"

// Article is owned by exactly one Profile via AuthorUserID. Only the owning
// author or an ADMIN may edit content or toggle Published; non-owners only
// ever see published articles.
type Article struct {
	ID           string    `json:"id" bson:"_id"`
	AuthorUserID string    `json:"authorUserId" bson:"author_user_id"`
	Title        string    `json:"title" bson:"title"`
	Content      string    `json:"content" bson:"content"`
	ImageURL     *string   `json:"imageUrl" bson:"image_url"`
	Published    bool      `json:"published" bson:"published"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// VisibleTo reports whether the article may be shown to the given viewer.
// Drafts are visible only to their owner; callers with elevated roles must
// check those separately.
func (a *Article) VisibleTo(viewerUserID string) bool {
	return a.Published || (viewerUserID != "" && viewerUserID == a.AuthorUserID)
}
