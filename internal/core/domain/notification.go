package domain

import "time"

// Notification is created as a side effect of publish events, one per
// subscriber of the publishing author.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	ArticleID string    `json:"articleId" bson:"article_id"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
