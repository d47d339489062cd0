package domain

import "time"

// Subscription is the directed edge "UserID follows AuthorUserID's
// publications", unique per pair. Self-follows are rejected; create and delete
// are idempotent.
type Subscription struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"userId" bson:"user_id"`
	AuthorUserID string    `json:"authorUserId" bson:"author_user_id"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
