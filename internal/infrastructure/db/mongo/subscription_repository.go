package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

const collectionSubscriptions = "subscriptions"

type SubscriptionRepository struct {
	col *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{col: db.Collection(collectionSubscriptions)}
}

// Upsert creates the follow edge or returns the existing one. The unique
// compound index on (user_id, author_user_id) is what makes a concurrent
// double-subscribe converge on a single row with a single id.
func (r *SubscriptionRepository) Upsert(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "author_user_id": authorUserID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        uuid.NewString(),
		"created_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var s domain.Subscription
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.find(ctx, userID, authorUserID)
		}
		return nil, err
	}
	return &s, nil
}

// DeleteIfExists removes the follow edge. Absence is not an error.
func (r *SubscriptionRepository) DeleteIfExists(ctx context.Context, userID, authorUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "author_user_id": authorUserID})
	return err
}

// Exists reports whether the follow edge is present.
func (r *SubscriptionRepository) Exists(ctx context.Context, userID, authorUserID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID, "author_user_id": authorUserID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByAuthor returns every subscription pointing at the given author.
func (r *SubscriptionRepository) ListByAuthor(ctx context.Context, authorUserID string) ([]*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"author_user_id": authorUserID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*domain.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountByAuthor counts an author's subscribers.
func (r *SubscriptionRepository) CountByAuthor(ctx context.Context, authorUserID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"author_user_id": authorUserID})
}

func (r *SubscriptionRepository) find(ctx context.Context, userID, authorUserID string) (*domain.Subscription, error) {
	var s domain.Subscription
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID, "author_user_id": authorUserID}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureIndexes creates necessary indexes on the subscriptions collection.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "author_user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "author_user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
