package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// FindByUserID retrieves a profile by its provider user id.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUserIDs retrieves profiles for the given user ids. Missing ids are
// silently omitted from the result.
func (r *ProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// List returns a page of profiles plus the total match count.
func (r *ProfileRepository) List(ctx context.Context, filter ports.ListProfilesFilter) ([]*domain.Profile, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"display_name": pattern},
			bson.M{"user_id": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Upsert creates the profile or replaces its mutable fields, keyed by user_id.
// The unique index makes concurrent first-writes converge on a single row.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"role":          p.Role,
			"display_name":  p.DisplayName,
			"bio":           p.Bio,
			"profile_image": p.ProfileImage,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	return r.findOneAndUpsert(ctx, p.UserID, update)
}

// UpsertRole sets only the role. When no profile exists yet a minimal row is
// created with null display fields, matching the admin role-assignment flow.
func (r *ProfileRepository) UpsertRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"display_name":  nil,
			"bio":           nil,
			"profile_image": nil,
			"created_at":    now,
		},
	}

	return r.findOneAndUpsert(ctx, userID, update)
}

func (r *ProfileRepository) findOneAndUpsert(ctx context.Context, userID string, update bson.M) (*domain.Profile, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p domain.Profile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&p)
	if err != nil {
		// A concurrent insert can race the upsert into a duplicate-key error;
		// the row exists now, so read it back.
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return &p, nil
}

// EnsureIndexes creates necessary indexes on the profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
