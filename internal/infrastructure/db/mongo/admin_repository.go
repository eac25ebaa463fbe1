package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// AdminRepository runs aggregate queries across the user, profile, and pet
// collections for the admin panel.
type AdminRepository struct {
	users    *mongo.Collection
	profiles *mongo.Collection
	pets     *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		users:    db.Collection(usersCollection),
		profiles: db.Collection(profilesCollection),
		pets:     db.Collection(petsCollection),
	}
}

func (r *AdminRepository) CountUsers(ctx context.Context, activeOnly bool) (int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	n, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	n, err := r.profiles.CountDocuments(ctx, bson.M{"role": int(role)})
	if err != nil {
		return 0, fmt.Errorf("count profiles by role: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) CountPets(ctx context.Context) (int64, error) {
	n, err := r.pets.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count pets: %w", err)
	}
	return n, nil
}

// ListUsers pages through principals, attaching profiles one by one. The
// admin listing is small and infrequent, so per-row profile lookups beat
// maintaining an aggregation pipeline here.
func (r *AdminRepository) ListUsers(ctx context.Context, filter ports.UserFilter) ([]ports.UserWithProfile, int64, error) {
	userFilter := bson.M{}
	if filter.Active != nil {
		userFilter["is_active"] = *filter.Active
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		userFilter["$or"] = bson.A{
			bson.M{"username": pattern},
			bson.M{"email": pattern},
		}
	}
	if filter.Role != nil {
		ids, err := r.userIDsWithRole(ctx, *filter.Role)
		if err != nil {
			return nil, 0, err
		}
		userFilter["_id"] = bson.M{"$in": ids}
	}

	total, err := r.users.CountDocuments(ctx, userFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("count filtered users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)
	cur, err := r.users.Find(ctx, userFilter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.UserWithProfile
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		row := ports.UserWithProfile{User: *mu.toDomain()}

		var mp mongoProfile
		err := r.profiles.FindOne(ctx, bson.M{"user_id": mu.ID}).Decode(&mp)
		switch err {
		case nil:
			row.Profile = mp.toDomain()
		case mongo.ErrNoDocuments:
			// principal without a profile, listed as-is
		default:
			return nil, 0, fmt.Errorf("find profile: %w", err)
		}
		out = append(out, row)
	}
	return out, total, cur.Err()
}

func (r *AdminRepository) userIDsWithRole(ctx context.Context, role domain.Role) ([]primitive.ObjectID, error) {
	cur, err := r.profiles.Find(ctx, bson.M{"role": int(role)})
	if err != nil {
		return nil, fmt.Errorf("find profiles by role: %w", err)
	}
	defer cur.Close(ctx)

	ids := []primitive.ObjectID{}
	for cur.Next(ctx) {
		var mp mongoProfile
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		ids = append(ids, mp.UserID)
	}
	return ids, cur.Err()
}

func (r *AdminRepository) SetActive(ctx context.Context, userID string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
