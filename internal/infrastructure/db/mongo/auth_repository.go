package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
)

// AuthRepository persists principals and their one-to-one profiles in two
// collections. Unique indexes on username and email turn concurrent
// duplicate registrations into ErrUserExists.
type AuthRepository struct {
	users    *mongo.Collection
	profiles *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{
		users:    db.Collection(usersCollection),
		profiles: db.Collection(profilesCollection),
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Active       bool               `bson:"is_active"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

type mongoProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id"`
	Role           int                `bson:"role"`
	FirstName      string             `bson:"first_name,omitempty"`
	LastName       string             `bson:"last_name,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	City           string             `bson:"city,omitempty"`
	Address        string             `bson:"address,omitempty"`
	Logo           string             `bson:"logo,omitempty"`
	Clinic         string             `bson:"clinic,omitempty"`
	Position       string             `bson:"position,omitempty"`
	Specialization string             `bson:"specialization,omitempty"`
	Experience     string             `bson:"experience,omitempty"`
	LicenseNumber  string             `bson:"license_number,omitempty"`
	Organization   string             `bson:"name_of_organization,omitempty"`
	PartnerType    string             `bson:"type,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Description    string             `bson:"description,omitempty"`
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AuthRepository) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *AuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findUser(ctx, bson.M{"_id": oid})
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"username": username})
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *AuthRepository) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Active:       mu.Active,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func (r *AuthRepository) CreateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(profile.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := profileToDoc(profile)
	doc.UserID = uid

	res, err := r.profiles.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	created := *profile
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AuthRepository) FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var mp mongoProfile
	if err := r.profiles.FindOne(ctx, bson.M{"user_id": uid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *AuthRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	pid, err := primitive.ObjectIDFromHex(profile.ID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	uid, err := primitive.ObjectIDFromHex(profile.UserID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	doc := profileToDoc(profile)
	doc.ID = pid
	doc.UserID = uid

	res, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": pid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func profileToDoc(p *domain.Profile) mongoProfile {
	return mongoProfile{
		Role:           int(p.Role),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Phone:          p.Phone,
		City:           p.City,
		Address:        p.Address,
		Logo:           p.Logo,
		Clinic:         p.Clinic,
		Position:       p.Position,
		Specialization: p.Specialization,
		Experience:     p.Experience,
		LicenseNumber:  p.LicenseNumber,
		Organization:   p.Organization,
		PartnerType:    p.PartnerType,
		Website:        p.Website,
		Description:    p.Description,
	}
}

func (mp mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:             mp.ID.Hex(),
		UserID:         mp.UserID.Hex(),
		Role:           domain.Role(mp.Role),
		FirstName:      mp.FirstName,
		LastName:       mp.LastName,
		Phone:          mp.Phone,
		City:           mp.City,
		Address:        mp.Address,
		Logo:           mp.Logo,
		Clinic:         mp.Clinic,
		Position:       mp.Position,
		Specialization: mp.Specialization,
		Experience:     mp.Experience,
		LicenseNumber:  mp.LicenseNumber,
		Organization:   mp.Organization,
		PartnerType:    mp.PartnerType,
		Website:        mp.Website,
		Description:    mp.Description,
	}
}

// EnsureIndexes creates the unique indexes registration depends on.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	_, err = r.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}}, Options: uniqueIndex(),
	})
	if err != nil {
		return fmt.Errorf("profile index: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
