package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const notificationsCollection = "notifications"

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection(notificationsCollection)}
}

type mongoNotification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Kind      string             `bson:"kind"`
	Message   string             `bson:"message"`
	Read      bool               `bson:"is_read"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mn mongoNotification) toDomain() domain.Notification {
	return domain.Notification{
		ID:        mn.ID.Hex(),
		UserID:    mn.UserID.Hex(),
		Kind:      domain.NotificationKind(mn.Kind),
		Message:   mn.Message,
		Read:      mn.Read,
		CreatedAt: mn.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	uid, err := primitive.ObjectIDFromHex(n.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := mongoNotification{
		UserID:    uid,
		Kind:      string(n.Kind),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]domain.Notification, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.collection.Find(ctx, bson.M{"user_id": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Notification
	for cur.Next(ctx) {
		var mn mongoNotification
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, mn.toDomain())
	}
	return out, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": uid},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
