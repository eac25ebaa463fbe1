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

const remindersCollection = "reminders"

type ReminderRepository struct {
	coll *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{coll: db.Collection(remindersCollection)}
}

type mongoReminder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	AnimalName string             `bson:"animal_name"`
	Message    string             `bson:"message"`
	Date       time.Time          `bson:"date"`
	Planned    bool               `bson:"planned"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	doc, err := reminderToDoc(rem)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}

	created := *rem
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReminderNotFound
	}

	var mr mongoReminder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReminderNotFound
		}
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReminderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reminders: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Reminder
	for cur.Next(ctx) {
		var mr mongoReminder
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode reminder: %w", err)
		}
		out = append(out, *mr.toDomain())
	}
	return out, cur.Err()
}

func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(rem.ID)
	if err != nil {
		return nil, domain.ErrReminderNotFound
	}

	doc, err := reminderToDoc(rem)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrReminderNotFound
	}
	return rem, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReminderNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func reminderToDoc(rem *domain.Reminder) (mongoReminder, error) {
	uid, err := primitive.ObjectIDFromHex(rem.UserID)
	if err != nil {
		return mongoReminder{}, domain.ErrUserNotFound
	}
	return mongoReminder{
		UserID:     uid,
		AnimalName: rem.AnimalName,
		Message:    rem.Message,
		Date:       rem.Date,
		Planned:    rem.Planned,
		CreatedAt:  rem.CreatedAt.Unix(),
	}, nil
}

func (mr mongoReminder) toDomain() *domain.Reminder {
	return &domain.Reminder{
		ID:         mr.ID.Hex(),
		UserID:     mr.UserID.Hex(),
		AnimalName: mr.AnimalName,
		Message:    mr.Message,
		Date:       mr.Date,
		Planned:    mr.Planned,
		CreatedAt:  unixToTime(mr.CreatedAt),
	}
}
