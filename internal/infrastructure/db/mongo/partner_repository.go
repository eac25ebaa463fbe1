package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const (
	schedulesCollection = "partner_schedules"
	locationsCollection = "partner_locations"
)

type PartnerRepository struct {
	schedules *mongo.Collection
	locations *mongo.Collection
}

func NewPartnerRepository(db *mongo.Database) *PartnerRepository {
	return &PartnerRepository{
		schedules: db.Collection(schedulesCollection),
		locations: db.Collection(locationsCollection),
	}
}

type mongoScheduleEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PartnerID primitive.ObjectID `bson:"partner_id"`
	DayOfWeek int                `bson:"day_of_week"`
	OpenTime  string             `bson:"open_time,omitempty"`
	CloseTime string             `bson:"close_time,omitempty"`
	Closed    bool               `bson:"is_closed"`
}

type mongoLocation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PartnerID primitive.ObjectID `bson:"partner_id"`
	Latitude  float64            `bson:"latitude"`
	Longitude float64            `bson:"longitude"`
	Address   string             `bson:"address,omitempty"`
}

// UpsertSchedule replaces the full weekly schedule in one delete-and-insert
// pass, keeping exactly one document per weekday.
func (r *PartnerRepository) UpsertSchedule(ctx context.Context, partnerID string, entries []domain.ScheduleEntry) ([]domain.ScheduleEntry, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if _, err := r.schedules.DeleteMany(ctx, bson.M{"partner_id": pid}); err != nil {
		return nil, fmt.Errorf("clear schedule: %w", err)
	}

	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, mongoScheduleEntry{
			PartnerID: pid,
			DayOfWeek: e.DayOfWeek,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			Closed:    e.Closed,
		})
	}
	if len(docs) > 0 {
		if _, err := r.schedules.InsertMany(ctx, docs); err != nil {
			return nil, fmt.Errorf("insert schedule: %w", err)
		}
	}

	return r.Schedule(ctx, partnerID)
}

func (r *PartnerRepository) Schedule(ctx context.Context, partnerID string) ([]domain.ScheduleEntry, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}})
	cur, err := r.schedules.Find(ctx, bson.M{"partner_id": pid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ScheduleEntry
	for cur.Next(ctx) {
		var me mongoScheduleEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode schedule entry: %w", err)
		}
		out = append(out, domain.ScheduleEntry{
			ID:        me.ID.Hex(),
			PartnerID: me.PartnerID.Hex(),
			DayOfWeek: me.DayOfWeek,
			OpenTime:  me.OpenTime,
			CloseTime: me.CloseTime,
			Closed:    me.Closed,
		})
	}
	return out, cur.Err()
}

func (r *PartnerRepository) UpsertLocation(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	pid, err := primitive.ObjectIDFromHex(loc.PartnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"address":   loc.Address,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.locations.UpdateOne(ctx, bson.M{"partner_id": pid}, update, opts); err != nil {
		return nil, fmt.Errorf("upsert location: %w", err)
	}

	return r.Location(ctx, loc.PartnerID)
}

func (r *PartnerRepository) Location(ctx context.Context, partnerID string) (*domain.Location, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var ml mongoLocation
	if err := r.locations.FindOne(ctx, bson.M{"partner_id": pid}).Decode(&ml); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("find location: %w", err)
	}

	return &domain.Location{
		ID:        ml.ID.Hex(),
		PartnerID: ml.PartnerID.Hex(),
		Latitude:  ml.Latitude,
		Longitude: ml.Longitude,
		Address:   ml.Address,
	}, nil
}
