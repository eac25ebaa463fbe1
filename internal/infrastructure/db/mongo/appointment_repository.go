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

const (
	appointmentsCollection  = "appointments"
	consultationsCollection = "consultations"
)

type AppointmentRepository struct {
	appointments  *mongo.Collection
	consultations *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{
		appointments:  db.Collection(appointmentsCollection),
		consultations: db.Collection(consultationsCollection),
	}
}

type mongoAppointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	VetID     primitive.ObjectID `bson:"vet_id"`
	OwnerID   primitive.ObjectID `bson:"pet_owner_id"`
	PetID     primitive.ObjectID `bson:"pet_id"`
	Date      time.Time          `bson:"appointment_date"`
	Reason    string             `bson:"reason,omitempty"`
	Status    string             `bson:"status"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

type mongoConsultation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	VetID      primitive.ObjectID `bson:"vet_id"`
	OwnerID    primitive.ObjectID `bson:"pet_owner_id"`
	PetID      primitive.ObjectID `bson:"pet_id"`
	Question   string             `bson:"question"`
	Answer     string             `bson:"answer,omitempty"`
	Status     string             `bson:"status"`
	CreatedAt  int64              `bson:"created_at"`
	AnsweredAt *time.Time         `bson:"answered_at,omitempty"`
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := appointmentToDoc(a)
	if err != nil {
		return nil, err
	}

	res, err := r.appointments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var ma mongoAppointment
	if err := r.appointments.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AppointmentRepository) FindByVet(ctx context.Context, vetID string) ([]domain.Appointment, error) {
	return r.listAppointments(ctx, "vet_id", vetID)
}

func (r *AppointmentRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Appointment, error) {
	return r.listAppointments(ctx, "pet_owner_id", ownerID)
}

func (r *AppointmentRepository) listAppointments(ctx context.Context, field, id string) ([]domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "appointment_date", Value: 1}})
	cur, err := r.appointments.Find(ctx, bson.M{field: oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Appointment
	for cur.Next(ctx) {
		var ma mongoAppointment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		out = append(out, *ma.toDomain())
	}
	return out, cur.Err()
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	doc, err := appointmentToDoc(a)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.appointments.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *AppointmentRepository) CreateConsultation(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	doc, err := consultationToDoc(c)
	if err != nil {
		return nil, err
	}

	res, err := r.consultations.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert consultation: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AppointmentRepository) FindConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrConsultationNotFound
	}

	var mc mongoConsultation
	if err := r.consultations.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("find consultation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *AppointmentRepository) ConsultationsByVet(ctx context.Context, vetID string) ([]domain.Consultation, error) {
	return r.listConsultations(ctx, "vet_id", vetID)
}

func (r *AppointmentRepository) ConsultationsByOwner(ctx context.Context, ownerID string) ([]domain.Consultation, error) {
	return r.listConsultations(ctx, "pet_owner_id", ownerID)
}

func (r *AppointmentRepository) listConsultations(ctx context.Context, field, id string) ([]domain.Consultation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.consultations.Find(ctx, bson.M{field: oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find consultations: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Consultation
	for cur.Next(ctx) {
		var mc mongoConsultation
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode consultation: %w", err)
		}
		out = append(out, *mc.toDomain())
	}
	return out, cur.Err()
}

func (r *AppointmentRepository) UpdateConsultation(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, domain.ErrConsultationNotFound
	}

	doc, err := consultationToDoc(c)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.consultations.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update consultation: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrConsultationNotFound
	}
	return c, nil
}

func appointmentToDoc(a *domain.Appointment) (mongoAppointment, error) {
	vid, err := primitive.ObjectIDFromHex(a.VetID)
	if err != nil {
		return mongoAppointment{}, domain.ErrUserNotFound
	}
	oid, err := primitive.ObjectIDFromHex(a.OwnerID)
	if err != nil {
		return mongoAppointment{}, domain.ErrUserNotFound
	}
	pid, err := primitive.ObjectIDFromHex(a.PetID)
	if err != nil {
		return mongoAppointment{}, domain.ErrPetNotFound
	}
	return mongoAppointment{
		VetID:     vid,
		OwnerID:   oid,
		PetID:     pid,
		Date:      a.Date,
		Reason:    a.Reason,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt.Unix(),
	}, nil
}

func (ma mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:        ma.ID.Hex(),
		VetID:     ma.VetID.Hex(),
		OwnerID:   ma.OwnerID.Hex(),
		PetID:     ma.PetID.Hex(),
		Date:      ma.Date,
		Reason:    ma.Reason,
		Status:    domain.AppointmentStatus(ma.Status),
		Notes:     ma.Notes,
		CreatedAt: unixToTime(ma.CreatedAt),
	}
}

func consultationToDoc(c *domain.Consultation) (mongoConsultation, error) {
	vid, err := primitive.ObjectIDFromHex(c.VetID)
	if err != nil {
		return mongoConsultation{}, domain.ErrUserNotFound
	}
	oid, err := primitive.ObjectIDFromHex(c.OwnerID)
	if err != nil {
		return mongoConsultation{}, domain.ErrUserNotFound
	}
	pid, err := primitive.ObjectIDFromHex(c.PetID)
	if err != nil {
		return mongoConsultation{}, domain.ErrPetNotFound
	}
	return mongoConsultation{
		VetID:      vid,
		OwnerID:    oid,
		PetID:      pid,
		Question:   c.Question,
		Answer:     c.Answer,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt.Unix(),
		AnsweredAt: c.AnsweredAt,
	}, nil
}

func (mc mongoConsultation) toDomain() *domain.Consultation {
	return &domain.Consultation{
		ID:         mc.ID.Hex(),
		VetID:      mc.VetID.Hex(),
		OwnerID:    mc.OwnerID.Hex(),
		PetID:      mc.PetID.Hex(),
		Question:   mc.Question,
		Answer:     mc.Answer,
		Status:     domain.ConsultationStatus(mc.Status),
		CreatedAt:  unixToTime(mc.CreatedAt),
		AnsweredAt: mc.AnsweredAt,
	}
}
