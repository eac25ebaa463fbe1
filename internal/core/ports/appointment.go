package ports

import (
	"context"
	"time"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByVet(ctx context.Context, vetID string) ([]domain.Appointment, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)

	CreateConsultation(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)
	FindConsultation(ctx context.Context, id string) (*domain.Consultation, error)
	ConsultationsByVet(ctx context.Context, vetID string) ([]domain.Consultation, error)
	ConsultationsByOwner(ctx context.Context, ownerID string) ([]domain.Consultation, error)
	UpdateConsultation(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)
}

// BookAppointmentInput carries the owner's booking request.
type BookAppointmentInput struct {
	VetID  string
	PetID  string
	Date   time.Time
	Reason string
}

type AppointmentService interface {
	Book(ctx context.Context, ownerID string, input BookAppointmentInput) (*domain.Appointment, error)
	ForVet(ctx context.Context, vetID string) ([]domain.Appointment, error)
	ForOwner(ctx context.Context, ownerID string) ([]domain.Appointment, error)
	SetStatus(ctx context.Context, vetID, appointmentID string, next domain.AppointmentStatus, notes string) (*domain.Appointment, error)

	Ask(ctx context.Context, ownerID, vetID, petID, question string) (*domain.Consultation, error)
	Answer(ctx context.Context, vetID, consultationID, answer string) (*domain.Consultation, error)
	Close(ctx context.Context, ownerID, consultationID string) (*domain.Consultation, error)
	ConsultationsForVet(ctx context.Context, vetID string) ([]domain.Consultation, error)
	ConsultationsForOwner(ctx context.Context, ownerID string) ([]domain.Consultation, error)
}
