package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/api/metrics"
	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// AppointmentService implements clinic bookings and online consultations
// between owners and veterinarians. Status changes fan out notifications
// through the queue.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	pets   ports.PetRepository
	users  ports.AuthRepository
	queue  ports.NotificationQueue
	logger zerolog.Logger
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	pets ports.PetRepository,
	users ports.AuthRepository,
	queue ports.NotificationQueue,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, pets: pets, users: users, queue: queue, logger: logger}
}

// Book creates a pending appointment. The pet must belong to the caller and
// the target user must hold the veterinarian role.
func (s *AppointmentService) Book(ctx context.Context, ownerID string, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	pet, err := s.pets.FindByID(ctx, input.PetID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if err := s.requireVet(ctx, input.VetID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Appointment{
		VetID:     input.VetID,
		OwnerID:   ownerID,
		PetID:     input.PetID,
		Date:      input.Date,
		Reason:    input.Reason,
		Status:    domain.AppointmentPending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(domain.Notification{
		UserID:  input.VetID,
		Kind:    domain.NotificationAppointment,
		Message: fmt.Sprintf("new appointment request for %s on %s", pet.Name, input.Date.Format("2006-01-02 15:04")),
	})

	metrics.AppointmentsTotal.WithLabelValues(string(domain.AppointmentPending)).Inc()
	s.logger.Info().Str("appointment_id", created.ID).Str("vet_id", input.VetID).
		Str("owner_id", ownerID).Msg("appointment booked")
	return created, nil
}

func (s *AppointmentService) ForVet(ctx context.Context, vetID string) ([]domain.Appointment, error) {
	return s.repo.FindByVet(ctx, vetID)
}

func (s *AppointmentService) ForOwner(ctx context.Context, ownerID string) ([]domain.Appointment, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// SetStatus advances the appointment state machine. Only the assigned vet
// may change status, and only along a valid transition.
func (s *AppointmentService) SetStatus(ctx context.Context, vetID, appointmentID string, next domain.AppointmentStatus, notes string) (*domain.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.VetID != vetID {
		return nil, domain.ErrForbidden
	}
	if !appt.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appt.Status, next)
	}

	appt.Status = next
	if notes != "" {
		appt.Notes = notes
	}

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(domain.Notification{
		UserID:  appt.OwnerID,
		Kind:    domain.NotificationAppointment,
		Message: fmt.Sprintf("your appointment is now %s", next),
	})

	metrics.AppointmentsTotal.WithLabelValues(string(next)).Inc()
	return updated, nil
}

// Ask opens a pending consultation towards a veterinarian.
func (s *AppointmentService) Ask(ctx context.Context, ownerID, vetID, petID, question string) (*domain.Consultation, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if err := s.requireVet(ctx, vetID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateConsultation(ctx, &domain.Consultation{
		VetID:     vetID,
		OwnerID:   ownerID,
		PetID:     petID,
		Question:  question,
		Status:    domain.ConsultationPending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(domain.Notification{
		UserID:  vetID,
		Kind:    domain.NotificationConsultation,
		Message: fmt.Sprintf("new consultation question about %s", pet.Name),
	})
	return created, nil
}

// Answer records the vet's reply and moves the consultation to answered.
func (s *AppointmentService) Answer(ctx context.Context, vetID, consultationID, answer string) (*domain.Consultation, error) {
	cons, err := s.repo.FindConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if cons.VetID != vetID {
		return nil, domain.ErrForbidden
	}
	if cons.Status != domain.ConsultationPending {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cons.Status, domain.ConsultationAnswered)
	}

	now := time.Now().UTC()
	cons.Answer = answer
	cons.Status = domain.ConsultationAnswered
	cons.AnsweredAt = &now

	updated, err := s.repo.UpdateConsultation(ctx, cons)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(domain.Notification{
		UserID:  cons.OwnerID,
		Kind:    domain.NotificationConsultation,
		Message: "your consultation has been answered",
	})
	return updated, nil
}

// Close lets the owner archive an answered consultation.
func (s *AppointmentService) Close(ctx context.Context, ownerID, consultationID string) (*domain.Consultation, error) {
	cons, err := s.repo.FindConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if cons.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if cons.Status != domain.ConsultationAnswered {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cons.Status, domain.ConsultationClosed)
	}

	cons.Status = domain.ConsultationClosed
	return s.repo.UpdateConsultation(ctx, cons)
}

func (s *AppointmentService) ConsultationsForVet(ctx context.Context, vetID string) ([]domain.Consultation, error) {
	return s.repo.ConsultationsByVet(ctx, vetID)
}

func (s *AppointmentService) ConsultationsForOwner(ctx context.Context, ownerID string) ([]domain.Consultation, error) {
	return s.repo.ConsultationsByOwner(ctx, ownerID)
}

func (s *AppointmentService) requireVet(ctx context.Context, userID string) error {
	profile, err := s.users.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if profile.Role != domain.RoleVeterinarian {
		return domain.ErrForbidden
	}
	return nil
}
