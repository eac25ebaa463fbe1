package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of a clinic appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions defines the allowed state machine transitions.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
}

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrConsultationNotFound = errors.New("consultation not found")
)

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a clinic visit booked by a pet owner with a veterinarian.
type Appointment struct {
	ID        string            `json:"id"`
	VetID     string            `json:"vet_id"`
	OwnerID   string            `json:"pet_owner_id"`
	PetID     string            `json:"pet_id"`
	Date      time.Time         `json:"appointment_date"`
	Reason    string            `json:"reason,omitempty"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ConsultationStatus represents the lifecycle state of an online consultation.
type ConsultationStatus string

const (
	ConsultationPending  ConsultationStatus = "pending"
	ConsultationAnswered ConsultationStatus = "answered"
	ConsultationClosed   ConsultationStatus = "closed"
)

// Consultation is an asynchronous question from an owner to a veterinarian.
type Consultation struct {
	ID         string             `json:"id"`
	VetID      string             `json:"vet_id"`
	OwnerID    string             `json:"pet_owner_id"`
	PetID      string             `json:"pet_id"`
	Question   string             `json:"question"`
	Answer     string             `json:"answer,omitempty"`
	Status     ConsultationStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	AnsweredAt *time.Time         `json:"answered_at,omitempty"`
}
