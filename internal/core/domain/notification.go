package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationKind discriminates what produced a notification.
type NotificationKind string

const (
	NotificationAppointment  NotificationKind = "appointment"
	NotificationConsultation NotificationKind = "consultation"
	NotificationReminder     NotificationKind = "reminder"
)

// Notification is a per-user event produced when appointments or
// consultations change state. Delivery is asynchronous but ordered per user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
