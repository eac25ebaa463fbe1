package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByUser(ctx context.Context, userID string, limit int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// NotificationService persists a single notification; the queue dispatcher
// calls it from worker goroutines.
type NotificationService interface {
	Deliver(ctx context.Context, n domain.Notification) error
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// NotificationQueue is the enqueue side consumed by domain services.
type NotificationQueue interface {
	Enqueue(n domain.Notification)
}
