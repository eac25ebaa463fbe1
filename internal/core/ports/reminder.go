package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error)
	FindByID(ctx context.Context, id string) (*domain.Reminder, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error)
	Delete(ctx context.Context, id string) error
}

type ReminderService interface {
	Create(ctx context.Context, userID string, r *domain.Reminder) (*domain.Reminder, error)
	List(ctx context.Context, userID string) ([]domain.Reminder, error)
	Update(ctx context.Context, userID, reminderID string, update *domain.Reminder) (*domain.Reminder, error)
	Delete(ctx context.Context, userID, reminderID string) error
}
