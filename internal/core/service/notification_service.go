package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

const notificationListLimit = 50

// NotificationService persists notifications delivered by the queue workers
// and serves per-user listings.
type NotificationService struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

func (s *NotificationService) Deliver(ctx context.Context, n domain.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if _, err := s.repo.Create(ctx, &n); err != nil {
		return err
	}
	s.logger.Debug().Str("user_id", n.UserID).Str("kind", string(n.Kind)).Msg("notification delivered")
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.FindByUser(ctx, userID, notificationListLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}
