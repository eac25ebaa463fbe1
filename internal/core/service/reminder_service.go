package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// ReminderService implements owner-scoped reminder CRUD.
type ReminderService struct {
	repo   ports.ReminderRepository
	logger zerolog.Logger
}

func NewReminderService(repo ports.ReminderRepository, logger zerolog.Logger) *ReminderService {
	return &ReminderService{repo: repo, logger: logger}
}

func (s *ReminderService) Create(ctx context.Context, userID string, r *domain.Reminder) (*domain.Reminder, error) {
	r.UserID = userID
	r.Planned = true
	r.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, r)
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID string, update *domain.Reminder) (*domain.Reminder, error) {
	existing, err := s.owned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.UserID = existing.UserID
	update.CreatedAt = existing.CreatedAt

	return s.repo.Update(ctx, update)
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID string) error {
	if _, err := s.owned(ctx, userID, reminderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reminderID)
}

func (s *ReminderService) owned(ctx context.Context, userID, reminderID string) (*domain.Reminder, error) {
	r, err := s.repo.FindByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}
