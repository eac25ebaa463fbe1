package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type PartnerRepository interface {
	UpsertSchedule(ctx context.Context, partnerID string, entries []domain.ScheduleEntry) ([]domain.ScheduleEntry, error)
	Schedule(ctx context.Context, partnerID string) ([]domain.ScheduleEntry, error)
	UpsertLocation(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Location(ctx context.Context, partnerID string) (*domain.Location, error)
}

type PartnerService interface {
	SetSchedule(ctx context.Context, partnerID string, entries []domain.ScheduleEntry) ([]domain.ScheduleEntry, error)
	Schedule(ctx context.Context, partnerID string) ([]domain.ScheduleEntry, error)
	SetLocation(ctx context.Context, partnerID string, loc *domain.Location) (*domain.Location, error)
	Location(ctx context.Context, partnerID string) (*domain.Location, error)
}
