package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// PartnerService manages a partner's weekly schedule and shop location.
type PartnerService struct {
	repo   ports.PartnerRepository
	logger zerolog.Logger
}

func NewPartnerService(repo ports.PartnerRepository, logger zerolog.Logger) *PartnerService {
	return &PartnerService{repo: repo, logger: logger}
}

// SetSchedule replaces the partner's weekly opening hours. DayOfWeek values
// outside 0..6 are rejected.
func (s *PartnerService) SetSchedule(ctx context.Context, partnerID string, entries []domain.ScheduleEntry) ([]domain.ScheduleEntry, error) {
	for i := range entries {
		if entries[i].DayOfWeek < 0 || entries[i].DayOfWeek > 6 {
			return nil, fmt.Errorf("invalid day_of_week %d", entries[i].DayOfWeek)
		}
		entries[i].PartnerID = partnerID
	}
	return s.repo.UpsertSchedule(ctx, partnerID, entries)
}

func (s *PartnerService) Schedule(ctx context.Context, partnerID string) ([]domain.ScheduleEntry, error) {
	return s.repo.Schedule(ctx, partnerID)
}

func (s *PartnerService) SetLocation(ctx context.Context, partnerID string, loc *domain.Location) (*domain.Location, error) {
	loc.PartnerID = partnerID
	updated, err := s.repo.UpsertLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("partner_id", partnerID).Msg("partner location updated")
	return updated, nil
}

func (s *PartnerService) Location(ctx context.Context, partnerID string) (*domain.Location, error) {
	return s.repo.Location(ctx, partnerID)
}
