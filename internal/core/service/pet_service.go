package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// PetService implements owner-scoped pet CRUD. Every mutation checks that
// the pet belongs to the caller.
type PetService struct {
	repo   ports.PetRepository
	logger zerolog.Logger
}

func NewPetService(repo ports.PetRepository, logger zerolog.Logger) *PetService {
	return &PetService{repo: repo, logger: logger}
}

func (s *PetService) Create(ctx context.Context, ownerID string, pet *domain.Pet) (*domain.Pet, error) {
	now := time.Now().UTC()
	pet.OwnerID = ownerID
	pet.CreatedAt = now
	pet.UpdatedAt = now

	created, err := s.repo.Create(ctx, pet)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("pet_id", created.ID).Str("owner_id", ownerID).Msg("pet created")
	return created, nil
}

func (s *PetService) List(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *PetService) Update(ctx context.Context, ownerID, petID string, update *domain.Pet) (*domain.Pet, error) {
	existing, err := s.owned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.OwnerID = existing.OwnerID
	update.CreatedAt = existing.CreatedAt
	update.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, update)
}

func (s *PetService) Delete(ctx context.Context, ownerID, petID string) error {
	if _, err := s.owned(ctx, ownerID, petID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

func (s *PetService) AnimalTypes(ctx context.Context) ([]domain.AnimalType, error) {
	return s.repo.ListAnimalTypes(ctx)
}

func (s *PetService) owned(ctx context.Context, ownerID, petID string) (*domain.Pet, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return pet, nil
}
