package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// PetRepository defines the persistence interface for pet records and the
// animal-type reference list.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	Update(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	Delete(ctx context.Context, id string) error

	ListAnimalTypes(ctx context.Context) ([]domain.AnimalType, error)
}

type PetService interface {
	Create(ctx context.Context, ownerID string, pet *domain.Pet) (*domain.Pet, error)
	List(ctx context.Context, ownerID string) ([]domain.Pet, error)
	Update(ctx context.Context, ownerID, petID string, update *domain.Pet) (*domain.Pet, error)
	Delete(ctx context.Context, ownerID, petID string) error
	AnimalTypes(ctx context.Context) ([]domain.AnimalType, error)
}
