package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// AdminRepository exposes the aggregate queries the admin panel needs on top
// of the user store.
type AdminRepository interface {
	CountUsers(ctx context.Context, activeOnly bool) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountPets(ctx context.Context) (int64, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]UserWithProfile, int64, error)
	SetActive(ctx context.Context, userID string, active bool) error
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   *domain.Role
	Active *bool
	Search string
	Skip   int64
	Limit  int64
}

// UserWithProfile pairs a principal with its profile for admin views.
type UserWithProfile struct {
	User    domain.User     `json:"user"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	PetOwners     int64 `json:"pet_owners"`
	Veterinarians int64 `json:"veterinarians"`
	Partners      int64 `json:"partners"`
	Admins        int64 `json:"admins"`
	TotalPets     int64 `json:"total_pets"`
	TotalArticles int64 `json:"total_articles"`
	TotalProducts int64 `json:"total_products"`
}

type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	Users(ctx context.Context, filter UserFilter) ([]UserWithProfile, int64, error)
	SetActive(ctx context.Context, userID string, active bool) error
}
