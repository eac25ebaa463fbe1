package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type stubAdminRepo struct {
	total      int64
	active     int64
	byRole     map[domain.Role]int64
	pets       int64
	lastFilter ports.UserFilter
}

func (r *stubAdminRepo) CountUsers(_ context.Context, activeOnly bool) (int64, error) {
	if activeOnly {
		return r.active, nil
	}
	return r.total, nil
}

func (r *stubAdminRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	return r.byRole[role], nil
}

func (r *stubAdminRepo) CountPets(_ context.Context) (int64, error) {
	return r.pets, nil
}

func (r *stubAdminRepo) ListUsers(_ context.Context, filter ports.UserFilter) ([]ports.UserWithProfile, int64, error) {
	r.lastFilter = filter
	return nil, 0, nil
}

func (r *stubAdminRepo) SetActive(_ context.Context, userID string, active bool) error {
	if userID == "" {
		return domain.ErrUserNotFound
	}
	return nil
}

func TestAdminService_Stats(t *testing.T) {
	adminRepo := &stubAdminRepo{
		total:  12,
		active: 10,
		byRole: map[domain.Role]int64{
			domain.RoleOwner:        8,
			domain.RoleVeterinarian: 2,
			domain.RolePartner:      1,
			domain.RoleAdmin:        1,
		},
		pets: 15,
	}
	articleRepo := newStubArticleRepo()
	catalogRepo := newStubCatalogRepo()
	authorID := primitive.NewObjectID().Hex()
	if _, err := articleRepo.Create(context.Background(), &domain.Article{AuthorID: authorID, Title: "Teeth"}); err != nil {
		t.Fatalf("seed article: %v", err)
	}
	if _, err := catalogRepo.CreateProduct(context.Background(), &domain.Product{Name: "Bowl"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	svc := NewAdminService(adminRepo, articleRepo, catalogRepo, zerolog.Nop())
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalUsers != 12 || stats.ActiveUsers != 10 {
		t.Fatalf("user counts = %d/%d, want 12/10", stats.TotalUsers, stats.ActiveUsers)
	}
	if stats.PetOwners != 8 || stats.Veterinarians != 2 || stats.Partners != 1 || stats.Admins != 1 {
		t.Fatalf("role counts = %+v", stats)
	}
	if stats.TotalPets != 15 || stats.TotalArticles != 1 || stats.TotalProducts != 1 {
		t.Fatalf("aggregate counts = %+v", stats)
	}
}

func TestAdminService_Users_ClampsPaging(t *testing.T) {
	adminRepo := &stubAdminRepo{}
	svc := NewAdminService(adminRepo, newStubArticleRepo(), newStubCatalogRepo(), zerolog.Nop())

	if _, _, err := svc.Users(context.Background(), ports.UserFilter{Skip: -5, Limit: 0}); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if adminRepo.lastFilter.Skip != 0 || adminRepo.lastFilter.Limit != 100 {
		t.Fatalf("filter = %+v, want skip 0 limit 100", adminRepo.lastFilter)
	}

	if _, _, err := svc.Users(context.Background(), ports.UserFilter{Limit: 5000}); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if adminRepo.lastFilter.Limit != 100 {
		t.Fatalf("limit = %d, want clamp to 100", adminRepo.lastFilter.Limit)
	}
}
