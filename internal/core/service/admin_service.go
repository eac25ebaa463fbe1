package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// AdminService serves dashboard statistics and user administration.
type AdminService struct {
	repo     ports.AdminRepository
	articles ports.ArticleRepository
	catalog  ports.CatalogRepository
	logger   zerolog.Logger
}

func NewAdminService(repo ports.AdminRepository, articles ports.ArticleRepository, catalog ports.CatalogRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, articles: articles, catalog: catalog, logger: logger}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	stats := &ports.Stats{}

	var err error
	if stats.TotalUsers, err = s.repo.CountUsers(ctx, false); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.repo.CountUsers(ctx, true); err != nil {
		return nil, err
	}
	if stats.PetOwners, err = s.repo.CountByRole(ctx, domain.RoleOwner); err != nil {
		return nil, err
	}
	if stats.Veterinarians, err = s.repo.CountByRole(ctx, domain.RoleVeterinarian); err != nil {
		return nil, err
	}
	if stats.Partners, err = s.repo.CountByRole(ctx, domain.RolePartner); err != nil {
		return nil, err
	}
	if stats.Admins, err = s.repo.CountByRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.TotalPets, err = s.repo.CountPets(ctx); err != nil {
		return nil, err
	}
	if stats.TotalArticles, err = s.articles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.catalog.CountProducts(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) Users(ctx context.Context, filter ports.UserFilter) ([]ports.UserWithProfile, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	return s.repo.ListUsers(ctx, filter)
}

func (s *AdminService) SetActive(ctx context.Context, userID string, active bool) error {
	if err := s.repo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Bool("active", active).Msg("user active flag changed")
	return nil
}
