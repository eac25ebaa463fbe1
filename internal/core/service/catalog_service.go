package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// CatalogService serves the public marketplace taxonomy and partner-owned
// products.
type CatalogService struct {
	repo   ports.CatalogRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.ProductCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id string) (*domain.ProductCategory, error) {
	return s.repo.FindCategory(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	c.Active = true
	return s.repo.CreateCategory(ctx, c)
}

func (s *CatalogService) Subcategories(ctx context.Context, categoryID string) ([]domain.ProductSubcategory, error) {
	return s.repo.ListSubcategories(ctx, categoryID)
}

func (s *CatalogService) Subcategory(ctx context.Context, id string) (*domain.ProductSubcategory, error) {
	return s.repo.FindSubcategory(ctx, id)
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, sub *domain.ProductSubcategory) (*domain.ProductSubcategory, error) {
	if _, err := s.repo.FindCategory(ctx, sub.CategoryID); err != nil {
		return nil, err
	}
	sub.Active = true
	return s.repo.CreateSubcategory(ctx, sub)
}

// Products lists a partner's products; with an empty partnerID it lists the
// whole marketplace.
func (s *CatalogService) Products(ctx context.Context, partnerID string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, partnerID)
}

func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, partnerID string, p *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	p.PartnerID = partnerID
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", created.ID).Str("partner_id", partnerID).Msg("product created")
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, partnerID, productID string, update *domain.Product) (*domain.Product, error) {
	existing, err := s.ownedProduct(ctx, partnerID, productID)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.PartnerID = existing.PartnerID
	update.CreatedAt = existing.CreatedAt
	update.UpdatedAt = time.Now().UTC()

	return s.repo.UpdateProduct(ctx, update)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, partnerID, productID string) error {
	if _, err := s.ownedProduct(ctx, partnerID, productID); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, productID)
}

func (s *CatalogService) ownedProduct(ctx context.Context, partnerID, productID string) (*domain.Product, error) {
	p, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.PartnerID != partnerID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
