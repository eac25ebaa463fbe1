package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// CatalogRepository defines the persistence interface for marketplace
// categories, subcategories and partner products.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.ProductCategory, error)
	FindCategory(ctx context.Context, id string) (*domain.ProductCategory, error)
	CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error)

	ListSubcategories(ctx context.Context, categoryID string) ([]domain.ProductSubcategory, error)
	FindSubcategory(ctx context.Context, id string) (*domain.ProductSubcategory, error)
	CreateSubcategory(ctx context.Context, s *domain.ProductSubcategory) (*domain.ProductSubcategory, error)

	ListProducts(ctx context.Context, partnerID string) ([]domain.Product, error)
	FindProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CountProducts(ctx context.Context) (int64, error)
}

type CatalogService interface {
	Categories(ctx context.Context) ([]domain.ProductCategory, error)
	Category(ctx context.Context, id string) (*domain.ProductCategory, error)
	CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error)
	Subcategories(ctx context.Context, categoryID string) ([]domain.ProductSubcategory, error)
	Subcategory(ctx context.Context, id string) (*domain.ProductSubcategory, error)
	CreateSubcategory(ctx context.Context, s *domain.ProductSubcategory) (*domain.ProductSubcategory, error)

	Products(ctx context.Context, partnerID string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, partnerID string, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, partnerID, productID string, update *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, partnerID, productID string) error
}
