package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	ListPublished(ctx context.Context, category string, skip, limit int64) ([]domain.Article, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Article, error)
	Update(ctx context.Context, a *domain.Article) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ArticleService interface {
	Published(ctx context.Context, category string, skip, limit int64) ([]domain.Article, error)
	Read(ctx context.Context, id string) (*domain.Article, error)

	Create(ctx context.Context, authorID string, a *domain.Article) (*domain.Article, error)
	Mine(ctx context.Context, authorID string) ([]domain.Article, error)
	Update(ctx context.Context, authorID, articleID string, update *domain.Article) (*domain.Article, error)
	Publish(ctx context.Context, authorID, articleID string) (*domain.Article, error)
	Delete(ctx context.Context, authorID, articleID string) error
}
