package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

// ArticleService serves the public article feed and vet-owned authoring.
type ArticleService struct {
	repo   ports.ArticleRepository
	logger zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

func (s *ArticleService) Published(ctx context.Context, category string, skip, limit int64) ([]domain.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.ListPublished(ctx, category, skip, limit)
}

// Read returns a published article and counts the view. Unpublished
// articles are only visible to their author through Mine.
func (s *ArticleService) Read(ctx context.Context, id string) (*domain.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Published {
		return nil, domain.ErrArticleNotFound
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("article_id", id).Msg("view count increment failed")
	}
	a.ViewsCount++
	return a, nil
}

func (s *ArticleService) Create(ctx context.Context, authorID string, a *domain.Article) (*domain.Article, error) {
	a.AuthorID = authorID
	a.Published = false
	a.ViewsCount = 0
	a.CreatedAt = time.Now().UTC()
	a.PublishedAt = nil
	return s.repo.Create(ctx, a)
}

func (s *ArticleService) Mine(ctx context.Context, authorID string) ([]domain.Article, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *ArticleService) Update(ctx context.Context, authorID, articleID string, update *domain.Article) (*domain.Article, error) {
	existing, err := s.owned(ctx, authorID, articleID)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.AuthorID = existing.AuthorID
	update.Published = existing.Published
	update.ViewsCount = existing.ViewsCount
	update.CreatedAt = existing.CreatedAt
	update.PublishedAt = existing.PublishedAt

	return s.repo.Update(ctx, update)
}

func (s *ArticleService) Publish(ctx context.Context, authorID, articleID string) (*domain.Article, error) {
	existing, err := s.owned(ctx, authorID, articleID)
	if err != nil {
		return nil, err
	}
	if existing.Published {
		return existing, nil
	}

	now := time.Now().UTC()
	existing.Published = true
	existing.PublishedAt = &now

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("article_id", articleID).Str("vet_id", authorID).Msg("article published")
	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, authorID, articleID string) error {
	if _, err := s.owned(ctx, authorID, articleID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, articleID)
}

func (s *ArticleService) owned(ctx context.Context, authorID, articleID string) (*domain.Article, error) {
	a, err := s.repo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a.AuthorID != authorID {
		return nil, domain.ErrForbidden
	}
	return a, nil
}
