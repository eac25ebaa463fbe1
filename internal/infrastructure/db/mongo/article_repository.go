package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	AuthorID    *primitive.ObjectID `bson:"vet_id,omitempty"`
	Title       string              `bson:"title"`
	Excerpt     string              `bson:"excerpt,omitempty"`
	Content     string              `bson:"content,omitempty"`
	ImageURL    string              `bson:"image_url,omitempty"`
	Category    string              `bson:"category,omitempty"`
	AuthorName  string              `bson:"author_name,omitempty"`
	SourceURL   string              `bson:"source_url,omitempty"`
	Published   bool                `bson:"is_published"`
	ViewsCount  int64               `bson:"views_count"`
	CreatedAt   int64               `bson:"created_at"`
	PublishedAt *time.Time          `bson:"published_at,omitempty"`
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	doc, err := articleToDoc(a)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	var ma mongoArticle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) ListPublished(ctx context.Context, category string, skip, limit int64) ([]domain.Article, error) {
	filter := bson.M{"is_published": true}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	return r.list(ctx, filter, opts)
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Article, error) {
	aid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{"vet_id": aid}, opts)
}

func (r *ArticleRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Article, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Article
	for cur.Next(ctx) {
		var ma mongoArticle
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		out = append(out, *ma.toDomain())
	}
	return out, cur.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	doc, err := articleToDoc(a)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views_count": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func articleToDoc(a *domain.Article) (mongoArticle, error) {
	doc := mongoArticle{
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		Category:    a.Category,
		AuthorName:  a.AuthorName,
		SourceURL:   a.SourceURL,
		Published:   a.Published,
		ViewsCount:  a.ViewsCount,
		CreatedAt:   a.CreatedAt.Unix(),
		PublishedAt: a.PublishedAt,
	}
	if a.AuthorID != "" {
		aid, err := primitive.ObjectIDFromHex(a.AuthorID)
		if err != nil {
			return mongoArticle{}, domain.ErrUserNotFound
		}
		doc.AuthorID = &aid
	}
	return doc, nil
}

func (ma mongoArticle) toDomain() *domain.Article {
	a := &domain.Article{
		ID:          ma.ID.Hex(),
		Title:       ma.Title,
		Excerpt:     ma.Excerpt,
		Content:     ma.Content,
		ImageURL:    ma.ImageURL,
		Category:    ma.Category,
		AuthorName:  ma.AuthorName,
		SourceURL:   ma.SourceURL,
		Published:   ma.Published,
		ViewsCount:  ma.ViewsCount,
		CreatedAt:   unixToTime(ma.CreatedAt),
		PublishedAt: ma.PublishedAt,
	}
	if ma.AuthorID != nil {
		a.AuthorID = ma.AuthorID.Hex()
	}
	return a
}
