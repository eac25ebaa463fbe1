package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

const (
	categoriesCollection    = "product_categories"
	subcategoriesCollection = "product_subcategories"
	productsCollection      = "products"
)

type CatalogRepository struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
	products      *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		categories:    db.Collection(categoriesCollection),
		subcategories: db.Collection(subcategoriesCollection),
		products:      db.Collection(productsCollection),
	}
}

type mongoCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Slug      string             `bson:"slug,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty"`
	SortOrder int                `bson:"sort_order"`
	Active    bool               `bson:"is_active"`
}

type mongoSubcategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CategoryID primitive.ObjectID `bson:"category_id"`
	Name       string             `bson:"name"`
	Slug       string             `bson:"slug,omitempty"`
	SortOrder  int                `bson:"sort_order"`
	Active     bool               `bson:"is_active"`
}

type mongoProduct struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	PartnerID     primitive.ObjectID `bson:"user_id"`
	SubcategoryID string             `bson:"subcategory_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	Price         float64            `bson:"price"`
	ImageURL      string             `bson:"img_url,omitempty"`
	Active        bool               `bson:"is_active"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.categories.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ProductCategory
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, *mc.toDomain())
	}
	return out, cur.Err()
}

func (r *CatalogRepository) FindCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	var mc mongoCategory
	if err := r.categories.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	res, err := r.categories.InsertOne(ctx, mongoCategory{
		Name:      c.Name,
		Slug:      c.Slug,
		ImageURL:  c.ImageURL,
		SortOrder: c.SortOrder,
		Active:    c.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CatalogRepository) ListSubcategories(ctx context.Context, categoryID string) ([]domain.ProductSubcategory, error) {
	filter := bson.M{"is_active": true}
	if categoryID != "" {
		cid, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		filter["category_id"] = cid
	}

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.subcategories.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find subcategories: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ProductSubcategory
	for cur.Next(ctx) {
		var ms mongoSubcategory
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode subcategory: %w", err)
		}
		out = append(out, *ms.toDomain())
	}
	return out, cur.Err()
}

func (r *CatalogRepository) FindSubcategory(ctx context.Context, id string) (*domain.ProductSubcategory, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubcategoryNotFound
	}

	var ms mongoSubcategory
	if err := r.subcategories.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *CatalogRepository) CreateSubcategory(ctx context.Context, s *domain.ProductSubcategory) (*domain.ProductSubcategory, error) {
	cid, err := primitive.ObjectIDFromHex(s.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	res, err := r.subcategories.InsertOne(ctx, mongoSubcategory{
		CategoryID: cid,
		Name:       s.Name,
		Slug:       s.Slug,
		SortOrder:  s.SortOrder,
		Active:     s.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("insert subcategory: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, partnerID string) ([]domain.Product, error) {
	filter := bson.M{"is_active": true}
	if partnerID != "" {
		pid, err := primitive.ObjectIDFromHex(partnerID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		filter = bson.M{"user_id": pid}
	}

	cur, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, *mp.toDomain())
	}
	return out, cur.Err()
}

func (r *CatalogRepository) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc, err := productToDoc(p)
	if err != nil {
		return nil, err
	}

	res, err := r.products.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	doc, err := productToDoc(p)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.products.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *CatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.products.CountDocuments(ctx, bson.M{})
}

func (mc mongoCategory) toDomain() *domain.ProductCategory {
	return &domain.ProductCategory{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		Slug:      mc.Slug,
		ImageURL:  mc.ImageURL,
		SortOrder: mc.SortOrder,
		Active:    mc.Active,
	}
}

func (ms mongoSubcategory) toDomain() *domain.ProductSubcategory {
	return &domain.ProductSubcategory{
		ID:         ms.ID.Hex(),
		CategoryID: ms.CategoryID.Hex(),
		Name:       ms.Name,
		Slug:       ms.Slug,
		SortOrder:  ms.SortOrder,
		Active:     ms.Active,
	}
}

func productToDoc(p *domain.Product) (mongoProduct, error) {
	pid, err := primitive.ObjectIDFromHex(p.PartnerID)
	if err != nil {
		return mongoProduct{}, domain.ErrUserNotFound
	}
	return mongoProduct{
		PartnerID:     pid,
		SubcategoryID: p.SubcategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.Unix(),
		UpdatedAt:     p.UpdatedAt.Unix(),
	}, nil
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:            mp.ID.Hex(),
		PartnerID:     mp.PartnerID.Hex(),
		SubcategoryID: mp.SubcategoryID,
		Name:          mp.Name,
		Description:   mp.Description,
		Price:         mp.Price,
		ImageURL:      mp.ImageURL,
		Active:        mp.Active,
		CreatedAt:     unixToTime(mp.CreatedAt),
		UpdatedAt:     unixToTime(mp.UpdatedAt),
	}
}
