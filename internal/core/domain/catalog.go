package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrProductNotFound     = errors.New("product not found")
)

// ProductCategory is a top-level marketplace category.
type ProductCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"is_active"`
}

// ProductSubcategory belongs to exactly one category.
type ProductSubcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug,omitempty"`
	SortOrder  int    `json:"sort_order"`
	Active     bool   `json:"is_active"`
}

// Product is a shop item owned by a partner.
type Product struct {
	ID            string    `json:"id"`
	PartnerID     string    `json:"user_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"img_url,omitempty"`
	Active        bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
