package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

// Article is an editorial or vet-authored piece. Unpublished articles are
// visible only to their author.
type Article struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"vet_id,omitempty"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    string     `json:"category,omitempty"`
	AuthorName  string     `json:"author_name,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"`
	Published   bool       `json:"is_published"`
	ViewsCount  int64      `json:"views_count"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
