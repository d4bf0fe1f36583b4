// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines the content API contract the view builders enrich articles from

package interfaces

import (
	"context"

	"blog-views/core/domain"
)

// ContentAPI is the subset of the WordPress REST API the view builders use.
// Implementations return an error when a record cannot be fetched; callers
// decide whether to degrade.
type ContentAPI interface {
	// GetArticles returns the matching posts and the total number of pages
	GetArticles(ctx context.Context, query domain.ArticleQuery) ([]domain.Article, int, error)

	GetMedia(ctx context.Context, id int) (*domain.Media, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	GetGroupByID(ctx context.Context, id int) (*domain.Group, error)
	GetTagsByIDs(ctx context.Context, ids []int) ([]domain.Tag, error)
}

// ImageColorService extracts the prominent color of an image
type ImageColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}
