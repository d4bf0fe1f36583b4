// ABOUTME: Pure transformation of raw content API articles into template article views
// ABOUTME: Resolves the primary group, plain-text title/excerpt and display date

package blog

import (
	"strings"

	"blog-views/core/domain"
	"blog-views/pkg/utils/html"
	timeutil "blog-views/pkg/utils/time"
)

// seriesTagPrefix marks tags that group articles into a series
const seriesTagPrefix = "sc:series"

// TransformArticle shapes a raw article for templates. image and author are
// the already resolved lookups; either may be nil.
func TransformArticle(article domain.Article, image *domain.Media, author *domain.User) domain.ArticleView {
	return domain.ArticleView{
		ID:            article.ID,
		Slug:          article.Slug,
		Link:          article.Link,
		Title:         html.StripHTML(article.Title.Rendered),
		Excerpt:       html.StripHTML(article.Excerpt.Rendered),
		Content:       article.Content.Rendered,
		Sticky:        article.Sticky,
		Published:     article.Date,
		Date:          timeutil.FormatDisplayDate(article.Date),
		FeaturedMedia: article.FeaturedMedia,
		AuthorID:      article.Author,
		Categories:    article.Categories,
		Tags:          article.Tags,
		Group:         article.PrimaryGroup(),
		Image:         image,
		Author:        author,
	}
}

// IsInSeries reports whether any of the tags marks a series
func IsInSeries(tags []domain.Tag) bool {
	for _, tag := range tags {
		if strings.HasPrefix(tag.Name, seriesTagPrefix) {
			return true
		}
	}
	return false
}
