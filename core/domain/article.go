// ABOUTME: Article domain model mirrors a post record from the WordPress REST API
// ABOUTME: ArticleView is the template-facing shape produced after enrichment

package domain

// Rendered wraps WordPress fields delivered as {"rendered": "<html>"}
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Article represents a blog post as returned by the content API
type Article struct {
	// ID is the WordPress post id
	ID int `json:"id"`

	// Date is the publication timestamp in site-local time (no zone)
	Date string `json:"date,omitempty"`

	Slug    string   `json:"slug,omitempty"`
	Link    string   `json:"link,omitempty"`
	Title   Rendered `json:"title"`
	Excerpt Rendered `json:"excerpt"`
	Content Rendered `json:"content"`
	Sticky  bool     `json:"sticky,omitempty"`

	// FeaturedMedia is the media id of the featured image, 0 when unset
	FeaturedMedia int `json:"featured_media"`

	// Author is the user id of the post author
	Author int `json:"author"`

	Categories []int `json:"categories"`

	// Group holds ids from the "group" custom taxonomy. Only the first one
	// is meaningful to templates.
	Group []int `json:"group"`

	Tags []int `json:"tags"`
}

// PrimaryGroup returns the first group id, or nil when the article has none
func (a *Article) PrimaryGroup() *int {
	if len(a.Group) == 0 {
		return nil
	}
	id := a.Group[0]
	return &id
}

// ArticleView is an article shaped for page templates
type ArticleView struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug,omitempty"`
	Link          string `json:"link,omitempty"`
	Title         string `json:"title,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content,omitempty"`
	Sticky        bool   `json:"sticky,omitempty"`
	Published     string `json:"published,omitempty"`
	Date          string `json:"date,omitempty"`
	FeaturedMedia int    `json:"featured_media"`
	AuthorID      int    `json:"author_id"`
	Categories    []int  `json:"categories"`
	Tags          []int  `json:"tags"`

	// Group is the article's primary group id
	Group *int `json:"group"`

	// Image is the resolved featured media, nil when not resolved
	Image *Media `json:"image"`

	// Author is the resolved post author, nil when not resolved
	Author *User `json:"author"`

	ImageColor *RGBColor `json:"image_color,omitempty"`
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}
