// ABOUTME: Template context values produced by the blog view builders
// ABOUTME: JSON keys match the names page templates look up

package domain

// IndexContext is the context for a paginated list of articles
type IndexContext struct {
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	Articles    []ArticleView `json:"articles"`

	// UsedCategories maps every category id referenced by Articles to its
	// record. A nil value means the lookup failed.
	UsedCategories map[int]*Category `json:"used_categories"`

	// Groups maps every primary group id referenced by Articles to its
	// record. A nil value means the lookup failed.
	Groups map[int]*Group `json:"groups"`
}

// ArticleContext is the context for a single article page
type ArticleContext struct {
	Article ArticleView `json:"article"`

	// RelatedArticles is nil when related articles could not be fetched
	// and empty when there are none.
	RelatedArticles []ArticleView `json:"related_articles"`

	// Tags is never nil; it is empty when tags could not be fetched.
	Tags []Tag `json:"tags"`

	IsInSeries bool `json:"is_in_series"`
}

// ArticleQuery selects posts from the content API. Zero values are omitted
// from the request.
type ArticleQuery struct {
	Slug        string
	Tags        []int
	TagsExclude []int
	Categories  []int
	Groups      []int
	Exclude     []int
	Author      int
	Sticky      *bool
	Before      string
	After       string
	PerPage     int
	Page        int
}
