// ABOUTME: Lookup entities referenced by articles: media, users, categories, groups and tags
// ABOUTME: Field names follow the WordPress REST API JSON so records decode directly

package domain

// Media is an attachment record, typically a featured image
type Media struct {
	ID           int          `json:"id"`
	SourceURL    string       `json:"source_url"`
	AltText      string       `json:"alt_text,omitempty"`
	MediaType    string       `json:"media_type,omitempty"`
	MediaDetails MediaDetails `json:"media_details"`
}

// MediaDetails carries the intrinsic size of an image attachment
type MediaDetails struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// User is a post author
type User struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug,omitempty"`
	Description string            `json:"description,omitempty"`
	Link        string            `json:"link,omitempty"`
	AvatarURLs  map[string]string `json:"avatar_urls,omitempty"`
}

// Category is a WordPress post category
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count,omitempty"`
	Parent      int    `json:"parent,omitempty"`
}

// Group is a term of the "group" custom taxonomy
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Tag is a post tag
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
