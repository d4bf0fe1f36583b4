// ABOUTME: Feed domain model represents entries of the blog's RSS feed
// ABOUTME: Used when templates or tools need the syndicated view of recent posts

package domain

import "time"

// Feed represents the blog RSS feed, optionally narrowed to a tag
type Feed struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Link        string      `json:"link"`
	Language    string      `json:"language,omitempty"`
	LastUpdated time.Time   `json:"last_updated"`
	Entries     []FeedEntry `json:"entries"`
}

// FeedEntry is a single item of the blog feed
type FeedEntry struct {
	GUID       string    `json:"guid"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Summary    string    `json:"summary,omitempty"`
	Author     string    `json:"author,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Published  time.Time `json:"published"`
}

// IsValid reports whether the entry has the fields a listing needs
func (e *FeedEntry) IsValid() bool {
	return e.Title != "" && e.Link != ""
}
