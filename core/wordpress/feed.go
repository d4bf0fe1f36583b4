// ABOUTME: Blog RSS feed retrieval and parsing built on gofeed
// ABOUTME: Converts WordPress feed items into domain feed entries with thumbnails

package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog-views/core/domain"
	coreerrors "blog-views/core/errors"
	"blog-views/pkg/utils/html"
	"github.com/mmcdole/gofeed"
)

// GetFeed fetches the blog RSS feed, narrowed to tagSlug when it is set
func (c *Client) GetFeed(ctx context.Context, tagSlug string) (*domain.Feed, error) {
	feedURL := c.siteURL + "/feed"
	if tagSlug != "" {
		feedURL += "?" + url.Values{"tag": []string{tagSlug}}.Encode()
	}
	key := "feed:" + feedURL

	if c.deps.Cache != nil {
		if data, err := c.deps.Cache.Get(ctx, key); err == nil && data != nil {
			var feed domain.Feed
			if err := json.Unmarshal(data, &feed); err == nil {
				return &feed, nil
			}
		}
	}

	if c.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := c.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "request feed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "feed returned non-200 status code",
			API:        apiName,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, coreerrors.WrapError(err, "read feed")
	}

	feed, err := parseFeed(body)
	if err != nil {
		return nil, err
	}

	// Cache the feed (ignore cache errors)
	if c.deps.Cache != nil {
		if data, err := json.Marshal(feed); err == nil {
			_ = c.deps.Cache.Set(ctx, key, data, c.cacheTTL)
		}
	}

	return feed, nil
}

// parseFeed parses RSS/Atom bytes into the domain feed
func parseFeed(content []byte) (*domain.Feed, error) {
	if len(content) == 0 {
		return nil, errors.New("empty feed content")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		return nil, coreerrors.WrapError(err, "parse feed")
	}

	feed := &domain.Feed{
		Title:       parsed.Title,
		Description: parsed.Description,
		Link:        parsed.Link,
		Language:    parsed.Language,
		Entries:     make([]domain.FeedEntry, 0, len(parsed.Items)),
	}

	switch {
	case parsed.UpdatedParsed != nil:
		feed.LastUpdated = *parsed.UpdatedParsed
	case parsed.PublishedParsed != nil:
		feed.LastUpdated = *parsed.PublishedParsed
	default:
		feed.LastUpdated = time.Now()
	}

	for _, item := range parsed.Items {
		entry := convertItem(item, parsed)
		if entry.IsValid() {
			feed.Entries = append(feed.Entries, entry)
		}
	}

	return feed, nil
}

// convertItem converts a gofeed item to a domain entry
func convertItem(item *gofeed.Item, feed *gofeed.Feed) domain.FeedEntry {
	entry := domain.FeedEntry{
		GUID:       item.GUID,
		Title:      html.StripHTML(item.Title),
		Link:       item.Link,
		Summary:    html.StripHTML(item.Description),
		Categories: item.Categories,
		Thumbnail:  findThumbnail(item, feed),
	}

	if entry.GUID == "" {
		entry.GUID = item.Link
	}

	if item.PublishedParsed != nil {
		entry.Published = *item.PublishedParsed
	}

	if item.Author != nil && item.Author.Name != "" {
		entry.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		entry.Author = item.Authors[0].Name
	}

	return entry
}

// findThumbnail picks an image for the entry in order of preference:
// media:content, image enclosures, the item image, then the feed image.
func findThumbnail(item *gofeed.Item, feed *gofeed.Feed) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					if medium := ext.Attrs["medium"]; medium == "" || medium == "image" {
						return u
					}
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if feed != nil && feed.Image != nil && feed.Image.URL != "" {
		return feed.Image.URL
	}

	return ""
}
