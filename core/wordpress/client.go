// ABOUTME: WordPress REST API client used to fetch posts and the records they reference
// ABOUTME: Serves responses from cache when possible and maps API failures to typed errors

package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"blog-views/core/domain"
	coreerrors "blog-views/core/errors"
	"blog-views/core/interfaces"
	"blog-views/pkg/utils/parse"
)

const (
	// DefaultAPIURL is the REST root of the blog's WordPress instance
	DefaultAPIURL = "https://admin.insights.ubuntu.com/wp-json/wp/v2"

	// DefaultSiteURL is the public root of the same instance, used for feeds
	DefaultSiteURL = "https://admin.insights.ubuntu.com"

	// DefaultCacheTTL applies when no TTL option is given
	DefaultCacheTTL = 5 * time.Minute

	apiName          = "wordpress"
	totalPagesHeader = "X-WP-TotalPages"
	maxPerPage       = 100
	maxErrorBody     = 512
)

// Client fetches content from the WordPress REST API
type Client struct {
	deps     interfaces.Dependencies
	apiURL   string
	siteURL  string
	cacheTTL time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithAPIURL overrides the REST root, e.g. "https://example.com/wp-json/wp/v2"
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
	}
}

// WithSiteURL overrides the public site root used for the RSS feed
func WithSiteURL(siteURL string) Option {
	return func(c *Client) {
		c.siteURL = strings.TrimRight(siteURL, "/")
	}
}

// WithCacheTTL sets how long API responses are cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// NewClient creates a new WordPress client
func NewClient(deps interfaces.Dependencies, opts ...Option) *Client {
	c := &Client{
		deps:     deps,
		apiURL:   DefaultAPIURL,
		siteURL:  DefaultSiteURL,
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetArticles returns posts matching the query and the total page count
// reported by the API.
func (c *Client) GetArticles(ctx context.Context, query domain.ArticleQuery) ([]domain.Article, int, error) {
	var articles []domain.Article
	totalPages, err := c.getJSON(ctx, "/posts", articleQueryValues(query), "posts", &articles)
	if err != nil {
		return nil, 0, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, totalPages, nil
}

// GetArticle returns the posts published under slug. WordPress answers
// slug queries with a list, which is usually empty or a single post.
func (c *Client) GetArticle(ctx context.Context, slug string) ([]domain.Article, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, &coreerrors.ValidationError{Field: "slug", Message: "cannot be empty"}
	}
	articles, _, err := c.GetArticles(ctx, domain.ArticleQuery{Slug: slug})
	return articles, err
}

// GetMedia fetches a media attachment by id
func (c *Client) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	var media domain.Media
	if err := c.getByID(ctx, "media", id, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// GetUser fetches a user by id
func (c *Client) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := c.getByID(ctx, "users", id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCategoryByID fetches a category by id
func (c *Client) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	if err := c.getByID(ctx, "categories", id, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategories returns the first page of up to 100 categories
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(maxPerPage))

	var categories []domain.Category
	if _, err := c.getJSON(ctx, "/categories", params, "categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetGroupByID fetches a term of the "group" taxonomy by id
func (c *Client) GetGroupByID(ctx context.Context, id int) (*domain.Group, error) {
	var group domain.Group
	if err := c.getByID(ctx, "group", id, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetTagsByIDs fetches the tags with the given ids. An empty id list
// returns an empty slice without calling the API. The API pages at 100
// results, so longer id lists are requested in chunks of that size.
func (c *Client) GetTagsByIDs(ctx context.Context, ids []int) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(ids))

	for start := 0; start < len(ids); start += maxPerPage {
		end := start + maxPerPage
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		params := url.Values{}
		params.Set("include", parse.JoinInts(chunk))
		params.Set("per_page", strconv.Itoa(len(chunk)))

		var page []domain.Tag
		if _, err := c.getJSON(ctx, "/tags", params, "tags", &page); err != nil {
			return nil, err
		}
		tags = append(tags, page...)
	}

	return tags, nil
}

// GetTagByName looks a tag up by its slug
func (c *Client) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &coreerrors.ValidationError{Field: "name", Message: "cannot be empty"}
	}

	params := url.Values{}
	params.Set("slug", name)

	var tags []domain.Tag
	if _, err := c.getJSON(ctx, "/tags", params, "tags", &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, coreerrors.NewNotFound("tag", name)
	}
	return &tags[0], nil
}

// getByID fetches /{collection}/{id} into dest
func (c *Client) getByID(ctx context.Context, collection string, id int, dest interface{}) error {
	if id <= 0 {
		return &coreerrors.ValidationError{Field: "id", Message: fmt.Sprintf("invalid %s id %d", collection, id)}
	}
	_, err := c.getJSON(ctx, fmt.Sprintf("/%s/%d", collection, id), nil, collection, dest)
	return err
}

// cachedResponse is what gets stored in the cache for one API call
type cachedResponse struct {
	Body       json.RawMessage `json:"body"`
	TotalPages int             `json:"total_pages"`
}

// getJSON performs a cached GET against the REST API and decodes the body
// into dest. It returns the X-WP-TotalPages header value, 0 when absent.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, resource string, dest interface{}) (int, error) {
	endpoint := c.apiURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	key := "wp:" + strings.TrimPrefix(endpoint, c.apiURL)

	if cached, ok := c.getCached(ctx, key); ok {
		if err := decodeInto(cached.Body, dest); err == nil {
			return cached.TotalPages, nil
		}
		c.logDebug("Cached body does not match the expected shape", map[string]interface{}{"key": key})
	}

	if c.deps.HTTPClient == nil {
		return 0, errors.New("HTTP client not configured")
	}

	resp, err := c.deps.HTTPClient.Get(ctx, endpoint)
	if err != nil {
		return 0, coreerrors.WrapError(err, "request "+path)
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return 0, coreerrors.WrapError(err, "read "+path)
	}

	if resp.StatusCode() != http.StatusOK {
		id := strings.TrimPrefix(path, "/"+resource+"/")
		if id == path {
			id = params.Encode()
		}
		return 0, statusError(resp.StatusCode(), resource, id, body)
	}

	if err := decodeInto(body, dest); err != nil {
		return 0, coreerrors.WrapError(err, "decode "+path)
	}

	totalPages := parse.IntOrZero(resp.Header(totalPagesHeader))

	// Cache the response (ignore cache errors)
	_ = c.setCached(ctx, key, cachedResponse{Body: body, TotalPages: totalPages})

	return totalPages, nil
}

// decodeInto decodes data into a fresh value of dest's type and only
// stores it in dest when decoding succeeds, so a failed decode leaves dest
// untouched
func decodeInto(data []byte, dest interface{}) error {
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return json.Unmarshal(data, dest)
	}

	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return err
	}
	target.Elem().Set(fresh.Elem())
	return nil
}

// statusError maps a non-200 response to a typed error
func statusError(status int, resource, id string, body []byte) error {
	if status == http.StatusNotFound {
		return coreerrors.NewNotFound(resource, id)
	}

	// WordPress error bodies look like {"code": "...", "message": "..."}
	var apiErr struct {
		Message string `json:"message"`
	}
	message := http.StatusText(status)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		message = apiErr.Message
	} else if len(body) > 0 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		message = strings.TrimSpace(string(body))
	}

	return &coreerrors.ExternalAPIError{
		StatusCode: status,
		Message:    message,
		API:        apiName,
	}
}

// getCached retrieves a response from cache
func (c *Client) getCached(ctx context.Context, key string) (*cachedResponse, bool) {
	if c.deps.Cache == nil {
		return nil, false
	}

	data, err := c.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logDebug("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	c.logDebug("Content API cache hit", map[string]interface{}{"key": key})
	return &cached, true
}

// setCached stores a response in cache
func (c *Client) setCached(ctx context.Context, key string, resp cachedResponse) error {
	if c.deps.Cache == nil {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.deps.Cache.Set(ctx, key, data, c.cacheTTL)
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Debug(msg, fields)
	}
}

// articleQueryValues encodes a query using the REST API parameter names
func articleQueryValues(q domain.ArticleQuery) url.Values {
	params := url.Values{}

	setIDs := func(name string, ids []int) {
		if len(ids) > 0 {
			params.Set(name, parse.JoinInts(ids))
		}
	}
	setString := func(name, value string) {
		if value != "" {
			params.Set(name, value)
		}
	}
	setInt := func(name string, value int) {
		if value > 0 {
			params.Set(name, strconv.Itoa(value))
		}
	}

	setString("slug", q.Slug)
	setIDs("tags", q.Tags)
	setIDs("tags_exclude", q.TagsExclude)
	setIDs("categories", q.Categories)
	setIDs("group", q.Groups)
	setIDs("exclude", q.Exclude)
	setInt("author", q.Author)
	setString("before", q.Before)
	setString("after", q.After)

	perPage := q.PerPage
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	setInt("per_page", perPage)
	setInt("page", q.Page)

	if q.Sticky != nil {
		params.Set("sticky", strconv.FormatBool(*q.Sticky))
	}

	return params
}
