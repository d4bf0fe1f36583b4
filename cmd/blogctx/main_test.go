package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-views/infrastructure/cache/memory"
	"blog-views/infrastructure/cache/sqlite"
	"blog-views/pkg/config"
	"blog-views/pkg/featureflags"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Ubuntu Blog</title>
  <link>https://blog.example.com</link>
  <description>News</description>
  <item>
    <title>Hello world</title>
    <link>https://blog.example.com/hello-world</link>
    <guid>https://blog.example.com/?p=1</guid>
    <pubDate>Thu, 14 Feb 2019 10:30:00 +0000</pubDate>
    <description>&lt;p&gt;First post&lt;/p&gt;</description>
  </item>
</channel>
</rss>`

// fakeWordPress serves a tiny blog: one post with an author, an image, two
// categories, a group and a tag, plus one related post
func fakeWordPress(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	api := "/wp-json/wp/v2"

	mux.HandleFunc(api+"/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-TotalPages", "3")
		if r.URL.Query().Get("exclude") != "" {
			_, _ = w.Write([]byte(`[{"id":2,"slug":"related","title":{"rendered":"Related post"},"author":8,"featured_media":0,"categories":[],"group":[],"tags":[5]}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"date":"2019-02-14T10:30:00","slug":"hello-world","link":"https://blog.example.com/hello-world","title":{"rendered":"Hello &amp; welcome"},"excerpt":{"rendered":"<p>First post</p>"},"content":{"rendered":"<p>Body</p>"},"author":7,"featured_media":10,"categories":[1,2],"group":[3],"tags":[5]}]`))
	})
	mux.HandleFunc(api+"/media/10", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":10,"source_url":"https://blog.example.com/image.png"}`))
	})
	mux.HandleFunc(api+"/users/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"name":"Jane Doe","slug":"jane"}`))
	})
	mux.HandleFunc(api+"/categories/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"name":"News","slug":"news"}`))
	})
	mux.HandleFunc(api+"/group/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"name":"Cloud","slug":"cloud"}`))
	})
	mux.HandleFunc(api+"/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":5,"name":"sc:series-snaps","slug":"series-snaps"}]`))
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setTestEnv(t *testing.T, server *httptest.Server) {
	t.Helper()
	t.Setenv("BLOG_WORDPRESS_API_URL", server.URL+"/wp-json/wp/v2")
	t.Setenv("BLOG_WORDPRESS_SITE_URL", server.URL)
	t.Setenv("BLOG_WORDPRESS_RATE_LIMIT", "0")
	t.Setenv("BLOG_WORDPRESS_RETRIES", "0")
	t.Setenv("BLOG_CACHE_TYPE", "none")
	t.Setenv("BLOG_LOGGING_LEVEL", "error")
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestIndexCommand_JSON(t *testing.T) {
	setTestEnv(t, fakeWordPress(t))

	out, err := runCommand(t, "index", "--page", "2", "-o", "json")
	require.NoError(t, err)

	var got struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
		Articles    []struct {
			ID     int    `json:"id"`
			Title  string `json:"title"`
			Date   string `json:"date"`
			Group  *int   `json:"group"`
			Author *struct {
				Name string `json:"name"`
			} `json:"author"`
			Image *struct {
				SourceURL string `json:"source_url"`
			} `json:"image"`
		} `json:"articles"`
		UsedCategories map[string]*struct {
			Name string `json:"name"`
		} `json:"used_categories"`
		Groups map[string]*struct {
			Name string `json:"name"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 2, got.CurrentPage)
	assert.Equal(t, 3, got.TotalPages)
	require.Len(t, got.Articles, 1)

	article := got.Articles[0]
	assert.Equal(t, "Hello & welcome", article.Title)
	assert.Equal(t, "14 February 2019", article.Date)
	require.NotNil(t, article.Group)
	assert.Equal(t, 3, *article.Group)
	require.NotNil(t, article.Author)
	assert.Equal(t, "Jane Doe", article.Author.Name)
	require.NotNil(t, article.Image)
	assert.Equal(t, "https://blog.example.com/image.png", article.Image.SourceURL)

	require.Contains(t, got.UsedCategories, "1")
	assert.Equal(t, "News", got.UsedCategories["1"].Name)
	// category 2 does not exist
	require.Contains(t, got.UsedCategories, "2")
	assert.Nil(t, got.UsedCategories["2"])
	assert.Equal(t, "Cloud", got.Groups["3"].Name)
}

func TestIndexCommand_Table(t *testing.T) {
	setTestEnv(t, fakeWordPress(t))

	out, err := runCommand(t, "index", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Page 1 of 3")
	assert.Contains(t, out, "Hello & welcome")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Cloud")
	assert.Contains(t, out, "News")
}

func TestArticleCommand_JSON(t *testing.T) {
	setTestEnv(t, fakeWordPress(t))

	out, err := runCommand(t, "article", "hello-world", "--output", "json")
	require.NoError(t, err)

	var got struct {
		Article struct {
			ID     int `json:"id"`
			Author *struct {
				Name string `json:"name"`
			} `json:"author"`
			Image *json.RawMessage `json:"image"`
		} `json:"article"`
		RelatedArticles []struct {
			ID     int              `json:"id"`
			Author *json.RawMessage `json:"author"`
		} `json:"related_articles"`
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
		IsInSeries bool `json:"is_in_series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 1, got.Article.ID)
	require.NotNil(t, got.Article.Author)
	assert.Equal(t, "Jane Doe", got.Article.Author.Name)
	assert.Nil(t, got.Article.Image)

	require.Len(t, got.RelatedArticles, 1)
	assert.Equal(t, 2, got.RelatedArticles[0].ID)
	assert.Nil(t, got.RelatedArticles[0].Author)

	require.Len(t, got.Tags, 1)
	assert.True(t, got.IsInSeries)
}

func TestArticleCommand_Table(t *testing.T) {
	setTestEnv(t, fakeWordPress(t))

	out, err := runCommand(t, "article", "hello-world", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "sc:series-snaps")
	assert.Contains(t, out, "Related articles")
	assert.Contains(t, out, "Related post")
}

func TestArticleCommand_RequiresSlug(t *testing.T) {
	_, err := runCommand(t, "article")
	assert.Error(t, err)
}

func TestFeedCommand(t *testing.T) {
	setTestEnv(t, fakeWordPress(t))

	out, err := runCommand(t, "feed", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Title   string `json:"title"`
		Entries []struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Ubuntu Blog", got.Title)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Hello world", got.Entries[0].Title)
	assert.Equal(t, "First post", got.Entries[0].Summary)

	table, err := runCommand(t, "feed", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, table, "2019-02-14")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCommand(t, "index", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("BLOG_CACHE_TYPE", "memcached")

	_, err := runCommand(t, "index", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache type")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer

	got, err := resolveFormat("", &buf)
	require.NoError(t, err)
	assert.Equal(t, formatJSON, got, "non-terminal output defaults to json")

	got, err = resolveFormat("TABLE", &buf)
	require.NoError(t, err)
	assert.Equal(t, formatTable, got)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"index", "article", "feed"})

	found, _, err := cmd.Find([]string{"article"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(found.Use, "article"))
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func openTestApp(t *testing.T, features map[string]bool) *app {
	t.Helper()

	cfg := loadTestConfig(t)
	if features == nil {
		features = cfg.Features
	}
	ctx := featureflags.WithManager(context.Background(), featureflags.NewFromConfig(features))

	a, err := newApp(ctx, cfg, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewApp_CacheBackends(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		t.Setenv("BLOG_CACHE_TYPE", "memory")

		a := openTestApp(t, nil)
		assert.IsType(t, &memory.MemoryCache{}, a.cache)
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		t.Setenv("BLOG_CACHE_TYPE", "redis")
		t.Setenv("BLOG_CACHE_REDIS_ADDRESS", "127.0.0.1:1")

		a := openTestApp(t, nil)
		assert.IsType(t, &memory.MemoryCache{}, a.cache)
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Setenv("BLOG_CACHE_TYPE", "sqlite")
		t.Setenv("BLOG_CACHE_SQLITE_PATH", filepath.Join(t.TempDir(), "cache.db"))

		a := openTestApp(t, nil)
		sqliteCache, ok := a.cache.(*sqlite.Client)
		require.True(t, ok, "expected sqlite cache, got %T", a.cache)

		ctx := context.Background()
		require.NoError(t, sqliteCache.Set(ctx, "wp:/users/7", []byte(`{"id":7}`), time.Minute))
		got, err := sqliteCache.Get(ctx, "wp:/users/7")
		require.NoError(t, err)
		assert.Equal(t, `{"id":7}`, string(got))
	})

	t.Run("none", func(t *testing.T) {
		t.Setenv("BLOG_CACHE_TYPE", "none")

		a := openTestApp(t, nil)
		assert.Nil(t, a.cache)
	})

	t.Run("response cache flag off", func(t *testing.T) {
		t.Setenv("BLOG_CACHE_TYPE", "memory")

		a := openTestApp(t, map[string]bool{string(featureflags.ResponseCache): false})
		assert.Nil(t, a.cache)
	})
}

func TestNewApp_NoFlagManagerDisablesFeatures(t *testing.T) {
	t.Setenv("BLOG_CACHE_TYPE", "memory")
	cfg := loadTestConfig(t)

	a, err := newApp(context.Background(), cfg, io.Discard)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.cache)
}

func TestCommandContext_OpenAttachesFlags(t *testing.T) {
	t.Setenv("BLOG_CACHE_TYPE", "none")
	t.Setenv("BLOG_FEATURES_IMAGE_COLORS", "true")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(io.Discard)

	cc := &commandContext{}
	a, err := cc.open(cmd)
	require.NoError(t, err)
	defer a.Close()

	manager := featureflags.FromContext(cmd.Context())
	assert.True(t, manager.IsEnabled(cmd.Context(), featureflags.ImageColors))
	assert.True(t, manager.IsEnabled(cmd.Context(), featureflags.ResponseCache))
}
