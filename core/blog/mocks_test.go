package blog

import (
	"context"
	"errors"
	"sync"

	"blog-views/core/domain"
)

var errUnavailable = errors.New("content API unavailable")

// mockContentAPI is a mock implementation of the ContentAPI interface
type mockContentAPI struct {
	getArticlesFunc     func(ctx context.Context, query domain.ArticleQuery) ([]domain.Article, int, error)
	getMediaFunc        func(ctx context.Context, id int) (*domain.Media, error)
	getUserFunc         func(ctx context.Context, id int) (*domain.User, error)
	getCategoryByIDFunc func(ctx context.Context, id int) (*domain.Category, error)
	getGroupByIDFunc    func(ctx context.Context, id int) (*domain.Group, error)
	getTagsByIDsFunc    func(ctx context.Context, ids []int) ([]domain.Tag, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *mockContentAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

func (m *mockContentAPI) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockContentAPI) GetArticles(ctx context.Context, query domain.ArticleQuery) ([]domain.Article, int, error) {
	m.record("GetArticles")
	if m.getArticlesFunc != nil {
		return m.getArticlesFunc(ctx, query)
	}
	return nil, 0, errUnavailable
}

func (m *mockContentAPI) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	m.record("GetMedia")
	if m.getMediaFunc != nil {
		return m.getMediaFunc(ctx, id)
	}
	return nil, errUnavailable
}

func (m *mockContentAPI) GetUser(ctx context.Context, id int) (*domain.User, error) {
	m.record("GetUser")
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return nil, errUnavailable
}

func (m *mockContentAPI) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	m.record("GetCategoryByID")
	if m.getCategoryByIDFunc != nil {
		return m.getCategoryByIDFunc(ctx, id)
	}
	return nil, errUnavailable
}

func (m *mockContentAPI) GetGroupByID(ctx context.Context, id int) (*domain.Group, error) {
	m.record("GetGroupByID")
	if m.getGroupByIDFunc != nil {
		return m.getGroupByIDFunc(ctx, id)
	}
	return nil, errUnavailable
}

func (m *mockContentAPI) GetTagsByIDs(ctx context.Context, ids []int) ([]domain.Tag, error) {
	m.record("GetTagsByIDs")
	if m.getTagsByIDsFunc != nil {
		return m.getTagsByIDsFunc(ctx, ids)
	}
	return nil, errUnavailable
}

// mockImageColorService is a mock implementation of the ImageColorService interface
type mockImageColorService struct {
	extractColorFunc func(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}

func (m *mockImageColorService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if m.extractColorFunc != nil {
		return m.extractColorFunc(ctx, imageURL)
	}
	return nil, errUnavailable
}

func (m *mockImageColorService) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	return nil, errUnavailable
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// mockLogger records every entry
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (m *mockLogger) add(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.add("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.add("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.add("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.add("error", msg, fields) }

func (m *mockLogger) count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.level == level {
			n++
		}
	}
	return n
}
