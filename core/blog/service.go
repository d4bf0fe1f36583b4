// ABOUTME: Blog view service assembles index and article page contexts
// ABOUTME: Enriches articles through the content API and degrades missing data to nil

package blog

import (
	"context"
	"sync"

	"blog-views/core/config"
	"blog-views/core/domain"
	coreerrors "blog-views/core/errors"
	"blog-views/core/interfaces"
	"blog-views/pkg/utils/html"
	"golang.org/x/sync/errgroup"
)

// Service builds template contexts for blog pages.
//
// Every lookup against the content API is allowed to fail: the affected
// field is left nil and the failure is logged as a warning. A nil api
// behaves like an API that is unreachable.
type Service struct {
	api    interfaces.ContentAPI
	colors interfaces.ImageColorService
	logger interfaces.Logger
	cfg    config.ContextConfig
}

// NewService creates a new blog view service
func NewService(api interfaces.ContentAPI, logger interfaces.Logger, opts ...config.ContextOption) *Service {
	return &Service{
		api:    api,
		logger: logger,
		cfg:    config.NewContextConfig(opts...),
	}
}

// SetImageColorService sets the service used when image colors are enabled
func (s *Service) SetImageColorService(svc interfaces.ImageColorService) {
	s.colors = svc
}

// BuildIndexContext assembles the context for a page of articles. Each
// article gets its featured image and author resolved; the categories and
// primary groups referenced by the page are resolved once each.
//
// The only error returned is the context's own when it is cancelled.
func (s *Service) BuildIndexContext(ctx context.Context, currentPage int, articles []domain.Article, totalPages int) (*domain.IndexContext, error) {
	views := make([]domain.ArticleView, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range articles {
		i := i
		g.Go(func() error {
			views[i] = s.enrichArticle(gctx, articles[i])
			return nil
		})
	}
	_ = g.Wait()

	categoryIDs, groupIDs := referencedTerms(articles)
	usedCategories := resolveAll(ctx, s.cfg.Concurrency, categoryIDs, s.lookupCategory)
	groups := resolveAll(ctx, s.cfg.Concurrency, groupIDs, s.lookupGroup)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logDebug("Built index context", map[string]interface{}{
		"page":       currentPage,
		"articles":   len(views),
		"categories": len(usedCategories),
		"groups":     len(groups),
	})

	return &domain.IndexContext{
		CurrentPage:    currentPage,
		TotalPages:     totalPages,
		Articles:       views,
		UsedCategories: usedCategories,
		Groups:         groups,
	}, nil
}

// BuildArticleContext assembles the context for a single article page from
// the result of a slug query; the first article is the one shown.
//
// The article's author is resolved but its image is not. Related articles
// share the article's tags and are shaped without any lookups.
func (s *Service) BuildArticleContext(ctx context.Context, articles []domain.Article) (*domain.ArticleContext, error) {
	if len(articles) == 0 {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: "empty result"}
	}
	article := articles[0]

	var (
		author  *domain.User
		tags    []domain.Tag
		related []domain.ArticleView
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		author = s.lookupUser(ctx, article.Author)
	}()
	go func() {
		defer wg.Done()
		tags = s.lookupTags(ctx, article.Tags)
	}()
	go func() {
		defer wg.Done()
		related = s.lookupRelated(ctx, article)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.ArticleContext{
		Article:         s.shape(article, nil, author),
		RelatedArticles: related,
		Tags:            tags,
		IsInSeries:      IsInSeries(tags),
	}, nil
}

// enrichArticle resolves the featured image and author of an index article
func (s *Service) enrichArticle(ctx context.Context, article domain.Article) domain.ArticleView {
	image := s.lookupMedia(ctx, article.FeaturedMedia)
	author := s.lookupUser(ctx, article.Author)
	view := s.shape(article, image, author)

	if s.cfg.ImageColors && s.colors != nil && image != nil && image.SourceURL != "" {
		color, err := s.colors.ExtractColor(ctx, image.SourceURL)
		if err != nil {
			s.degraded("image color", article.FeaturedMedia, err)
		} else {
			view.ImageColor = color
		}
	}

	return view
}

// shape applies TransformArticle and the configured excerpt length
func (s *Service) shape(article domain.Article, image *domain.Media, author *domain.User) domain.ArticleView {
	view := TransformArticle(article, image, author)
	if s.cfg.ExcerptLength > 0 {
		view.Excerpt = html.Truncate(view.Excerpt, s.cfg.ExcerptLength)
	}
	return view
}

func (s *Service) lookupMedia(ctx context.Context, id int) *domain.Media {
	if s.api == nil || id <= 0 {
		return nil
	}
	media, err := s.api.GetMedia(ctx, id)
	if err != nil {
		s.degraded("media", id, err)
		return nil
	}
	return media
}

func (s *Service) lookupUser(ctx context.Context, id int) *domain.User {
	if s.api == nil || id <= 0 {
		return nil
	}
	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		s.degraded("user", id, err)
		return nil
	}
	return user
}

func (s *Service) lookupCategory(ctx context.Context, id int) *domain.Category {
	if s.api == nil {
		return nil
	}
	category, err := s.api.GetCategoryByID(ctx, id)
	if err != nil {
		s.degraded("category", id, err)
		return nil
	}
	return category
}

func (s *Service) lookupGroup(ctx context.Context, id int) *domain.Group {
	if s.api == nil {
		return nil
	}
	group, err := s.api.GetGroupByID(ctx, id)
	if err != nil {
		s.degraded("group", id, err)
		return nil
	}
	return group
}

// lookupTags never returns nil
func (s *Service) lookupTags(ctx context.Context, ids []int) []domain.Tag {
	if s.api == nil {
		return []domain.Tag{}
	}
	tags, err := s.api.GetTagsByIDs(ctx, ids)
	if err != nil {
		s.degraded("tags", ids, err)
		return []domain.Tag{}
	}
	if tags == nil {
		return []domain.Tag{}
	}
	return tags
}

// lookupRelated returns nil when related articles could not be fetched
func (s *Service) lookupRelated(ctx context.Context, article domain.Article) []domain.ArticleView {
	if s.api == nil {
		return nil
	}
	articles, _, err := s.api.GetArticles(ctx, domain.ArticleQuery{
		Tags:    article.Tags,
		Exclude: []int{article.ID},
		PerPage: s.cfg.RelatedArticles,
	})
	if err != nil {
		s.degraded("related articles", article.ID, err)
		return nil
	}

	related := make([]domain.ArticleView, 0, len(articles))
	for _, a := range articles {
		related = append(related, s.shape(a, nil, nil))
	}
	return related
}

// referencedTerms returns the distinct category ids and primary group ids
// of the articles in first-seen order
func referencedTerms(articles []domain.Article) (categories, groups []int) {
	seenCategories := make(map[int]bool)
	seenGroups := make(map[int]bool)

	for i := range articles {
		for _, id := range articles[i].Categories {
			if !seenCategories[id] {
				seenCategories[id] = true
				categories = append(categories, id)
			}
		}
		if g := articles[i].PrimaryGroup(); g != nil && !seenGroups[*g] {
			seenGroups[*g] = true
			groups = append(groups, *g)
		}
	}

	return categories, groups
}

// resolveAll looks every id up with at most limit calls in flight. Every id
// gets an entry in the result, nil when the lookup failed.
func resolveAll[T any](ctx context.Context, limit int, ids []int, lookup func(context.Context, int) *T) map[int]*T {
	results := make(map[int]*T, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			v := lookup(gctx, id)
			mu.Lock()
			results[id] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// degraded records a lookup that fell back to an empty value
func (s *Service) degraded(resource string, id interface{}, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("Content lookup failed, using empty value", map[string]interface{}{
		"resource": resource,
		"id":       id,
		"error":    err.Error(),
	})
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}
