// Package core contains the business logic that turns WordPress content into
// blog page contexts. It is framework-agnostic: nothing here renders
// templates or registers routes.
//
// The core package is organized into several sub-packages:
//
// - blog: Index and article context builders
// - wordpress: Read-only WordPress REST API and RSS feed client
// - services: Featured image color extraction
// - domain: Articles, lookup entities and template contexts
// - config: Functional options for context assembly
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Missing content degrades to empty values instead of failing a page
//
// # Usage Example
//
//	import (
//	    "blog-views/core/blog"
//	    "blog-views/core/domain"
//	    "blog-views/core/interfaces"
//	    "blog-views/core/wordpress"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	content := wordpress.NewClient(deps)
//	views := blog.NewService(content, deps.Logger)
//
//	articles, totalPages, err := content.GetArticles(ctx, domain.ArticleQuery{Page: 2})
//	page, err := views.BuildIndexContext(ctx, 2, articles, totalPages)
package core
