// Package core contains the content delivery logic of the newsdesk service.
// It is independent of HTTP serving and can be embedded directly through
// the newsdesk-lib package.
//
// # Packages
//
//   - domain: Article, Selector, per-selector fetch Policy and CacheEntry
//   - identity: identifier normalization and detail-fetchability checks
//   - imagegate: bounded image probing with deterministic placeholders
//   - translation: best-effort translation of display fields
//   - content: the fetch and fallback orchestrator
//   - workers: the bounded parallel resolve primitive and the prefetch pool
//   - interfaces: capabilities injected from infrastructure
//   - errors: typed errors and failure classification
//
// # Fetch pipeline
//
// A collection fetch runs origin request, hydration, ranking, image gating
// and cache write in that order. Translation runs last so the cache always
// holds original-language text. When the origin fails the cascade is
// cache, then a default article for single-item requests, then an empty
// list; callers of Fetch never see an error.
//
// # Usage
//
//	import (
//	    "newsdesk-api/core/content"
//	    "newsdesk-api/core/domain"
//	    "newsdesk-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      cache,
//	    HTTPClient: httpClient,
//	    Logger:     logger,
//	}
//
//	svc := content.NewService(deps, content.Config{BaseURL: "https://api.example.com/api"})
//	articles := svc.Fetch(ctx, domain.BreakingSelector(), 5, "fr")
package core
