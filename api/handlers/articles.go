// ABOUTME: Article handlers for the Huma API
// ABOUTME: Exposes collection fetch, detail lookup and cache invalidation

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/responses"
	"newsdesk-api/core/domain"
)

// ContentService is the subset of the content core used by the handlers
type ContentService interface {
	Fetch(ctx context.Context, sel domain.Selector, count int, lang string) []domain.Article
	Detail(ctx context.Context, id, lang string) (domain.Article, error)
	Invalidate(ctx context.Context, sel domain.Selector, count int) error
}

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	service ContentService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(service ContentService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// RegisterRoutes registers all article routes
func (h *ArticleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/articles",
		Summary:     "List articles for a selector",
		Description: "Returns articles for a category, page slot, breaking, trending or side selector. Origin failures degrade to cached or default content instead of an error.",
		Tags:        []string{"Articles"},
	}, h.ListArticles)

	huma.Register(api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/articles/{id}",
		Summary:     "Get a single article",
		Description: "Looks up one article by its detail-fetchable identifier",
		Tags:        []string{"Articles"},
	}, h.GetArticle)

	huma.Register(api, huma.Operation{
		OperationID:   "invalidateCache",
		Method:        http.MethodDelete,
		Path:          "/cache",
		Summary:       "Invalidate a cached collection",
		Description:   "Removes the cache entry for a selector and count",
		Tags:          []string{"Cache"},
		DefaultStatus: http.StatusOK,
	}, h.InvalidateCache)
}

// ListArticlesInput defines the query parameters of GET /articles
type ListArticlesInput struct {
	Selector string `query:"selector" default:"National" doc:"National, category:Sports, page:home, breaking, trending or side:Sports,Health"`
	Count    int    `query:"count" minimum:"0" maximum:"50" doc:"Number of articles, 0 uses the selector default"`
	Lang     string `query:"lang" maxLength:"35" doc:"Target language tag, empty for untranslated"`
}

// ListArticlesOutput defines the output of GET /articles
type ListArticlesOutput struct {
	Body responses.ArticlesResponse
}

// ListArticles handles GET /articles
func (h *ArticleHandler) ListArticles(ctx context.Context, input *ListArticlesInput) (*ListArticlesOutput, error) {
	sel, err := domain.ParseSelector(input.Selector)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	articles := h.service.Fetch(ctx, sel, input.Count, input.Lang)

	return &ListArticlesOutput{
		Body: responses.NewArticlesResponse(sel.String(), articles),
	}, nil
}

// GetArticleInput defines the input of GET /articles/{id}
type GetArticleInput struct {
	ID   string `path:"id" minLength:"1" maxLength:"128"`
	Lang string `query:"lang" maxLength:"35"`
}

// GetArticleOutput defines the output of GET /articles/{id}
type GetArticleOutput struct {
	Body responses.ArticleResponse
}

// GetArticle handles GET /articles/{id}
func (h *ArticleHandler) GetArticle(ctx context.Context, input *GetArticleInput) (*GetArticleOutput, error) {
	article, err := h.service.Detail(ctx, input.ID, input.Lang)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetArticleOutput{Body: responses.ArticleResponse{Article: article}}, nil
}

// InvalidateCacheInput defines the query parameters of DELETE /cache
type InvalidateCacheInput struct {
	Selector string `query:"selector" required:"true"`
	Count    int    `query:"count" minimum:"0" maximum:"50"`
}

// InvalidateCacheOutput defines the output of DELETE /cache
type InvalidateCacheOutput struct {
	Body responses.InvalidateResponse
}

// InvalidateCache handles DELETE /cache
func (h *ArticleHandler) InvalidateCache(ctx context.Context, input *InvalidateCacheInput) (*InvalidateCacheOutput, error) {
	sel, err := domain.ParseSelector(input.Selector)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	count := input.Count
	if count < 1 {
		count = domain.PolicyFor(sel.Kind).DefaultCount
	}

	if err := h.service.Invalidate(ctx, sel, count); err != nil {
		return nil, toHumaError(err)
	}

	return &InvalidateCacheOutput{
		Body: responses.InvalidateResponse{Key: domain.CacheKey(sel, count)},
	}, nil
}
