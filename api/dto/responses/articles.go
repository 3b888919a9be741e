// ABOUTME: Response DTOs for the articles API
// ABOUTME: Articles are returned in their domain JSON shape inside a thin envelope

package responses

import (
	"time"

	"newsdesk-api/core/domain"
)

// ArticlesResponse is the body of GET /articles
type ArticlesResponse struct {
	Articles []domain.Article `json:"articles" doc:"Articles in presentation order, never null"`
	Count    int              `json:"count" doc:"Number of articles returned"`
	Selector string           `json:"selector" doc:"Canonical selector the articles were fetched for"`
}

// ArticleResponse is the body of GET /articles/{id}
type ArticleResponse struct {
	Article domain.Article `json:"article"`
}

// InvalidateResponse is the body of DELETE /cache
type InvalidateResponse struct {
	Key string `json:"key" doc:"Cache key that was removed"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string    `json:"status" example:"ok"`
	Time   time.Time `json:"time"`
}

// NewArticlesResponse builds the envelope, replacing nil with an empty slice
func NewArticlesResponse(selector string, articles []domain.Article) ArticlesResponse {
	if articles == nil {
		articles = []domain.Article{}
	}
	return ArticlesResponse{
		Articles: articles,
		Count:    len(articles),
		Selector: selector,
	}
}
