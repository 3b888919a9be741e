package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
)

type stubContent struct{}

func (stubContent) Fetch(ctx context.Context, sel domain.Selector, count int, lang string) []domain.Article {
	return []domain.Article{{ID: "x", Image: "https://img/x.jpg"}}
}

func (stubContent) Detail(ctx context.Context, id, lang string) (domain.Article, error) {
	return domain.Article{ID: id}, nil
}

func (stubContent) Invalidate(ctx context.Context, sel domain.Selector, count int) error {
	return nil
}

func TestNewAPI(t *testing.T) {
	api, router := NewAPI()
	require.NotNil(t, api)
	require.NotNil(t, router)

	info := api.OpenAPI().Info
	assert.Equal(t, "Newsdesk API", info.Title)
	assert.Equal(t, "1.0.0", info.Version)
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	_, router := NewAPI()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.oai.openapi+json", w.Header().Get("Content-Type"))
}

func TestAPI_DocsEndpoint(t *testing.T) {
	_, router := NewAPI()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/docs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
}

func TestServer_RoutesAndMiddleware(t *testing.T) {
	s := NewServer(APIConfig{
		Logger:            interfaces.NopLogger{},
		AllowedOrigins:    []string{"https://news.example.com"},
		RequestsPerSecond: 0.001,
		Burst:             2,
	})
	defer s.Close()
	s.RegisterContent(stubContent{})

	req := httptest.NewRequest("GET", "/articles?selector=trending", nil)
	req.Header.Set("Origin", "https://news.example.com")
	req.RemoteAddr = "10.1.1.1:5000"
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://news.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "10.1.1.1:5000"
	w = httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Burst exhausted for this client
	req = httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "10.1.1.1:5000"
	w = httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
