// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"newsdesk-api/api/handlers"
	"newsdesk-api/api/middleware"
	"newsdesk-api/core/interfaces"
)

const (
	apiTitle   = "Newsdesk API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// AllowedOrigins for CORS, empty allows any origin
	AllowedOrigins []string

	// RequestsPerSecond and Burst configure the per-IP limiter, zero disables it
	RequestsPerSecond float64
	Burst             int
}

// Server bundles the huma API with its router and owned middleware state
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	s := NewServer(APIConfig{})
	return s.API, s.Router
}

// NewServer creates a router with CORS, logging and rate limiting applied
func NewServer(cfg APIConfig) *Server {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// CORS goes first so preflight requests are never rate limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	s := &Server{Router: router}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst)
		router.Use(middleware.RateLimitMiddleware(s.limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "News content delivery with cache fallback, image gating and translation"

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	s.API = humachi.New(router, config)
	handlers.RegisterHealth(s.API)

	return s
}

// RegisterContent mounts the article and cache routes
func (s *Server) RegisterContent(service handlers.ContentService) {
	handlers.NewArticleHandler(service).RegisterRoutes(s.API)
}

// Close releases background resources owned by the middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
