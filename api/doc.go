// Package api provides the HTTP API layer for the newsdesk service.
// It uses the Huma framework on a chi router for OpenAPI documentation
// and request validation.
//
// # Architecture
//
// - server.go: router, CORS and middleware setup
// - handlers/: article, cache and health handlers
// - dto/responses: response envelopes
// - middleware/: request logging and per-IP rate limiting
//
// # Endpoints
//
//	GET    /articles?selector=National&count=6&lang=fr
//	GET    /articles/{id}?lang=fr
//	DELETE /cache?selector=breaking&count=5
//	GET    /health
//
// Collection requests never fail because the origin is down: the content
// core falls back to cached data, then to a default article or an empty
// list. Only malformed input is rejected with a 4xx.
//
// The OpenAPI spec is served at /openapi.json and interactive docs at /docs.
package api
