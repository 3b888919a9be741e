package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/responses"
)

// HealthOutput defines the output of GET /health
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealth registers the liveness endpoint
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{"System"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok", Time: time.Now().UTC()}}, nil
	})
}
