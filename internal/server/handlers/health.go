package handlers

import (
	"context"

	"github.com/maruel/bookcatalog/internal/server/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	Svc *Services
	Cfg *Config
}

// Health reports the build and the number of stored books.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.Response, error) {
	return dto.Success("Service is healthy", &dto.HealthResponse{
		Version:   h.Cfg.Version,
		GoVersion: h.Cfg.GoVersion,
		Revision:  h.Cfg.Revision,
		Dirty:     h.Cfg.Dirty,
		Books:     h.Svc.Catalog.Len(),
	}), nil
}

// Schema returns the JSON schemas of the API types.
func Schema(ctx context.Context, req *dto.SchemaRequest) (*dto.Response, error) {
	return dto.Success("Schemas", dto.Schemas()), nil
}
