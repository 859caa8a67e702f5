package handlers

import (
	"context"
	"testing"

	"github.com/maruel/bookcatalog/internal/catalog"
	"github.com/maruel/bookcatalog/internal/server/dto"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		seeds   []catalog.Seed
		wantLen int
	}{
		{"seeded", Config{Version: "v1.0.0", GoVersion: "go1.25.5", Revision: "abc"}, catalog.DefaultSeeds(), 2},
		{"dev", Config{Version: "(devel)", Dirty: true}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.New(tt.seeds)
			if err != nil {
				t.Fatal(err)
			}
			h := &HealthHandler{Svc: &Services{Catalog: c}, Cfg: &tt.cfg}
			resp, err := h.Health(context.Background(), &dto.HealthRequest{})
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if resp.Status != dto.StatusSuccess || resp.Message != "Service is healthy" {
				t.Errorf("unexpected envelope %+v", resp)
			}
			data, ok := resp.Data.(*dto.HealthResponse)
			if !ok {
				t.Fatalf("Data is %T", resp.Data)
			}
			if data.Version != tt.cfg.Version || data.Revision != tt.cfg.Revision || data.Dirty != tt.cfg.Dirty {
				t.Errorf("build info = %+v, want %+v", data, tt.cfg)
			}
			if data.Books != tt.wantLen {
				t.Errorf("Books = %d, want %d", data.Books, tt.wantLen)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	resp, err := Schema(context.Background(), &dto.SchemaRequest{})
	if err != nil {
		t.Fatal(err)
	}
	s, ok := resp.Data.(*dto.SchemasResponse)
	if !ok {
		t.Fatalf("Data is %T", resp.Data)
	}
	if s.Book == nil || s.BookInput == nil || s.Envelope == nil {
		t.Errorf("missing schema in %+v", s)
	}
}
