// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/maruel/bookcatalog/internal/server/handlers"
	"github.com/maruel/bookcatalog/internal/server/ipgeo"
)

// NewRouter creates and configures the HTTP router.
//
// geo may be nil, in which case request logs only classify local addresses.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, geo *ipgeo.Checker) http.Handler {
	mux := &http.ServeMux{}
	bh := &handlers.BookHandler{Svc: svc}
	hh := &handlers.HealthHandler{Svc: svc, Cfg: cfg}

	// Books
	mux.Handle("GET /books", Wrap(bh.ListBooks, cfg))
	mux.Handle("POST /books", Wrap(bh.CreateBook, cfg))
	mux.Handle("GET /books/{id}", Wrap(bh.GetBook, cfg))
	mux.Handle("PUT /books/{id}", Wrap(bh.UpdateBook, cfg))
	mux.Handle("PATCH /books/{id}", Wrap(bh.PatchBook, cfg))
	mux.Handle("DELETE /books/{id}", Wrap(bh.DeleteBook, cfg))

	// Service
	mux.Handle("GET /health", Wrap(hh.Health, cfg))
	mux.Handle("GET /schema", Wrap(handlers.Schema, cfg))

	// Everything else, including known paths with an unsupported method.
	mux.HandleFunc("/", handlers.NotFound)

	return RequestLogger(geo)(mux)
}
