// Defines shared service dependencies for handlers.

package handlers

import "github.com/maruel/bookcatalog/internal/catalog"

// Services holds all service dependencies for handlers.
type Services struct {
	Catalog *catalog.Catalog
}

// Config holds configuration values needed by handlers and the request
// wrapper.
type Config struct {
	// MaxRequestBodyBytes caps request bodies. Zero disables the limit.
	MaxRequestBodyBytes int64
	Version             string
	GoVersion           string
	Revision            string
	Dirty               bool
}
