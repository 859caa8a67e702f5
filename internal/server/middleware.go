// Provides request metadata and access logging middleware.

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/maruel/bookcatalog/internal/server/ipgeo"
	"github.com/maruel/bookcatalog/internal/server/reqctx"
	"github.com/maruel/ksid"
)

// RequestIDHeader carries the ID assigned to every request.
const RequestIDHeader = "X-Request-ID"

// statusRecorder wraps http.ResponseWriter to remember the status code sent.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

// WriteHeader records the status code.
func (rw *statusRecorder) WriteHeader(statusCode int) {
	if rw.status == 0 {
		rw.status = statusCode
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write records an implicit 200 when no status was sent.
func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// RequestLogger stores the request metadata in the context, assigns a
// request ID and logs one line per request once it completes.
//
// geo may be nil.
func RequestLogger(geo *ipgeo.Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := ksid.NewID()
			ip := reqctx.GetClientIP(r)
			country := geo.CountryCode(ip)
			ctx := reqctx.WithRequestID(r.Context(), id)
			ctx = reqctx.WithClientIP(ctx, ip)
			ctx = reqctx.WithUserAgent(ctx, r.Header.Get("User-Agent"))
			ctx = reqctx.WithCountryCode(ctx, country)

			w.Header().Set(RequestIDHeader, id.String())
			rw := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rw, r.WithContext(ctx))
			if rw.status == 0 {
				rw.status = http.StatusOK
			}
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"dur", time.Since(start).Round(time.Microsecond),
				"size", rw.bytes,
			}
			slog.InfoContext(ctx, "http", append(attrs, reqctx.LogAttrs(ctx)...)...)
		})
	}
}
