// Maps catalog errors to API errors and writes fail envelopes.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maruel/bookcatalog/internal/catalog"
	"github.com/maruel/bookcatalog/internal/server/dto"
	"github.com/maruel/bookcatalog/internal/server/reqctx"
)

// bookError converts an error returned by the catalog for the book id into
// an error carrying an HTTP status.
func bookError(err error, id string) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return dto.BookNotFound(id).Wrap(err)
	}
	var invalid *catalog.InvalidInputError
	if errors.As(err, &invalid) {
		if len(invalid.Missing) != 0 {
			return dto.MissingBookFields().Wrap(err)
		}
		if len(invalid.Malformed) != 0 {
			return dto.InvalidBody().Wrap(err)
		}
		return dto.IDImmutable().Wrap(err)
	}
	return dto.InternalWithError(err)
}

// WriteErrorResponse logs err with the request metadata found in ctx and
// writes it as a fail envelope. 5xx errors are logged at error level, other
// rejections at debug level.
func WriteErrorResponse(ctx context.Context, w http.ResponseWriter, err error) {
	var ews dto.ErrorWithStatus
	if !errors.As(err, &ews) {
		ews = dto.InternalWithError(err)
	}
	attrs := append([]any{"err", err, "statusCode", ews.StatusCode(), "code", ews.Code()}, reqctx.LogAttrs(ctx)...)
	if ews.StatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Handler error", attrs...)
	} else {
		slog.DebugContext(ctx, "Request rejected", attrs...)
	}
	resp := dto.Fail(ews)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode())
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(ctx, "Failed to encode error response", append([]any{"err", err}, reqctx.LogAttrs(ctx)...)...)
	}
}

// NotFound answers requests no route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteErrorResponse(r.Context(), w, dto.RouteNotFound(r.Method, r.URL.Path))
}
