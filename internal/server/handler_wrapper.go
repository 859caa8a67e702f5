// Provides middleware for standardizing HTTP handlers.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/maruel/bookcatalog/internal/server/dto"
	"github.com/maruel/bookcatalog/internal/server/handlers"
	"github.com/maruel/bookcatalog/internal/server/reqctx"
)

// Wrap wraps a handler function to work as an http.Handler.
// The function must have signature: func(context.Context, *In) (*dto.Response, error)
// where In can be unmarshalled from JSON.
// Path parameters can be extracted by tagging struct fields with `path:"name"`.
// *In must implement dto.Validatable.
//
// Example:
//
//	type GetBookRequest struct {
//	    ID string `path:"id"`
//	}
//
//	func (h *BookHandler) GetBook(ctx context.Context, req *GetBookRequest) (*dto.Response, error)
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}](fn func(context.Context, PtrIn) (*dto.Response, error), cfg *handlers.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		input := new(In)
		if err := readAndDecodeBody(w, r, input, cfg); err != nil {
			writeJSONResponse(ctx, w, nil, err)
			return
		}
		populatePathParams(r, input)
		if err := PtrIn(input).Validate(); err != nil {
			writeJSONResponse(ctx, w, nil, err)
			return
		}
		output, err := fn(ctx, PtrIn(input))
		writeJSONResponse(ctx, w, output, err)
	})
}

// readAndDecodeBody reads the request body with size limit and decodes JSON
// into input. An empty body leaves input untouched.
func readAndDecodeBody[In any](w http.ResponseWriter, r *http.Request, input *In, cfg *handlers.Config) error {
	if cfg != nil && cfg.MaxRequestBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err2 := r.Body.Close(); err == nil {
		err = err2
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return dto.PayloadTooLarge(maxBytesErr.Limit)
		}
		return dto.InvalidBody().Wrap(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	d := json.NewDecoder(bytes.NewReader(body))
	if err := d.Decode(input); err != nil {
		return dto.InvalidBody().Wrap(err)
	}
	// Trailing data after the first JSON value.
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return dto.InvalidBody()
	}
	return nil
}

// writeJSONResponse writes the envelope returned by a handler, or a fail
// envelope for err.
func writeJSONResponse(ctx context.Context, w http.ResponseWriter, output *dto.Response, err error) {
	if err != nil {
		handlers.WriteErrorResponse(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(output.StatusCode())
	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", append([]any{"err", err}, reqctx.LogAttrs(ctx)...)...)
	}
}

// populatePathParams extracts path parameters from the request and populates
// struct fields tagged with `path:"paramName"`.
func populatePathParams(r *http.Request, input any) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Pointer {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("path")
		if tag == "" || field.Type.Kind() != reflect.String {
			continue
		}
		if v := r.PathValue(tag); v != "" {
			elem.Field(i).SetString(v)
		}
	}
}
