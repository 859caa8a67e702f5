package dto

import (
	"errors"
	"net/http"
	"testing"
)

func TestAPIError(t *testing.T) {
	t.Run("NewAPIError", func(t *testing.T) {
		err := NewAPIError(http.StatusNotFound, ErrorCodeNotFound, "resource not found")
		if err.StatusCode() != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, err.StatusCode())
		}
		if err.Code() != ErrorCodeNotFound {
			t.Errorf("Expected code %s, got %s", ErrorCodeNotFound, err.Code())
		}
		if err.Error() != "resource not found" {
			t.Errorf("Expected message 'resource not found', got '%s'", err.Error())
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		origErr := errors.New("original error")
		err := NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, "wrapped error").Wrap(origErr)
		if !errors.Is(err, origErr) {
			t.Error("Expected errors.Is to find the original error")
		}
		if err.Error() != "wrapped error: original error" {
			t.Errorf("Expected error message 'wrapped error: original error', got '%s'", err.Error())
		}
		if err.Message() != "wrapped error" {
			t.Errorf("Expected Message() 'wrapped error', got '%s'", err.Message())
		}
	})
	t.Run("errors.As", func(t *testing.T) {
		var err error = BookNotFound("3")
		var ews ErrorWithStatus
		if !errors.As(err, &ews) {
			t.Fatal("Expected *APIError to satisfy ErrorWithStatus")
		}
		if ews.StatusCode() != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, ews.StatusCode())
		}
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   ErrorCode
		wantMsg    string
	}{
		{"BookNotFound", BookNotFound("999"), http.StatusNotFound, ErrorCodeNotFound, "Book with id 999 not found"},
		{"NotFound", NotFound("No books found"), http.StatusNotFound, ErrorCodeNotFound, "No books found"},
		{"MissingBookFields", MissingBookFields(), http.StatusBadRequest, ErrorCodeValidationFailed, "Title, author, and year are required"},
		{"IDImmutable", IDImmutable(), http.StatusBadRequest, ErrorCodeValidationFailed, "Field id cannot be changed"},
		{"InvalidBody", InvalidBody(), http.StatusBadRequest, ErrorCodeInvalidBody, "Invalid request body"},
		{"PayloadTooLarge", PayloadTooLarge(10), http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, "Request body too large"},
		{"RouteNotFound", RouteNotFound("GET", "/authors"), http.StatusNotFound, ErrorCodeRouteNotFound, "Route GET /authors not found"},
		{"Internal", Internal(), http.StatusInternalServerError, ErrorCodeInternal, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
			if tt.err.Code() != tt.wantCode {
				t.Errorf("Code() = %s, want %s", tt.err.Code(), tt.wantCode)
			}
			if tt.err.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", tt.err.Message(), tt.wantMsg)
			}
		})
	}
}
