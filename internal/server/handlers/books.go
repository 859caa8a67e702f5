// Handles book operations.

package handlers

import (
	"context"
	"errors"

	"github.com/maruel/bookcatalog/internal/catalog"
	"github.com/maruel/bookcatalog/internal/server/dto"
)

// BookHandler handles book requests.
type BookHandler struct {
	Svc *Services
}

// ListBooks returns every book in insertion order.
func (h *BookHandler) ListBooks(ctx context.Context, req *dto.ListBooksRequest) (*dto.Response, error) {
	books, err := h.Svc.Catalog.List()
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, dto.NotFound("No books found").Wrap(err)
	}
	if err != nil {
		return nil, dto.InternalWithError(err)
	}
	data, err := booksToResponse(books)
	if err != nil {
		return nil, err
	}
	return dto.Success("Successfully retrieved all books", data), nil
}

// GetBook returns a single book.
func (h *BookHandler) GetBook(ctx context.Context, req *dto.GetBookRequest) (*dto.Response, error) {
	b, err := h.Svc.Catalog.Get(req.ID)
	if err != nil {
		return nil, bookError(err, req.ID)
	}
	data, err := bookToResponse(b)
	if err != nil {
		return nil, err
	}
	return dto.Success("Successfully retrieved book with id "+req.ID, data), nil
}

// CreateBook appends a new book.
func (h *BookHandler) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.Response, error) {
	b, err := h.Svc.Catalog.Create(inputFromDTO(req.Title, req.Author, req.Year, req.Malformed))
	if err != nil {
		return nil, bookError(err, "")
	}
	data, err := bookToResponse(b)
	if err != nil {
		return nil, err
	}
	return dto.Created("Book created successfully", data), nil
}

// UpdateBook replaces a book's title, author and year.
func (h *BookHandler) UpdateBook(ctx context.Context, req *dto.UpdateBookRequest) (*dto.Response, error) {
	b, err := h.Svc.Catalog.Replace(req.ID, inputFromDTO(req.Title, req.Author, req.Year, req.Malformed))
	if err != nil {
		return nil, bookError(err, req.ID)
	}
	data, err := bookToResponse(b)
	if err != nil {
		return nil, err
	}
	return dto.Success("Book with id "+req.ID+" updated successfully", data), nil
}

// PatchBook merges the request's fields into a book.
func (h *BookHandler) PatchBook(ctx context.Context, req *dto.PatchBookRequest) (*dto.Response, error) {
	b, err := h.Svc.Catalog.Merge(req.ID, req.Fields)
	if err != nil {
		return nil, bookError(err, req.ID)
	}
	data, err := bookToResponse(b)
	if err != nil {
		return nil, err
	}
	return dto.Success("Book with id "+req.ID+" partially updated successfully", data), nil
}

// DeleteBook removes a book.
func (h *BookHandler) DeleteBook(ctx context.Context, req *dto.DeleteBookRequest) (*dto.Response, error) {
	if err := h.Svc.Catalog.Delete(req.ID); err != nil {
		return nil, bookError(err, req.ID)
	}
	return dto.Success("Book with id "+req.ID+" deleted successfully", nil), nil
}
