// Package catalog holds the in-memory book collection.
//
// A Catalog is created once at startup and shared by all request handlers.
// Every operation holds the catalog mutex for its whole read-modify-write so
// concurrent requests observe each operation as atomic. Records are kept in
// insertion order and are never reordered.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
)

// Catalog is an insertion-ordered collection of books.
type Catalog struct {
	mu    sync.Mutex
	books []*Book
}

// New returns a Catalog holding the given seeds in order.
func New(seeds []Seed) (*Catalog, error) {
	c := &Catalog{books: make([]*Book, 0, len(seeds))}
	seen := make(map[string]bool, len(seeds))
	for i := range seeds {
		s := &seeds[i]
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("seed %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		in, err := s.input()
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		c.books = append(c.books, newBook(s.ID, in))
	}
	return c, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.books)
}

// List returns every book in insertion order.
//
// An empty catalog is reported as ErrNotFound rather than an empty list.
func (c *Catalog) List() ([]*Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.books) == 0 {
		return nil, ErrNotFound
	}
	out := make([]*Book, len(c.books))
	for i, b := range c.books {
		out[i] = b.Clone()
	}
	return out, nil
}

// Get returns the first book with the given id.
func (c *Catalog) Get(id string) (*Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return c.books[i].Clone(), nil
}

// Create appends a new book with a generated id.
func (c *Catalog) Create(in *Input) (*Book, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id, err := c.nextID()
	if err != nil {
		return nil, err
	}
	b := newBook(id, in)
	c.books = append(c.books, b)
	return b.Clone(), nil
}

// Replace overwrites title, author and year of the book with the given id.
//
// Existence is checked before the input so an unknown id always reports
// ErrNotFound. Fields added by earlier partial updates are dropped.
func (c *Catalog) Replace(id string, in *Input) (*Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b := newBook(c.books[i].ID(), in)
	c.books[i] = b
	return b.Clone(), nil
}

// Merge overlays patch onto the book with the given id.
//
// Keys not in the base schema are appended, and base fields accept any JSON
// value. The id itself cannot be changed: a patch carrying a different id is
// rejected with an *InvalidInputError. Earlier versions of this API let a
// patch overwrite the id; clients relying on that now get an error.
func (c *Catalog) Merge(id string, patch *Fields) (*Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	b := c.books[i].Clone()
	if patch != nil {
		if raw, ok := patch.Get("id"); ok {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil || s != b.ID() {
				return nil, &InvalidInputError{Reason: "id cannot be changed"}
			}
		}
		b.overlay(patch)
	}
	c.books[i] = b
	return b.Clone(), nil
}

// Delete removes every book with the given id.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]*Book, 0, len(c.books))
	for _, b := range c.books {
		if b.ID() != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(c.books) {
		return ErrNotFound
	}
	c.books = kept
	return nil
}

// indexOf returns the position of the first book with the given id, or -1.
// c.mu must be held.
func (c *Catalog) indexOf(id string) int {
	for i, b := range c.books {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

// nextID derives a new id from the last book in insertion order, not from the
// largest id. Deleting the newest book therefore makes its id reusable.
// c.mu must be held.
func (c *Catalog) nextID() (string, error) {
	if len(c.books) == 0 {
		return "1", nil
	}
	last := c.books[len(c.books)-1].ID()
	n, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return "", fmt.Errorf("last book id %q is not an integer: %w", last, err)
	}
	if n == math.MaxInt64 {
		return "", fmt.Errorf("last book id %q is the largest possible id", last)
	}
	return strconv.FormatInt(n+1, 10), nil
}
