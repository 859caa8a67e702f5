package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Year is a publication year, kept verbatim so it is echoed back in the form
// it was sent. Any JSON value decodes; usable reports whether it is a number,
// a numeric string or a falsy value.
type Year json.RawMessage

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(b []byte) error {
	*y = append((*y)[:0], bytes.TrimSpace(b)...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (y Year) MarshalJSON() ([]byte, error) {
	if len(y) == 0 {
		return []byte("null"), nil
	}
	return y, nil
}

func (y Year) usable() bool {
	if len(y) == 0 {
		return true
	}
	switch c := y[0]; {
	case c == 'n' || c == 'f':
		return true
	case c == '"':
		var s string
		if err := json.Unmarshal(y, &s); err != nil {
			return false
		}
		if s == "" {
			return true
		}
		_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err == nil
	case c == '-' || (c >= '0' && c <= '9'):
		return true
	}
	return false
}

// looseText decodes a title or author. Strings are returned as is and falsy
// values (null, false, 0) as "". ok is false for any other value.
func looseText(raw json.RawMessage) (s string, ok bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch v := v.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return "", !v
	case float64:
		return "", v == 0
	}
	return "", false
}

// bookBody is the body shared by book creation and full updates.
type bookBody struct {
	Title  json.RawMessage `json:"title"`
	Author json.RawMessage `json:"author"`
	Year   Year            `json:"year"`
}

// decode parses b leniently: values of an unusable type are listed in
// malformed instead of failing the decode, so the caller decides when to
// report them.
func (f *bookBody) decode(b []byte) (title, author string, malformed []string, err error) {
	if err = json.Unmarshal(b, f); err != nil {
		return "", "", nil, err
	}
	var ok bool
	if title, ok = looseText(f.Title); !ok {
		malformed = append(malformed, "title")
	}
	if author, ok = looseText(f.Author); !ok {
		malformed = append(malformed, "author")
	}
	if !f.Year.usable() {
		malformed = append(malformed, "year")
	}
	return title, author, malformed, nil
}

// --- Books ---

// ListBooksRequest is a request to list all books.
type ListBooksRequest struct{}

// Validate is a no-op for ListBooksRequest.
func (r *ListBooksRequest) Validate() error {
	return nil
}

// GetBookRequest is a request to get a book.
type GetBookRequest struct {
	ID string `path:"id"`
}

// Validate validates the get book request fields.
func (r *GetBookRequest) Validate() error {
	return requireID(r.ID)
}

// CreateBookRequest is a request to create a book.
//
// Presence of title, author and year is checked by the catalog so that the
// same rule applies to creation and full updates.
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   Year   `json:"year"`
	// Malformed lists the fields sent with a type that can't be stored.
	Malformed []string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *CreateBookRequest) UnmarshalJSON(b []byte) error {
	var f bookBody
	title, author, malformed, err := f.decode(b)
	if err != nil {
		return err
	}
	r.Title, r.Author, r.Year, r.Malformed = title, author, f.Year, malformed
	return nil
}

// Validate is a no-op for CreateBookRequest.
func (r *CreateBookRequest) Validate() error {
	return nil
}

// UpdateBookRequest is a request to replace a book's fields.
type UpdateBookRequest struct {
	ID        string   `path:"id" json:"-"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Year      Year     `json:"year"`
	Malformed []string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *UpdateBookRequest) UnmarshalJSON(b []byte) error {
	var f bookBody
	title, author, malformed, err := f.decode(b)
	if err != nil {
		return err
	}
	r.Title, r.Author, r.Year, r.Malformed = title, author, f.Year, malformed
	return nil
}

// Validate validates the update book request fields.
//
// Missing or malformed title, author and year are reported by the catalog,
// after it has checked that the book exists.
func (r *UpdateBookRequest) Validate() error {
	return requireID(r.ID)
}

// PatchBookRequest is a request to merge arbitrary fields into a book.
type PatchBookRequest struct {
	ID string `path:"id" json:"-"`
	// Fields holds the request body's keys in the order they were sent.
	Fields *orderedmap.OrderedMap[string, json.RawMessage] `json:"-"`
}

// UnmarshalJSON decodes the whole body as the set of fields to merge.
func (r *PatchBookRequest) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return errors.New("patch body must be a JSON object")
	}
	f := orderedmap.New[string, json.RawMessage]()
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	r.Fields = f
	return nil
}

// Validate validates the patch book request fields.
func (r *PatchBookRequest) Validate() error {
	return requireID(r.ID)
}

// DeleteBookRequest is a request to delete a book.
type DeleteBookRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete book request fields.
func (r *DeleteBookRequest) Validate() error {
	return requireID(r.ID)
}

// --- Service ---

// HealthRequest is a request to check server health.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// SchemaRequest is a request for the API's JSON schemas.
type SchemaRequest struct{}

// Validate is a no-op for SchemaRequest.
func (r *SchemaRequest) Validate() error {
	return nil
}

func requireID(id string) error {
	if id == "" {
		return BadRequest("Missing book id")
	}
	return nil
}
