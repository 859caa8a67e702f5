// Defines the Book record and its JSON field storage.

package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is an insertion-ordered set of raw JSON values keyed by field name.
type Fields = orderedmap.OrderedMap[string, json.RawMessage]

// NewFields returns an empty Fields.
func NewFields() *Fields {
	return orderedmap.New[string, json.RawMessage]()
}

// Book is a catalog record.
//
// The base fields are id, title, author and year. Partial updates may add any
// other key or store any JSON value in a base field, so the record keeps raw
// JSON values in the order the keys were first set.
type Book struct {
	fields *Fields
}

// Input holds the values required to create or fully replace a Book.
type Input struct {
	Title  string
	Author string
	// Year is the raw JSON value as submitted: a number or a numeric string.
	Year json.RawMessage
	// Malformed lists the fields that were submitted with an unusable type.
	Malformed []string
}

// Validate returns an *InvalidInputError listing every falsy required field,
// or else every malformed one.
func (in *Input) Validate() error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Author == "" {
		missing = append(missing, "author")
	}
	if !Truthy(in.Year) {
		missing = append(missing, "year")
	}
	if len(missing) != 0 {
		return &InvalidInputError{Missing: missing}
	}
	if len(in.Malformed) != 0 {
		return &InvalidInputError{Malformed: in.Malformed}
	}
	return nil
}

func newBook(id string, in *Input) *Book {
	f := NewFields()
	f.Set("id", quote(id))
	f.Set("title", quote(in.Title))
	f.Set("author", quote(in.Author))
	f.Set("year", bytes.Clone(in.Year))
	return &Book{fields: f}
}

// ID returns the book's id.
func (b *Book) ID() string {
	raw, ok := b.fields.Get("id")
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

// Clone returns a deep copy.
func (b *Book) Clone() *Book {
	f := NewFields()
	for pair := b.fields.Oldest(); pair != nil; pair = pair.Next() {
		f.Set(pair.Key, bytes.Clone(pair.Value))
	}
	return &Book{fields: f}
}

// MarshalJSON implements json.Marshaler.
func (b *Book) MarshalJSON() ([]byte, error) {
	return b.fields.MarshalJSON()
}

// overlay sets every key of patch on b, appending keys b doesn't have yet.
func (b *Book) overlay(patch *Fields) {
	for pair := patch.Oldest(); pair != nil; pair = pair.Next() {
		b.fields.Set(pair.Key, bytes.Clone(pair.Value))
	}
}

// Truthy reports whether a raw JSON value would pass a loose presence check.
//
// Absent values, null, false, numeric zero and the empty string are falsy.
// Everything else, including "0", arrays and objects, is truthy.
func Truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 'n', 'f':
		return false
	case 't', '[', '{':
		return true
	case '"':
		return len(raw) > 2
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err != nil || f != 0
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
