// Generates JSON Schemas documenting the API contract.

package dto

import (
	"github.com/invopop/jsonschema"
)

// BookSchema documents the base fields of a book. Partial updates may add
// other fields, so additional properties are allowed.
type BookSchema struct {
	ID     string `json:"id" jsonschema:"description=Server assigned decimal identifier"`
	Title  string `json:"title" jsonschema:"minLength=1"`
	Author string `json:"author" jsonschema:"minLength=1"`
	Year   any    `json:"year" jsonschema:"oneof_type=number;string,description=Publication year"`
}

// BookInputSchema documents the body of a create or full update.
type BookInputSchema struct {
	Title  string `json:"title" jsonschema:"minLength=1"`
	Author string `json:"author" jsonschema:"minLength=1"`
	Year   any    `json:"year" jsonschema:"oneof_type=number;string"`
}

// EnvelopeSchema documents the response envelope.
type EnvelopeSchema struct {
	Status  string `json:"status" jsonschema:"enum=success,enum=fail"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" jsonschema:"description=A book or a list of books; absent on failures and deletions"`
}

// SchemasResponse is the data of the schema envelope.
type SchemasResponse struct {
	Book      *jsonschema.Schema `json:"book"`
	BookInput *jsonschema.Schema `json:"book_input"`
	Envelope  *jsonschema.Schema `json:"envelope"`
}

// Schemas reflects the JSON Schemas of the API types.
func Schemas() *SchemasResponse {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	book := r.Reflect(&BookSchema{})
	book.AdditionalProperties = nil
	return &SchemasResponse{
		Book:      book,
		BookInput: r.Reflect(&BookInputSchema{}),
		Envelope:  r.Reflect(&EnvelopeSchema{}),
	}
}
