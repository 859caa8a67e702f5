// Defines the validation interface for requests.

package dto

// Validatable is implemented by request types that can validate their fields.
// server.Wrap uses this interface as a type constraint to ensure all request
// types provide validation.
type Validatable interface {
	Validate() error
}
