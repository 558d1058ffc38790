// Package servererrors defines the typed error the handler chain converts
// into HTTP responses, plus the sentinel errors shared across features.
package servererrors

import "errors"

// Sentinel errors surfaced to clients. Store-level errors are wrapped and
// never shown verbatim; these are.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLParams             = errors.New("invalid url parameters")

	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrUnauthorizedAccess = errors.New("Unauthorized Access")

	ErrCategoryExists   = errors.New("Category already exists")
	ErrCategoryNotFound = errors.New("Category not found")
	ErrProductNotFound  = errors.New("Product not found")
	ErrPhotoNotFound    = errors.New("Photo not found")
	ErrPhotoTooLarge    = errors.New("Photo should be less than 1MB")
	ErrOrderNotFound    = errors.New("Order not found")
	ErrInvalidStatus    = errors.New("invalid order status")

	ErrEmailTaken         = errors.New("Already registered, please login")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWrongAnswer        = errors.New("Wrong email or answer")

	ErrCheckoutInFlight = errors.New("payment for this nonce is already in progress")
	ErrCheckoutFailed   = errors.New("payment previously failed for this nonce")
)

// ServerError carries the HTTP status a handler error maps to. Errors is an
// optional payload with field-level details (validation failures and the
// like) and is serialized as-is into the error envelope.
type ServerError struct {
	StatusCode int
	message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
