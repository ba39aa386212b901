// Package apierror provides the standardized error envelopes for the API.
// Every 4xx/5xx response goes through this package so that internal detail
// (stack traces, SQL errors) never leaks to clients.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError carries per-field failures from request validation.
type ValidationError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Greska pri validaciji", Errors: fields}
}
