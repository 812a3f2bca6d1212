// Package errs defines custom error types and utilities.
//
// Its purpose is to give every client-facing failure a consistent JSON
// shape:
//
//	{ "error": { "message": "Bookmark doesn't exist" } }
//
// while keeping errors that play nicely with Go's standard errors package.
package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: human-friendly message sent to the client.
//   - Status: HTTP status code.
//   - Field: the request field a validation error relates to, logged only.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Field   string `json:"-"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It does not compare
// Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Field:   e.Field,
	}
}

// Body wraps the error into the response envelope.
func (e *HTTPError) Body() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: e.Message}}
}

// ErrorBody is the inner object of a client error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for 4xx responses and for 500 responses in
// production.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DetailedErrorResponse is the 500 body outside production: the raw error
// message plus whatever detail the failing layer attached.
type DetailedErrorResponse struct {
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
