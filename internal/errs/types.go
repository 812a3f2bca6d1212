package errs

import (
	"fmt"
	"net/http"
)

// Messages used by the bookmark endpoints.
const (
	MessageBookmarkNotFound = "Bookmark doesn't exist"
	MessageNoUpdateFields   = "Request body must contain title, url, rating or description"
	MessageServerError      = "server error"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
// A nil code defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewInternalServerError creates a 500 HTTPError carrying the generic
// message only.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MessageServerError,
		Status:  http.StatusInternalServerError,
	}
}

// NewMissingFieldError reports a required field absent from the request body.
//
//	Missing 'title' in request body
func NewMissingFieldError(field string) *HTTPError {
	code := "MISSING_FIELD"
	err := NewBadRequestError(fmt.Sprintf("Missing '%s' in request body", field), &code)
	err.Field = field
	return err
}

// NewInvalidFieldError reports a field that is present but unusable.
func NewInvalidFieldError(field string) *HTTPError {
	code := "INVALID_FIELD"
	err := NewBadRequestError(fmt.Sprintf("Invalid '%s' in request body", field), &code)
	err.Field = field
	return err
}

// NewNoFieldsError reports a partial update carrying no usable field.
func NewNoFieldsError() *HTTPError {
	code := "NO_FIELDS"
	return NewBadRequestError(MessageNoUpdateFields, &code)
}

// NewBookmarkNotFoundError reports an id with no matching row.
func NewBookmarkNotFoundError() *HTTPError {
	code := "BOOKMARK_NOT_FOUND"
	return NewNotFoundError(MessageBookmarkNotFound, &code)
}

// ValidationError converts a generic validation error into a 400 HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), nil)
}

// NewTooManyRequestsError creates a 429 HTTPError for rate limited clients.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: "Too many requests",
		Status:  http.StatusTooManyRequests,
	}
}
