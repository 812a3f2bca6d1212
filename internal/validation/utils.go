// Package validation contains the logic for validating
// request data.
//
// Payload types implement Validatable; create payloads describe their
// required fields as an ordered list of Rules so the first missing field is
// the one reported to the client.
package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. Validate must return an *errs.HTTPError for any
// failure the client should see.
type Validatable interface {
	Validate() error
}

// Rule describes one required field of a payload of type T.
type Rule[T any] struct {
	Field   string
	Present func(T) bool
}

// FirstMissing evaluates rules in order and reports the first field whose
// Present check fails, or nil when every field is present.
func FirstMissing[T any](payload T, rules []Rule[T]) error {
	for _, rule := range rules {
		if !rule.Present(payload) {
			return errs.NewMissingFieldError(rule.Field)
		}
	}
	return nil
}

// BindAndValidate binds request data into payload and validates it.
//
// Bind failures (malformed JSON, type mismatches) become a 400 with echo's
// message; validation failures are returned unchanged when they already are
// *errs.HTTPError and wrapped into a 400 otherwise.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.ValidationError(err)
	}

	return nil
}

func bindError(err error) *errs.HTTPError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := http.StatusText(http.StatusBadRequest)
		if m, ok := echoErr.Message.(string); ok && m != "" {
			message = m
		} else if echoErr.Message != nil {
			message = fmt.Sprint(echoErr.Message)
		}
		return errs.NewBadRequestError(message, nil)
	}
	return errs.NewBadRequestError(err.Error(), nil)
}
