package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/bookmarks/internal/server"
)

type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request; a no-op when New
// Relic is disabled.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the active transaction with the bookmark route it
// served and the outcome. Only server faults are noticed as errors; a 404
// for an unknown bookmark or a rejected body is an ordinary result.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)

			// Path and params are only resolved once routing has run.
			txn.AddAttribute("http.route", c.Path())
			if id := c.Param("id"); id != "" {
				txn.AddAttribute("bookmark.id", id)
			}
			if op := bookmarkOperation(c.Request().Method, c.Path()); op != "" {
				txn.AddAttribute("bookmark.operation", op)
			}

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
				txn.AddAttribute("error.status", status)
				if noticeable(status) {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}
			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}

// bookmarkOperation names the bookmark operation a route serves, or "".
func bookmarkOperation(method, path string) string {
	switch path {
	case "/bookmark":
		switch method {
		case http.MethodGet:
			return "list"
		case http.MethodPost:
			return "create"
		}
	case "/bookmark/:id":
		switch method {
		case http.MethodGet:
			return "get"
		case http.MethodPatch:
			return "update"
		case http.MethodDelete:
			return "delete"
		}
	}
	return ""
}

func noticeable(status int) bool {
	return status >= http.StatusInternalServerError
}
