package middleware

import (
	"github.com/labstack/echo/v4"
)

// LogIntent logs the write a route is about to attempt, before any
// validation or lookup runs.
func LogIntent(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			event := GetLogger(c).Info().Str("action", action)
			if id := c.Param("id"); id != "" {
				event = event.Str("bookmark_id", id)
			}
			event.Msgf("%s bookmark requested", action)

			return next(c)
		}
	}
}
