package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// bookmark API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "hello, world!")
	})
	r.GET("/status", h.Health.CheckHealth)
}
