package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/model"
)

func registerBookmarkRoutes(r *echo.Echo, h *handler.Handlers) {
	bh := h.Bookmark

	bookmarks := r.Group("/bookmark")

	bookmarks.GET("",
		handler.Handle[model.ListBookmarksPayload](bh.Handler, bh.ListBookmarks, http.StatusOK))

	bookmarks.POST("",
		handler.Handle[model.CreateBookmarkPayload](bh.Handler, bh.CreateBookmark, http.StatusCreated),
		middleware.LogIntent("create"))

	bookmarks.GET("/:id",
		handler.Handle[model.GetBookmarkPayload](bh.Handler, bh.GetBookmark, http.StatusOK))

	bookmarks.PATCH("/:id",
		handler.HandleNoContent[model.UpdateBookmarkPayload](bh.Handler, bh.UpdateBookmark, http.StatusNoContent),
		middleware.LogIntent("update"))

	bookmarks.DELETE("/:id",
		handler.HandleNoContent[model.DeleteBookmarkPayload](bh.Handler, bh.DeleteBookmark, http.StatusNoContent),
		middleware.LogIntent("delete"))
}
