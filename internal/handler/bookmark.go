package handler

import (
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/sanitize"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
)

type BookmarkHandler struct {
	Handler
	bookmarkService *service.BookmarkService
}

func NewBookmarkHandler(s *server.Server, bookmarkService *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		Handler:         NewHandler(s),
		bookmarkService: bookmarkService,
	}
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context, _ *model.ListBookmarksPayload) ([]model.Bookmark, error) {
	return h.bookmarkService.List(c.Request().Context())
}

// GetBookmark answers with the sanitized bookmark.
func (h *BookmarkHandler) GetBookmark(c echo.Context, payload *model.GetBookmarkPayload) (*model.BookmarkResponse, error) {
	bookmark, err := h.requireBookmark(c, payload.ID)
	if err != nil {
		return nil, err
	}

	return &model.BookmarkResponse{
		ID:          bookmark.ID,
		Rating:      bookmark.Rating,
		Title:       sanitize.HTML(bookmark.Title),
		Description: sanitize.HTML(bookmark.Description),
		URL:         sanitize.HTML(bookmark.URL),
	}, nil
}

func (h *BookmarkHandler) CreateBookmark(c echo.Context, payload *model.CreateBookmarkPayload) (*model.CreatedBookmarkResponse, error) {
	bookmark, err := h.bookmarkService.Create(c.Request().Context(), payload.NewBookmark())
	if err != nil {
		return nil, err
	}

	location := path.Join(c.Request().URL.Path, strconv.FormatInt(bookmark.ID, 10))
	c.Response().Header().Set(echo.HeaderLocation, location)

	return &model.CreatedBookmarkResponse{Bookmark: bookmark}, nil
}

func (h *BookmarkHandler) UpdateBookmark(c echo.Context, payload *model.UpdateBookmarkPayload) error {
	bookmark, err := h.requireBookmark(c, payload.ID)
	if err != nil {
		return err
	}

	patch, err := payload.Patch()
	if err != nil {
		return err
	}

	return h.bookmarkService.Update(c.Request().Context(), bookmark.ID, patch)
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context, payload *model.DeleteBookmarkPayload) error {
	bookmark, err := h.requireBookmark(c, payload.ID)
	if err != nil {
		return err
	}

	return h.bookmarkService.Delete(c.Request().Context(), bookmark.ID)
}

// requireBookmark loads the bookmark named by a path id or fails with 404.
func (h *BookmarkHandler) requireBookmark(c echo.Context, rawID string) (*model.Bookmark, error) {
	id, ok := model.ParseID(rawID)
	if !ok {
		h.logNotFound(c, rawID)
		return nil, errs.NewBookmarkNotFoundError()
	}

	bookmark, found, err := h.bookmarkService.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if !found {
		h.logNotFound(c, rawID)
		return nil, errs.NewBookmarkNotFoundError()
	}

	return bookmark, nil
}

func (h *BookmarkHandler) logNotFound(c echo.Context, rawID string) {
	h.logger(c).Error().
		Str("bookmark_id", rawID).
		Int("status", http.StatusNotFound).
		Msgf("Bookmark with id %s not found", rawID)
}
