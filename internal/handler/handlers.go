// Package handler turns HTTP requests into service calls.
//
// Each endpoint is a typed function wrapped by Handle or HandleNoContent,
// which bind and validate the payload before the function runs.
package handler

import (
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	Bookmark *BookmarkHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Bookmark: NewBookmarkHandler(s, services.Bookmark),
	}
}
