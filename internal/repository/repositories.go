// Package repository handles all interactions with the database.
//
// It contains the SQL for the bookmarks_list table behind the
// BookmarkGateway interface, with one implementation per supported driver.
package repository

import (
	"github.com/deppfellow/bookmarks/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Bookmarks BookmarkGateway
}

// NewRepositories picks the gateway implementation matching the driver the
// server's database was opened with.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB.Pool != nil {
		return &Repositories{Bookmarks: NewBookmarkRepository(s.DB.Pool)}
	}
	return &Repositories{Bookmarks: NewSQLiteBookmarkRepository(s.DB.SQL)}
}
