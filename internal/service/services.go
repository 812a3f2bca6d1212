// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated values, services call the gateway and report writes.
package service

import (
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/server"
)

type Services struct {
	Bookmark *BookmarkService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// auditor must stay a nil interface when the queue is off.
	var auditor Auditor
	if s.Job != nil {
		auditor = s.Job
	}

	return &Services{
		Bookmark: NewBookmarkService(repos.Bookmarks, auditor, s.Logger),
	}, nil
}
