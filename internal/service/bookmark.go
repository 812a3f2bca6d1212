package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/bookmarks/internal/lib/job"
	"github.com/deppfellow/bookmarks/internal/logger"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/sqlerr"
)

//go:generate mockgen -destination=../../mocks/mock_auditor.go -package=mocks github.com/deppfellow/bookmarks/internal/service Auditor

// Auditor receives a record of every successful write.
type Auditor interface {
	EnqueueAudit(ctx context.Context, action string, bookmarkID int64, requestID string) error
}

// BookmarkService holds the bookmark operations. Existence checks belong to
// the caller; Update and Delete never report a missing row.
type BookmarkService struct {
	gateway repository.BookmarkGateway
	auditor Auditor
	logger  *zerolog.Logger
}

// NewBookmarkService wires the service. auditor may be nil.
func NewBookmarkService(gateway repository.BookmarkGateway, auditor Auditor, logger *zerolog.Logger) *BookmarkService {
	return &BookmarkService{
		gateway: gateway,
		auditor: auditor,
		logger:  logger,
	}
}

func (s *BookmarkService) List(ctx context.Context) ([]model.Bookmark, error) {
	bookmarks, err := s.gateway.SelectAll(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

// GetByID reports found=false, without error, when no row has id.
func (s *BookmarkService) GetByID(ctx context.Context, id int64) (*model.Bookmark, bool, error) {
	bookmark, err := s.gateway.SelectByID(ctx, id)
	if err != nil {
		return nil, false, sqlerr.HandleError(err)
	}
	if bookmark == nil {
		return nil, false, nil
	}
	return bookmark, true, nil
}

func (s *BookmarkService) Create(ctx context.Context, nb model.NewBookmark) (*model.Bookmark, error) {
	bookmark, err := s.gateway.Insert(ctx, nb)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.recordWrite(ctx, job.ActionCreated, bookmark.ID)
	return bookmark, nil
}

func (s *BookmarkService) Update(ctx context.Context, id int64, patch model.BookmarkPatch) error {
	if err := s.gateway.Update(ctx, id, patch); err != nil {
		return sqlerr.HandleError(err)
	}

	s.recordWrite(ctx, job.ActionUpdated, id)
	return nil
}

func (s *BookmarkService) Delete(ctx context.Context, id int64) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return sqlerr.HandleError(err)
	}

	s.recordWrite(ctx, job.ActionDeleted, id)
	return nil
}

// recordWrite logs a successful write and queues its audit record. Audit
// failures are logged only.
func (s *BookmarkService) recordWrite(ctx context.Context, action string, id int64) {
	log := s.loggerFrom(ctx)

	log.Info().
		Str("action", action).
		Int64("bookmark_id", id).
		Msgf("Bookmark with id %d %s", id, action)

	if s.auditor == nil {
		return
	}

	requestID := logger.RequestIDFromContext(ctx)
	if err := s.auditor.EnqueueAudit(context.WithoutCancel(ctx), action, id, requestID); err != nil {
		log.Error().
			Err(err).
			Str("action", action).
			Int64("bookmark_id", id).
			Msg("failed to enqueue bookmark audit")
	}
}

// loggerFrom prefers the request-scoped logger carried by ctx.
func (s *BookmarkService) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.logger != nil {
		return s.logger
	}
	nop := zerolog.Nop()
	return &nop
}
