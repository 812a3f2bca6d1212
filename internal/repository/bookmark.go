package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/bookmarks/internal/model"
)

//go:generate mockgen -destination=../../mocks/mock_gateway.go -package=mocks github.com/deppfellow/bookmarks/internal/repository BookmarkGateway

// BookmarkGateway is the persistence contract of the bookmarks_list table.
type BookmarkGateway interface {
	// SelectAll returns every row; an empty table yields an empty, non-nil slice.
	SelectAll(ctx context.Context) ([]model.Bookmark, error)
	// SelectByID returns the row with id, or nil without error when absent.
	SelectByID(ctx context.Context, id int64) (*model.Bookmark, error)
	// Insert stores a new row and returns it with its assigned id.
	Insert(ctx context.Context, nb model.NewBookmark) (*model.Bookmark, error)
	// Update overwrites the set fields of patch. A missing row is not an error.
	Update(ctx context.Context, id int64, patch model.BookmarkPatch) error
	// Delete removes the row. A missing row is not an error.
	Delete(ctx context.Context, id int64) error
}

const bookmarkColumns = "id, title, url, rating, description"

// BookmarkRepository is the PostgreSQL BookmarkGateway.
type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

var _ BookmarkGateway = (*BookmarkRepository)(nil)

func (r *BookmarkRepository) SelectAll(ctx context.Context) ([]model.Bookmark, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks_list ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select bookmarks")
	}

	bookmarks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Bookmark])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect bookmarks")
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}

	return bookmarks, nil
}

func (r *BookmarkRepository) SelectByID(ctx context.Context, id int64) (*model.Bookmark, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks_list WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select bookmark %d", id)
	}

	bookmark, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Bookmark])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to collect bookmark %d", id)
	}

	return bookmark, nil
}

func (r *BookmarkRepository) Insert(ctx context.Context, nb model.NewBookmark) (*model.Bookmark, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO bookmarks_list (title, url, rating, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bookmarkColumns,
		nb.Title, nb.URL, nb.Rating, nb.Description,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert bookmark")
	}

	bookmark, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Bookmark])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect inserted bookmark")
	}

	return bookmark, nil
}

func (r *BookmarkRepository) Update(ctx context.Context, id int64, patch model.BookmarkPatch) error {
	query, args := buildUpdate(patch, id, func(n int) string { return fmt.Sprintf("$%d", n) })
	if query == "" {
		return nil
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "failed to update bookmark %d", id)
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM bookmarks_list WHERE id = $1`, id); err != nil {
		return errors.Wrapf(err, "failed to delete bookmark %d", id)
	}
	return nil
}

// buildUpdate renders an UPDATE for the set columns of patch. placeholder
// formats the n-th bind parameter for the target driver. An empty patch
// renders an empty query.
func buildUpdate(patch model.BookmarkPatch, id int64, placeholder func(n int) string) (string, []any) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return "", nil
	}

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, col.Name+" = "+placeholder(i+1))
		args = append(args, col.Value)
	}
	args = append(args, id)

	query := "UPDATE bookmarks_list SET " + strings.Join(sets, ", ") +
		" WHERE id = " + placeholder(len(cols)+1)

	return query, args
}
