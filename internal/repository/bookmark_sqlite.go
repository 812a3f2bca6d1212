package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/deppfellow/bookmarks/internal/model"
)

// SQLiteBookmarkRepository is the BookmarkGateway over a database/sql
// handle opened with mattn/go-sqlite3.
type SQLiteBookmarkRepository struct {
	db *sql.DB
}

func NewSQLiteBookmarkRepository(db *sql.DB) *SQLiteBookmarkRepository {
	return &SQLiteBookmarkRepository{db: db}
}

var _ BookmarkGateway = (*SQLiteBookmarkRepository)(nil)

func (r *SQLiteBookmarkRepository) SelectAll(ctx context.Context) ([]model.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks_list ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select bookmarks")
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &b.Rating, &b.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan bookmark")
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate bookmarks")
	}

	return bookmarks, nil
}

func (r *SQLiteBookmarkRepository) SelectByID(ctx context.Context, id int64) (*model.Bookmark, error) {
	var b model.Bookmark
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks_list WHERE id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.URL, &b.Rating, &b.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to select bookmark %d", id)
	}

	return &b, nil
}

func (r *SQLiteBookmarkRepository) Insert(ctx context.Context, nb model.NewBookmark) (*model.Bookmark, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks_list (title, url, rating, description) VALUES (?, ?, ?, ?)`,
		nb.Title, nb.URL, nb.Rating, nb.Description,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert bookmark")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}

	return &model.Bookmark{
		ID:          id,
		Title:       nb.Title,
		URL:         nb.URL,
		Rating:      nb.Rating,
		Description: nb.Description,
	}, nil
}

func (r *SQLiteBookmarkRepository) Update(ctx context.Context, id int64, patch model.BookmarkPatch) error {
	query, args := buildUpdate(patch, id, func(int) string { return "?" })
	if query == "" {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "failed to update bookmark %d", id)
	}
	return nil
}

func (r *SQLiteBookmarkRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks_list WHERE id = ?`, id); err != nil {
		return errors.Wrapf(err, "failed to delete bookmark %d", id)
	}
	return nil
}
