// Package model defines the bookmark record, the shapes the HTTP layer
// binds requests into and the shapes it writes back.
package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/validation"
)

// Bookmark is a persisted row of bookmarks_list.
type Bookmark struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	URL         string `json:"url" db:"url"`
	Rating      int    `json:"rating" db:"rating"`
	Description string `json:"description" db:"description"`
}

// NewBookmark is a validated bookmark that has not been stored yet.
type NewBookmark struct {
	Title       string
	URL         string
	Rating      int
	Description string
}

// BookmarkPatch holds the fields a partial update overwrites. Nil fields
// are left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Rating      *int
	Description *string
}

// Column is a column/value pair of an UPDATE statement.
type Column struct {
	Name  string
	Value any
}

// Columns lists the set fields in a stable order.
func (p BookmarkPatch) Columns() []Column {
	var cols []Column
	if p.Title != nil {
		cols = append(cols, Column{Name: "title", Value: *p.Title})
	}
	if p.URL != nil {
		cols = append(cols, Column{Name: "url", Value: *p.URL})
	}
	if p.Rating != nil {
		cols = append(cols, Column{Name: "rating", Value: *p.Rating})
	}
	if p.Description != nil {
		cols = append(cols, Column{Name: "description", Value: *p.Description})
	}
	return cols
}

// IsEmpty reports whether the patch would change nothing.
func (p BookmarkPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// BookmarkResponse is the body of GET /bookmark/:id. Field order is part
// of the response contract.
type BookmarkResponse struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// CreatedBookmarkResponse is the body of a successful POST /bookmark.
type CreatedBookmarkResponse struct {
	Bookmark *Bookmark `json:"bookmark"`
}

// ------------------------------------------------------------
// Request payloads
// ------------------------------------------------------------

// CreateBookmarkPayload is the body of POST /bookmark.
type CreateBookmarkPayload struct {
	Title       *string         `json:"title"`
	URL         *string         `json:"url"`
	Rating      json.RawMessage `json:"rating"`
	Description *string         `json:"description"`

	rating int
}

var createRules = []validation.Rule[*CreateBookmarkPayload]{
	{Field: "title", Present: func(p *CreateBookmarkPayload) bool { return nonEmpty(p.Title) }},
	{Field: "url", Present: func(p *CreateBookmarkPayload) bool { return nonEmpty(p.URL) }},
	{Field: "rating", Present: func(p *CreateBookmarkPayload) bool { return ratingPresent(p.Rating) }},
}

func (p *CreateBookmarkPayload) Validate() error {
	if err := validation.FirstMissing(p, createRules); err != nil {
		return err
	}

	rating, err := ParseRating(p.Rating)
	if err != nil {
		return err
	}
	p.rating = rating

	return nil
}

// NewBookmark converts a validated payload. Description defaults to "".
func (p *CreateBookmarkPayload) NewBookmark() NewBookmark {
	nb := NewBookmark{
		Title:  *p.Title,
		URL:    *p.URL,
		Rating: p.rating,
	}
	if p.Description != nil {
		nb.Description = *p.Description
	}
	return nb
}

// ListBookmarksPayload carries nothing; GET /bookmark takes no input.
type ListBookmarksPayload struct{}

func (p *ListBookmarksPayload) Validate() error { return nil }

// GetBookmarkPayload addresses a single bookmark by path id.
type GetBookmarkPayload struct {
	ID string `param:"id" json:"-"`
}

func (p *GetBookmarkPayload) Validate() error { return nil }

// DeleteBookmarkPayload addresses the bookmark to remove.
type DeleteBookmarkPayload struct {
	ID string `param:"id" json:"-"`
}

func (p *DeleteBookmarkPayload) Validate() error { return nil }

// UpdateBookmarkPayload is the body of PATCH /bookmark/:id.
//
// Validate only covers binding: the existence check has to run before the
// body is judged, so field filtering happens in Patch.
type UpdateBookmarkPayload struct {
	ID          string          `param:"id" json:"-"`
	Title       *string         `json:"title"`
	URL         *string         `json:"url"`
	Rating      json.RawMessage `json:"rating"`
	Description *string         `json:"description"`
}

func (p *UpdateBookmarkPayload) Validate() error { return nil }

// Patch keeps the truthy fields of the body: absent, null, "" and 0 are
// dropped. A body with nothing left is rejected.
func (p *UpdateBookmarkPayload) Patch() (BookmarkPatch, error) {
	var patch BookmarkPatch

	if nonEmpty(p.Title) {
		patch.Title = p.Title
	}
	if nonEmpty(p.URL) {
		patch.URL = p.URL
	}
	if nonEmpty(p.Description) {
		patch.Description = p.Description
	}
	if truthy(p.Rating) {
		rating, err := ParseRating(p.Rating)
		if err != nil {
			return BookmarkPatch{}, err
		}
		patch.Rating = &rating
	}

	if patch.IsEmpty() {
		return BookmarkPatch{}, errs.NewNoFieldsError()
	}

	return patch, nil
}

// ------------------------------------------------------------
// Helpers
// ------------------------------------------------------------

// ParseID parses a path id. Anything that is not a base-10 integer cannot
// name a stored bookmark.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ParseRating accepts a JSON number or a numeric string holding an integral
// value within the integer column range.
func ParseRating(raw json.RawMessage) (int, error) {
	invalid := errs.NewInvalidFieldError("rating")

	var value any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return 0, invalid
	}

	var n json.Number
	switch v := value.(type) {
	case json.Number:
		n = v
	case string:
		n = json.Number(strings.TrimSpace(v))
	default:
		return 0, invalid
	}

	if i, err := n.Int64(); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, invalid
		}
		return int(i), nil
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, invalid
	}
	return int(f), nil
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

// ratingPresent treats absent, null and "" as missing.
func ratingPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	return !bytes.Equal(trimmed, []byte(`""`))
}

// truthy mirrors JSON truthiness: null, false, 0 and "" are falsy.
func truthy(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
