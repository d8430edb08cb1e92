package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrPostNotFound is returned when a slug does not resolve to a post
var ErrPostNotFound = errors.New("post not found")

// ErrQueryTooLong is returned when a search query exceeds the configured bound
var ErrQueryTooLong = errors.New("query too long")

// DocumentError reports a source document that failed validation. It carries
// the file and the offending field so load failures are actionable.
type DocumentError struct {
	File  string
	Field string
	Msg   string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid document %s: field %q: %s", e.File, e.Field, e.Msg)
}

// DuplicateSlugError is raised when two published documents derive the same slug.
type DuplicateSlugError struct {
	Slug  string
	Files []string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q derived from %v", e.Slug, e.Files)
}

// Post is one published content unit. Posts are immutable after loading;
// loading is the only construction path.
type Post struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	LastModified time.Time `json:"last_modified"`
	Tags         []string  `json:"tags"`
	Keywords     []string  `json:"keywords"`
	Author       string    `json:"author"`
	Body         string    `json:"body"`

	// SourceFile is the path the post was loaded from, kept for error reporting.
	SourceFile string `json:"-"`
}

// Tag pairs a tag name with the number of published posts carrying it.
type Tag struct {
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
}
