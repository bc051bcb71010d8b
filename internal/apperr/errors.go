// Package apperr defines the error taxonomy of a build.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrQuery         = errors.New("content query failed")
	ErrSlugCollision = errors.New("slug collision")
)

// QueryError reports a failed content-source query. It is fatal to the build.
type QueryError struct {
	Source string // "posts" or "notes"
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Source, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQuery, e.Err}
}

// CollisionError lists every page path claimed by more than one source.
type CollisionError struct {
	Paths map[string][]string // path -> sources
}

func (e *CollisionError) Error() string {
	paths := make([]string, 0, len(e.Paths))
	for p := range e.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s <- [%s]", p, strings.Join(e.Paths[p], ", ")))
	}
	return fmt.Sprintf("%v: %s", ErrSlugCollision, strings.Join(parts, "; "))
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrSlugCollision
}

// Warning is a non-fatal problem found while building. The record still
// takes part in the build.
type Warning struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Warning kinds.
const (
	WarnDateParse   = "date_parse"
	WarnFrontmatter = "frontmatter"
)

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Path, w.Message)
}
