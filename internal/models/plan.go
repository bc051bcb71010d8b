package models

import (
	"strings"
	"time"
)

// Template identifiers used when no override is configured.
const (
	TemplatePost     = "post"
	TemplateTag      = "tag"
	TemplateCategory = "category"
	TemplateNote     = "note"
)

// IndexedRecord is a content record after slug resolution and date parsing.
type IndexedRecord struct {
	Record    ContentRecord
	Slug      string
	Date      time.Time
	DateValid bool
}

// Title returns the record's front-matter title.
func (r IndexedRecord) Title() string {
	return r.Record.Frontmatter.TitleOrEmpty()
}

// Category returns the record's category, or def when it has none.
func (r IndexedRecord) Category(def string) string {
	if c := r.Record.Frontmatter.CategoryOrEmpty(); c != "" {
		return c
	}
	return def
}

// SortedIndex is the chronological ordering of all records, newest first.
type SortedIndex []IndexedRecord

// NavigationLink holds the chronological neighbours of a record.
type NavigationLink struct {
	NextTitle string `json:"nextTitle"`
	NextSlug  string `json:"nextSlug"`
	PrevTitle string `json:"prevTitle"`
	PrevSlug  string `json:"prevSlug"`
}

// Term is a tag or category after aggregation.
type Term struct {
	Segment string   `json:"segment"`
	Label   string   `json:"label"`
	Aliases []string `json:"aliases,omitempty"`
}

// Taxonomy holds the distinct tags and categories across all records.
type Taxonomy struct {
	Tags       []Term `json:"tags"`
	Categories []Term `json:"categories"`
}

// PageInstruction tells the renderer which static page to produce.
type PageInstruction struct {
	Path     string         `json:"path"`
	Template string         `json:"template"`
	Context  map[string]any `json:"context"`
}

// Plan is the full, ordered set of page instructions for one build.
type Plan struct {
	SiteTitle  string            `json:"site_title,omitempty"`
	SiteURL    string            `json:"site_url,omitempty"`
	PathPrefix string            `json:"path_prefix"`
	Pages      []PageInstruction `json:"pages"`
}

// PageKey is the identity of a page path once surrounding slashes are
// dropped, so "/a" and "/a/" are the same page. The site root is "index".
func PageKey(path string) string {
	k := strings.Trim(path, "/")
	if k == "" {
		return "index"
	}
	return k
}
