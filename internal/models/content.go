// Package models defines the domain types shared by the page-plan pipeline.
package models

import "time"

// Frontmatter is the typed metadata block at the top of a post.
// Nil pointers mean the key was absent.
type Frontmatter struct {
	Title     *string  `yaml:"title" toml:"title" json:"title,omitempty"`
	Date      *string  `yaml:"date" toml:"date" json:"date,omitempty"`
	Tags      []string `yaml:"tags" toml:"tags" json:"tags,omitempty"`
	Category  *string  `yaml:"category" toml:"category" json:"category,omitempty"`
	Slug      *string  `yaml:"slug" toml:"slug" json:"slug,omitempty"`
	Cover     string   `yaml:"cover" toml:"cover" json:"cover,omitempty"`
	Thumbnail string   `yaml:"thumbnail" toml:"thumbnail" json:"thumbnail,omitempty"`
}

// TitleOrEmpty returns the title, or "" when absent.
func (f Frontmatter) TitleOrEmpty() string {
	if f.Title == nil {
		return ""
	}
	return *f.Title
}

// CategoryOrEmpty returns the category, or "" when absent.
func (f Frontmatter) CategoryOrEmpty() string {
	if f.Category == nil {
		return ""
	}
	return *f.Category
}

// ContentRecord is one Markdown document from the posts directory.
type ContentRecord struct {
	RawPath     string      `json:"raw_path"` // slash-separated, relative to the posts root
	Frontmatter Frontmatter `json:"frontmatter"`
	Body        string      `json:"-"`
	Checksum    string      `json:"checksum"`
	ReadTime    int         `json:"read_time"`
	Excerpt     string      `json:"excerpt"`
}

// NoteRecord is a PDF file from the notes directory.
type NoteRecord struct {
	Name       string `json:"name"`
	SourcePath string `json:"source_path"`
	Checksum   string `json:"checksum"`
	PublicURL  string `json:"public_url"`
}

// FileMetadata is a lightweight representation returned by storage list operations.
type FileMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
