package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/sitegen/internal/dateformat"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app" toml:"app"`
	Site      SiteConfig        `yaml:"site" toml:"site"`
	Content   ContentConfig     `yaml:"content" toml:"content"`
	Output    OutputConfig      `yaml:"output" toml:"output"`
	Templates TemplatesConfig   `yaml:"templates" toml:"templates"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Templates.Validate(); err != nil {
		return err
	}
	for _, src := range []string{c.Content.Posts, c.Content.Notes} {
		if src != "" && within(c.Output.Path, src) {
			return fmt.Errorf("output: path %q must not be inside content directory %q", c.Output.Path, src)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level  `yaml:"log_level" toml:"log_level"`
	Watch    WatchConfig `yaml:"watch" toml:"watch"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.Watch.Validate()
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// SiteConfig holds the values copied into the page plan and the formats
// used to read and display post dates.
type SiteConfig struct {
	Title           string `yaml:"title" toml:"title"`
	URL             string `yaml:"url" toml:"url"`
	PathPrefix      string `yaml:"path_prefix" toml:"path_prefix"`
	DateFromFormat  string `yaml:"date_from_format" toml:"date_from_format"`
	DateFormat      string `yaml:"date_format" toml:"date_format"`
	DefaultCategory string `yaml:"default_category" toml:"default_category"`
	SlugFromTitle   bool   `yaml:"slug_from_title" toml:"slug_from_title"`
}

// Validate normalises the URL and path prefix and checks both date formats.
func (c *SiteConfig) Validate() error {
	c.URL = strings.TrimRight(c.URL, "/")
	c.PathPrefix = normalizePrefix(c.PathPrefix)

	if err := validation.ValidateStruct(c,
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.DateFromFormat, validation.Required),
		validation.Field(&c.DateFormat, validation.Required),
	); err != nil {
		return err
	}
	if _, err := dateformat.Compile(c.DateFromFormat); err != nil {
		return fmt.Errorf("site: date_from_format: %w", err)
	}
	if _, err := dateformat.Compile(c.DateFormat); err != nil {
		return fmt.Errorf("site: date_format: %w", err)
	}
	return nil
}

// normalizePrefix returns "" for the site root and "/a/b" otherwise.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// ContentConfig holds the content directories.
type ContentConfig struct {
	Posts             string   `yaml:"posts" toml:"posts"`
	Notes             string   `yaml:"notes" toml:"notes"`
	NotesPublicPrefix string   `yaml:"notes_public_prefix" toml:"notes_public_prefix"`
	Extensions        []string `yaml:"extensions" toml:"extensions"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Posts, validation.Required),
		validation.Field(&c.NotesPublicPrefix, validation.Required),
		validation.Field(&c.Extensions, validation.Each(validation.Required)),
	)
}

// OutputConfig holds where build artifacts are written.
type OutputConfig struct {
	Path        string `yaml:"path" toml:"path"`
	SearchIndex bool   `yaml:"search_index" toml:"search_index"`
	SearchFile  string `yaml:"search_file" toml:"search_file"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.SearchFile, validation.When(c.SearchIndex, validation.Required)),
	)
}

// SearchPath returns the location of the search database.
func (c *OutputConfig) SearchPath() string {
	return filepath.Join(c.Path, c.SearchFile)
}

// TemplatesConfig maps each page kind to a renderer template identifier.
type TemplatesConfig struct {
	Post     string `yaml:"post" toml:"post"`
	Tag      string `yaml:"tag" toml:"tag"`
	Category string `yaml:"category" toml:"category"`
	Note     string `yaml:"note" toml:"note"`
}

// Validate validates the templates configuration.
func (c *TemplatesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Post, validation.Required),
		validation.Field(&c.Tag, validation.Required),
		validation.Field(&c.Category, validation.Required),
		validation.Field(&c.Note, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			Watch: WatchConfig{
				Debounce: 200 * time.Millisecond,
			},
		},
		Site: SiteConfig{
			DateFromFormat:  "MM-DD-YYYY",
			DateFormat:      "MMMM Do, YYYY",
			DefaultCategory: "Tech",
			SlugFromTitle:   true,
		},
		Content: ContentConfig{
			Posts:             "./content/posts",
			Notes:             "./content/notes",
			NotesPublicPrefix: "/static",
			Extensions:        []string{".md"},
		},
		Output: OutputConfig{
			Path:        "./public",
			SearchIndex: true,
			SearchFile:  "search.db",
		},
		Templates: TemplatesConfig{
			Post:     "post",
			Tag:      "tag",
			Category: "category",
			Note:     "note",
		},
	}
}
