package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/sitegen/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestSiteConfig_NormalisesPrefixAndURL(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"/":       "",
		"blog":    "/blog",
		"/blog/":  "/blog",
		" /a/b/ ": "/a/b",
	}
	for in, want := range cases {
		cfg := NewDefaultConfig().Site
		cfg.PathPrefix = in
		cfg.URL = "https://example.com/"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%q): %v", in, err)
		}
		if cfg.PathPrefix != want {
			t.Errorf("prefix %q → %q, want %q", in, cfg.PathPrefix, want)
		}
		if cfg.URL != "https://example.com" {
			t.Errorf("url = %q", cfg.URL)
		}
	}
}

func TestSiteConfig_InvalidDateFormat(t *testing.T) {
	cfg := NewDefaultConfig().Site
	cfg.DateFromFormat = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty date format should fail validation")
	}
}

func TestSiteConfig_InvalidURL(t *testing.T) {
	cfg := NewDefaultConfig().Site
	cfg.URL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid url should fail validation")
	}
}

func TestOutputConfig_SearchFileRequiredWhenEnabled(t *testing.T) {
	cfg := OutputConfig{Path: "public", SearchIndex: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("search index without a file should fail")
	}
	cfg.SearchIndex = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled search index should pass: %v", err)
	}
}

func TestTemplatesConfig_Required(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Templates.Note = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch missing template")
	}
}

func TestFullConfig_OutputInsideContentRejected(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Posts = "content/posts"
	cfg.Output.Path = "content/posts/public"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "must not be inside") {
		t.Fatalf("err = %v, want output/content overlap error", err)
	}

	cfg.Output.Path = "content/posts-public"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sibling output dir should pass: %v", err)
	}
}

func TestWatchConfig_NegativeDebounce(t *testing.T) {
	cfg := WatchConfig{Debounce: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative debounce should fail")
	}
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := `
app:
  log_level: debug
  watch:
    debounce: 500ms
site:
  url: https://blog.example.com
  path_prefix: blog
content:
  posts: ./posts
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(p, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v", cfg.App.Watch.Debounce)
	}
	if cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.Site.PathPrefix != "/blog" || cfg.Content.Posts != "./posts" {
		t.Errorf("site = %+v, content = %+v", cfg.Site, cfg.Content)
	}
	if cfg.Site.DateFromFormat != "MM-DD-YYYY" || !cfg.Site.SlugFromTitle {
		t.Errorf("defaults lost: %+v", cfg.Site)
	}
}

func TestLoad_TOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	data := `
[site]
default_category = "Notes"
slug_from_title = false

[output]
path = "./dist"
search_index = false
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(p, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.DefaultCategory != "Notes" || cfg.Site.SlugFromTitle {
		t.Errorf("site = %+v", cfg.Site)
	}
	if cfg.Output.Path != "./dist" || cfg.Output.SearchIndex {
		t.Errorf("output = %+v", cfg.Output)
	}
}
