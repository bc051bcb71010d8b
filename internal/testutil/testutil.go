// Package testutil provides shared test helpers for setting up content
// directories and search databases.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/sitegen/internal/searchindex"
	"github.com/starford/sitegen/internal/storage"
)

// TestDB creates a temporary search database that is automatically closed.
func TestDB(t *testing.T) *searchindex.DB {
	t.Helper()
	db, err := searchindex.Open(filepath.Join(t.TempDir(), "search.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary directory with a storage provider rooted at it.
func TestVault(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFiles writes each path → content pair into store.
func WriteFiles(t *testing.T, store storage.Provider, files map[string]string) {
	t.Helper()
	for p, c := range files {
		if err := store.Write(p, []byte(c)); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// Post renders a post with YAML front-matter. Empty values are omitted.
func Post(title, date, category string, tags ...string) string {
	s := "---\n"
	if title != "" {
		s += "title: \"" + title + "\"\n"
	}
	if date != "" {
		s += "date: \"" + date + "\"\n"
	}
	if category != "" {
		s += "category: \"" + category + "\"\n"
	}
	if len(tags) > 0 {
		s += "tags:\n"
		for _, tag := range tags {
			s += "  - \"" + tag + "\"\n"
		}
	}
	return s + "---\nBody of " + title + ".\n"
}
