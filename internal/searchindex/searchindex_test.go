package searchindex

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/sitegen/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "search.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func mustSync(t *testing.T, db *DB, rows []Row) *SyncStats {
	t.Helper()
	stats, err := db.Sync(rows, quietLogger())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	return stats
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	n, err := db.Count()
	if err != nil {
		t.Fatalf("pages table missing: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestSync_UpsertSkipAndRemove(t *testing.T) {
	db := testDB(t)
	rows := []Row{
		{Path: "/a", Kind: models.TemplatePost, Title: "A", Body: "first"},
		{Path: "/b", Kind: models.TemplatePost, Title: "B", Body: "second"},
	}
	if s := mustSync(t, db, rows); s.Upserted != 2 || s.Removed != 0 {
		t.Errorf("first sync = %+v", s)
	}

	if s := mustSync(t, db, rows); s.Upserted != 0 || s.Unchanged != 2 {
		t.Errorf("second sync = %+v, want all unchanged", s)
	}

	rows = []Row{{Path: "/a", Kind: models.TemplatePost, Title: "A", Body: "edited"}}
	s := mustSync(t, db, rows)
	if s.Upserted != 1 || s.Removed != 1 {
		t.Errorf("third sync = %+v, want 1 upserted and 1 removed", s)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestSearch_SubstringIgnoresCase(t *testing.T) {
	db := testDB(t)
	mustSync(t, db, []Row{
		{Path: "/s", Kind: models.TemplatePost, Title: "Search Me", Body: "a uniqueword appears here"},
		{Path: "/other", Kind: models.TemplatePost, Title: "Other", Body: "nothing to see"},
	})

	for _, q := range []string{"uniqueword", "QUEWOR", "search me"} {
		results, err := db.Search(q, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if len(results) != 1 || results[0].Path != "/s" {
			t.Errorf("Search(%q) = %+v, want 1 hit for /s", q, results)
		}
	}
}

func TestSearch_Tags(t *testing.T) {
	db := testDB(t)
	mustSync(t, db, []Row{{Path: "/t", Kind: models.TemplatePost, Title: "T", Tags: []string{"kubernetes"}}})

	results, err := db.Search("kubern", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Kind != models.TemplatePost {
		t.Errorf("results = %+v", results)
	}
}

func TestSearch_LiteralWildcards(t *testing.T) {
	db := testDB(t)
	mustSync(t, db, []Row{{Path: "/p", Kind: models.TemplatePost, Title: "Plain"}})

	results, err := db.Search("%", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("%% matched %+v", results)
	}
}

func TestSearch_RemovedPageNotFound(t *testing.T) {
	db := testDB(t)
	mustSync(t, db, []Row{{Path: "/gone", Kind: models.TemplatePost, Title: "Vanishing"}})
	mustSync(t, db, nil)

	results, _ := db.Search("vanishing", 10)
	if len(results) != 0 {
		t.Errorf("deleted page still searchable: %+v", results)
	}
}

func TestRows(t *testing.T) {
	title := "Hello World"
	index := models.SortedIndex{{
		Record: models.ContentRecord{
			RawPath:     "hello.md",
			Frontmatter: models.Frontmatter{Title: &title, Tags: []string{"go"}},
			Body:        "body",
		},
		Slug:      "/hello-world",
		Date:      time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		DateValid: true,
	}}
	tax := models.Taxonomy{
		Tags:       []models.Term{{Segment: "go", Label: "go"}},
		Categories: []models.Term{{Segment: "tech", Label: "Tech"}},
	}
	notes := []models.NoteRecord{{Name: "linear-algebra"}}

	rows := Rows(index, tax, notes, "Tech")
	want := []Row{
		{Path: "/hello-world", Kind: "post", Title: "Hello World", Date: "2020-01-02T00:00:00Z", Category: "Tech", Tags: []string{"go"}, Body: "body"},
		{Path: "/tags/go/", Kind: "tag", Title: "go"},
		{Path: "/categories/tech/", Kind: "category", Title: "Tech"},
		{Path: "/notes/linear-algebra", Kind: "note", Title: "Linear Algebra"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v", rows)
	}
	for i := range want {
		if rows[i].Checksum() != want[i].Checksum() {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestRows_ExplicitCategoryWins(t *testing.T) {
	category := "Math"
	index := models.SortedIndex{
		{Record: models.ContentRecord{RawPath: "a.md", Frontmatter: models.Frontmatter{Category: &category}}, Slug: "/a/"},
		{Record: models.ContentRecord{RawPath: "b.md"}, Slug: "/b/"},
	}

	rows := Rows(index, models.Taxonomy{}, nil, "Tech")
	if rows[0].Category != "Math" {
		t.Errorf("rows[0].Category = %q, want Math", rows[0].Category)
	}
	if rows[1].Category != "Tech" {
		t.Errorf("rows[1].Category = %q, want default Tech", rows[1].Category)
	}
	if got := Rows(index, models.Taxonomy{}, nil, ""); got[1].Category != "" {
		t.Errorf("without a default, category = %q", got[1].Category)
	}
}
