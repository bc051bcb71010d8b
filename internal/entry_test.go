package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/storage"
	"github.com/starford/sitegen/internal/testutil"
)

type site struct {
	cfg   *Config
	posts *storage.FS
	notes *storage.FS
	out   string
}

func newSite(t *testing.T) *site {
	t.Helper()
	root := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.Content.Posts = filepath.Join(root, "posts")
	cfg.Content.Notes = filepath.Join(root, "notes")
	cfg.Output.Path = filepath.Join(root, "public")
	cfg.App.Watch.Debounce = 50 * time.Millisecond
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	for _, d := range []string{cfg.Content.Posts, cfg.Content.Notes} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	posts, err := storage.NewFS(cfg.Content.Posts)
	if err != nil {
		t.Fatal(err)
	}
	notes, err := storage.NewFS(cfg.Content.Notes)
	if err != nil {
		t.Fatal(err)
	}
	return &site{cfg: cfg, posts: posts, notes: notes, out: cfg.Output.Path}
}

func (s *site) options() []Option {
	return []Option{
		WithConfig(s.cfg),
		WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	}
}

func (s *site) plan(t *testing.T) *models.Plan {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(s.out, "plan.json"))
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	var plan models.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	return &plan
}

func paths(plan *models.Plan) []string {
	out := make([]string, len(plan.Pages))
	for i, p := range plan.Pages {
		out[i] = p.Path
	}
	return out
}

func TestBuild_RequiresConfig(t *testing.T) {
	if err := Build(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	s := newSite(t)
	testutil.WriteFiles(t, s.posts, map[string]string{
		"first.md":        testutil.Post("Hello World", "01-02-2020", "Tech", "Go"),
		"second.md":       testutil.Post("Second Post", "01-01-2020", "", "go", "web"),
		"drafts/index.md": "no front-matter",
	})
	testutil.WriteFiles(t, s.notes, map[string]string{"linear-algebra.pdf": "%PDF"})

	if err := Build(context.Background(), s.options()...); err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := paths(s.plan(t))
	want := []string{
		"/drafts/",
		"/hello-world",
		"/second-post",
		"/tags/go/",
		"/tags/web/",
		"/categories/tech/",
		"/notes/linear-algebra",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("paths = %v, want %v", got, want)
	}

	if _, err := os.Stat(filepath.Join(s.out, "page-data", "hello-world", "page-data.json")); err != nil {
		t.Errorf("page data missing: %v", err)
	}

	results, err := Search("HELLO", 10, s.options()...)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "/hello-world" {
		t.Errorf("search results = %+v", results)
	}
}

func TestBuild_CollisionFails(t *testing.T) {
	s := newSite(t)
	testutil.WriteFiles(t, s.posts, map[string]string{
		"a.md": testutil.Post("Same", "01-02-2020", ""),
		"b.md": testutil.Post("same", "01-01-2020", ""),
	})

	err := Build(context.Background(), s.options()...)
	if !errors.Is(err, apperr.ErrSlugCollision) {
		t.Fatalf("err = %v, want slug collision", err)
	}
	if _, statErr := os.Stat(filepath.Join(s.out, "plan.json")); !os.IsNotExist(statErr) {
		t.Error("plan written despite collision")
	}
}

func TestBuild_MissingNotesDir(t *testing.T) {
	s := newSite(t)
	s.cfg.Content.Notes = filepath.Join(t.TempDir(), "absent")
	testutil.WriteFiles(t, s.posts, map[string]string{"a.md": testutil.Post("A", "01-01-2020", "")})

	if err := Build(context.Background(), s.options()...); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := paths(s.plan(t)); len(got) != 1 || got[0] != "/a" {
		t.Errorf("paths = %v", got)
	}
}

func TestSearch_BeforeBuild(t *testing.T) {
	s := newSite(t)
	if _, err := Search("x", 10, s.options()...); err == nil {
		t.Fatal("expected error when no index exists")
	}
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	s := newSite(t)
	testutil.WriteFiles(t, s.posts, map[string]string{"a.md": testutil.Post("A", "01-01-2020", "")})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, s.options()...) }()

	waitFor(t, func() bool {
		_, err := os.Stat(filepath.Join(s.out, "plan.json"))
		return err == nil
	}, "initial build did not run")
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFiles(t, s.posts, map[string]string{"b.md": testutil.Post("B", "01-02-2020", "")})
	waitFor(t, func() bool {
		_, err := os.Stat(filepath.Join(s.out, "page-data", "b", "page-data.json"))
		return err == nil
	}, "new post was not published")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Watch did not stop after cancel")
	}
}

func waitFor(t *testing.T, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal(msg)
}
