package models

import "testing"

func TestPageKey(t *testing.T) {
	cases := map[string]string{
		"/notes/x":  "notes/x",
		"/notes/x/": "notes/x",
		"/":         "index",
		"":          "index",
		"/index/":   "index",
	}
	for in, want := range cases {
		if got := PageKey(in); got != want {
			t.Errorf("PageKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIndexedRecord_Category(t *testing.T) {
	math, empty := "Math", ""
	cases := []struct {
		category *string
		want     string
	}{
		{nil, "Tech"},
		{&empty, "Tech"},
		{&math, "Math"},
	}
	for _, c := range cases {
		r := IndexedRecord{Record: ContentRecord{Frontmatter: Frontmatter{Category: c.category}}}
		if got := r.Category("Tech"); got != c.want {
			t.Errorf("Category = %q, want %q", got, c.want)
		}
	}
}
