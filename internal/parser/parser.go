// Package parser decodes post front-matter into the typed schema and
// measures the body.
package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"

	"github.com/starford/sitegen/internal/models"
)

const (
	// wordsPerMinute is the reading speed used for ReadTime.
	wordsPerMinute = 265

	// excerptLength caps the Excerpt in runes, ellipsis excluded.
	excerptLength = 140
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter models.Frontmatter
	Body        string
	ReadTime    int
	Excerpt     string
}

// Parse decodes YAML (---), TOML (+++) or JSON front-matter from data.
// Content without front-matter is all body. A malformed block is an error;
// callers that want to keep going use BodyOnly.
func Parse(data []byte) (*Result, error) {
	var fm models.Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, fmt.Errorf("parser: front-matter: %w", err)
	}
	fm.Tags = cleanTags(fm.Tags)
	b := string(body)
	return &Result{
		Frontmatter: fm,
		Body:        b,
		ReadTime:    readTime(b),
		Excerpt:     excerpt(b),
	}, nil
}

// BodyOnly treats the whole of data as body with empty front-matter.
func BodyOnly(data []byte) *Result {
	b := string(data)
	return &Result{Body: b, ReadTime: readTime(b), Excerpt: excerpt(b)}
}

// cleanTags trims labels and drops empty ones. Order and case are kept.
func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// readTime estimates minutes to read body; never less than one.
func readTime(body string) int {
	words := len(strings.Fields(body))
	m := int(math.Round(float64(words) / wordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}

// excerpt returns the opening words of body as plain text, cut at a word
// boundary and suffixed with an ellipsis when truncated. Markdown markers
// around words are dropped.
func excerpt(body string) string {
	var b strings.Builder
	n := 0
	for _, f := range strings.Fields(body) {
		w := strings.Trim(f, "#>*_`")
		if w == "" {
			continue
		}
		l := utf8.RuneCountInString(w)
		if n > 0 {
			l++
		}
		if n+l > excerptLength {
			if n == 0 {
				return string([]rune(w)[:excerptLength]) + "…"
			}
			return b.String() + "…"
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		n += l
	}
	return b.String()
}
