package searchindex

import (
	"encoding/json"
	"time"

	"github.com/starford/sitegen/internal/checksum"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/slug"
)

// Row is one searchable page.
type Row struct {
	Path     string   `json:"path"`
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Date     string   `json:"date,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Body     string   `json:"body,omitempty"`
}

// Checksum identifies the row's content so unchanged rows can be skipped.
func (r Row) Checksum() string {
	data, _ := json.Marshal(r)
	return checksum.Sum(data)
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Kind    string
	Title   string
	Snippet string
}

// Rows lists one row per post, tag, category and note page, using the same
// paths the page plan assigns them. Posts without a category are filed
// under defaultCategory, as on their pages.
func Rows(index models.SortedIndex, tax models.Taxonomy, notes []models.NoteRecord, defaultCategory string) []Row {
	rows := make([]Row, 0, len(index)+len(tax.Tags)+len(tax.Categories)+len(notes))
	for _, r := range index {
		row := Row{
			Path:     r.Slug,
			Kind:     models.TemplatePost,
			Title:    r.Title(),
			Category: r.Category(defaultCategory),
			Tags:     r.Record.Frontmatter.Tags,
			Body:     r.Record.Body,
		}
		if r.DateValid {
			row.Date = r.Date.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	for _, t := range tax.Tags {
		rows = append(rows, Row{Path: "/tags/" + t.Segment + "/", Kind: models.TemplateTag, Title: t.Label, Tags: t.Aliases})
	}
	for _, c := range tax.Categories {
		rows = append(rows, Row{Path: "/categories/" + c.Segment + "/", Kind: models.TemplateCategory, Title: c.Label, Tags: c.Aliases})
	}
	for _, n := range notes {
		rows = append(rows, Row{Path: "/notes/" + n.Name, Kind: models.TemplateNote, Title: slug.ToTitle(n.Name)})
	}
	return rows
}
