package pipeline

import (
	"slices"
	"strings"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/dateformat"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/slug"
)

// ResolveSlugs assigns every record its canonical path.
func ResolveSlugs(records []models.ContentRecord, opts slug.Options) []models.IndexedRecord {
	out := make([]models.IndexedRecord, len(records))
	for i, r := range records {
		out[i] = models.IndexedRecord{
			Record: r,
			Slug:   slug.Resolve(r.RawPath, r.Frontmatter, opts),
		}
	}
	return out
}

// BuildIndex parses each record's date with layout and orders the records
// newest first. Records whose date is missing or does not parse sort ahead
// of all dated records; a date that fails to parse also yields a warning.
// Ties are broken by title, then slug, then raw path.
func BuildIndex(records []models.IndexedRecord, layout *dateformat.Layout) (models.SortedIndex, []apperr.Warning) {
	index := make(models.SortedIndex, len(records))
	var warnings []apperr.Warning

	for i, r := range records {
		r.DateValid = false
		if d := r.Record.Frontmatter.Date; d != nil {
			t, err := layout.Parse(*d)
			if err != nil {
				warnings = append(warnings, apperr.Warning{
					Kind:    apperr.WarnDateParse,
					Path:    r.Record.RawPath,
					Message: err.Error(),
				})
			} else {
				r.Date = t
				r.DateValid = true
			}
		}
		index[i] = r
	}

	slices.SortStableFunc(index, compareRecords)
	return index, warnings
}

func compareRecords(a, b models.IndexedRecord) int {
	if a.DateValid != b.DateValid {
		if !a.DateValid {
			return -1
		}
		return 1
	}
	if a.DateValid {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Title(), b.Title()); c != 0 {
		return c
	}
	if c := strings.Compare(a.Slug, b.Slug); c != 0 {
		return c
	}
	return strings.Compare(a.Record.RawPath, b.Record.RawPath)
}
