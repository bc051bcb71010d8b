package pipeline

import (
	"slices"
	"strings"

	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/slug"
)

// AggregateTaxonomy collects the distinct tags and categories of index.
//
// Labels are compared exactly, so "Go" and "go" are distinct. Labels whose
// kebab-cased segment is equal share one term: the first label met in index
// order becomes the term label and every distinct label is kept, in
// first-seen order, as an alias. Terms are ordered by segment.
func AggregateTaxonomy(index models.SortedIndex) models.Taxonomy {
	tags := newTermSet()
	categories := newTermSet()
	for _, r := range index {
		for _, t := range r.Record.Frontmatter.Tags {
			tags.add(t)
		}
		if c := r.Record.Frontmatter.Category; c != nil && *c != "" {
			categories.add(*c)
		}
	}
	return models.Taxonomy{
		Tags:       tags.terms(),
		Categories: categories.terms(),
	}
}

type termSet struct {
	bySegment map[string]*models.Term
	order     []string
}

func newTermSet() *termSet {
	return &termSet{bySegment: make(map[string]*models.Term)}
}

func (s *termSet) add(label string) {
	seg := slug.Kebab(label)
	term, ok := s.bySegment[seg]
	if !ok {
		s.bySegment[seg] = &models.Term{Segment: seg, Label: label, Aliases: []string{label}}
		s.order = append(s.order, seg)
		return
	}
	if !slices.Contains(term.Aliases, label) {
		term.Aliases = append(term.Aliases, label)
	}
}

func (s *termSet) terms() []models.Term {
	out := make([]models.Term, 0, len(s.order))
	for _, seg := range s.order {
		t := *s.bySegment[seg]
		if len(t.Aliases) < 2 {
			t.Aliases = nil
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Term) int {
		return strings.Compare(a.Segment, b.Segment)
	})
	return out
}
