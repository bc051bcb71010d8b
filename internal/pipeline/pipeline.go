// Package pipeline derives the page plan of a site from its content:
// slug resolution, chronological indexing, taxonomy aggregation,
// navigation linking and plan emission.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/content"
	"github.com/starford/sitegen/internal/dateformat"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/slug"
)

// Options configures a build.
type Options struct {
	Slug       slug.Options
	DateLayout *dateformat.Layout
	Emit       EmitOptions
}

// Result is everything a build derives. Plan is handed to the renderer; the
// rest feeds publishing and the search index.
type Result struct {
	Plan     *models.Plan
	Index    models.SortedIndex
	Taxonomy models.Taxonomy
	Notes    []models.NoteRecord
	Warnings []apperr.Warning
}

// Build runs the whole pipeline once. A failed content query aborts the
// build with an *apperr.QueryError and no plan. Warnings are logged before
// emission, so they are reported even when the plan is rejected.
func Build(ctx context.Context, src content.Source, opts Options, logger *slog.Logger) (*Result, error) {
	if opts.DateLayout == nil {
		return nil, fmt.Errorf("pipeline: date layout is required")
	}

	records, warnings, err := src.Posts(ctx)
	if err != nil {
		return nil, &apperr.QueryError{Source: "posts", Err: err}
	}
	notes, err := src.Notes(ctx)
	if err != nil {
		return nil, &apperr.QueryError{Source: "notes", Err: err}
	}

	resolved := ResolveSlugs(records, opts.Slug)
	index, dateWarnings := BuildIndex(resolved, opts.DateLayout)
	warnings = append(warnings, dateWarnings...)
	tax := AggregateTaxonomy(index)
	links := LinkNavigation(index)

	for _, w := range warnings {
		logger.Warn("build: "+w.Kind,
			slog.String("path", w.Path),
			slog.String("error", w.Message))
	}

	plan, err := EmitPlan(index, tax, links, notes, opts.Emit)
	if err != nil {
		return nil, err
	}

	logger.Info("build: plan emitted",
		slog.Int("posts", len(index)),
		slog.Int("tags", len(tax.Tags)),
		slog.Int("categories", len(tax.Categories)),
		slog.Int("notes", len(notes)),
		slog.Int("pages", len(plan.Pages)),
		slog.Int("warnings", len(warnings)))

	return &Result{
		Plan:     plan,
		Index:    index,
		Taxonomy: tax,
		Notes:    notes,
		Warnings: warnings,
	}, nil
}
