package pipeline

import (
	"fmt"
	"time"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/dateformat"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/slug"
)

// Templates maps each page kind to the renderer's template identifier.
type Templates struct {
	Post     string
	Tag      string
	Category string
	Note     string
}

// DefaultTemplates returns the built-in template identifiers.
func DefaultTemplates() Templates {
	return Templates{
		Post:     models.TemplatePost,
		Tag:      models.TemplateTag,
		Category: models.TemplateCategory,
		Note:     models.TemplateNote,
	}
}

// EmitOptions are the pass-through settings the emitter copies into the plan.
type EmitOptions struct {
	Templates       Templates
	DefaultCategory string
	DisplayDate     *dateformat.Layout // optional
	SiteTitle       string
	SiteURL         string
	PathPrefix      string
}

// EmitPlan turns the derived structures into the ordered page plan: posts in
// index order, then tags, categories and notes. Two instructions whose paths
// share a models.PageKey fail the whole plan with an *apperr.CollisionError;
// "/a" and "/a/" publish to the same data file.
func EmitPlan(index models.SortedIndex, tax models.Taxonomy, links []models.NavigationLink, notes []models.NoteRecord, opts EmitOptions) (*models.Plan, error) {
	if len(links) != len(index) {
		return nil, fmt.Errorf("pipeline: %d navigation links for %d records", len(links), len(index))
	}

	pages := make([]models.PageInstruction, 0, len(index)+len(tax.Tags)+len(tax.Categories)+len(notes))
	sources := make(map[string][]string, cap(pages))
	add := func(p models.PageInstruction, source string) {
		pages = append(pages, p)
		key := models.PageKey(p.Path)
		sources[key] = append(sources[key], source+" ("+p.Path+")")
	}

	for i, r := range index {
		add(models.PageInstruction{
			Path:     r.Slug,
			Template: opts.Templates.Post,
			Context:  postContext(r, links[i], opts),
		}, "post:"+r.Record.RawPath)
	}
	for _, t := range tax.Tags {
		add(models.PageInstruction{
			Path:     "/tags/" + t.Segment + "/",
			Template: opts.Templates.Tag,
			Context:  termContext("tag", t),
		}, "tag:"+t.Label)
	}
	for _, c := range tax.Categories {
		add(models.PageInstruction{
			Path:     "/categories/" + c.Segment + "/",
			Template: opts.Templates.Category,
			Context:  termContext("category", c),
		}, "category:"+c.Label)
	}
	for _, n := range notes {
		p := "/notes/" + n.Name
		add(models.PageInstruction{
			Path:     p,
			Template: opts.Templates.Note,
			Context: map[string]any{
				"slug":     p,
				"noteFile": n.PublicURL,
				"title":    slug.ToTitle(n.Name),
			},
		}, "note:"+n.SourcePath)
	}

	collisions := make(map[string][]string)
	for key, src := range sources {
		if len(src) > 1 {
			collisions[key] = src
		}
	}
	if len(collisions) > 0 {
		return nil, &apperr.CollisionError{Paths: collisions}
	}

	return &models.Plan{
		SiteTitle:  opts.SiteTitle,
		SiteURL:    opts.SiteURL,
		PathPrefix: opts.PathPrefix,
		Pages:      pages,
	}, nil
}

func postContext(r models.IndexedRecord, link models.NavigationLink, opts EmitOptions) map[string]any {
	fm := r.Record.Frontmatter
	ctx := map[string]any{
		"slug":      r.Slug,
		"title":     r.Title(),
		"readTime":  r.Record.ReadTime,
		"excerpt":   r.Record.Excerpt,
		"nextTitle": link.NextTitle,
		"nextSlug":  link.NextSlug,
		"prevTitle": link.PrevTitle,
		"prevSlug":  link.PrevSlug,
	}
	if len(fm.Tags) > 0 {
		ctx["tags"] = fm.Tags
	}
	if fm.Cover != "" {
		ctx["cover"] = fm.Cover
	}
	if fm.Thumbnail != "" {
		ctx["thumbnail"] = fm.Thumbnail
	}
	if r.DateValid {
		ctx["date"] = r.Date.Format(time.RFC3339)
		if opts.DisplayDate != nil {
			ctx["displayDate"] = opts.DisplayDate.Format(r.Date)
		}
	}
	if category := r.Category(opts.DefaultCategory); category != "" {
		ctx["category"] = category
	}
	return ctx
}

func termContext(key string, t models.Term) map[string]any {
	ctx := map[string]any{key: t.Label}
	if len(t.Aliases) > 0 {
		ctx["aliases"] = t.Aliases
	}
	return ctx
}
