// Package content loads posts and notes from the vault directories.
package content

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/checksum"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/parser"
	"github.com/starford/sitegen/internal/storage"
)

// Source is the content query a build runs once. Implementations return an
// error only when the query as a whole fails.
type Source interface {
	Posts(ctx context.Context) ([]models.ContentRecord, []apperr.Warning, error)
	Notes(ctx context.Context) ([]models.NoteRecord, error)
}

// Options configures a Vault.
type Options struct {
	// PostExtensions lists the file extensions treated as posts.
	PostExtensions []string
	// NotesPublicPrefix is the URL prefix under which note assets are published.
	NotesPublicPrefix string
}

// Vault is a Source backed by storage providers.
type Vault struct {
	posts storage.Provider
	notes storage.Provider
	opts  Options
}

// Verify *Vault satisfies Source at compile time.
var _ Source = (*Vault)(nil)

// NewVault creates a Source reading posts and notes from the given
// providers. notes may be nil when the site has no notes.
func NewVault(posts, notes storage.Provider, opts Options) *Vault {
	if len(opts.PostExtensions) == 0 {
		opts.PostExtensions = []string{".md"}
	}
	if opts.NotesPublicPrefix == "" {
		opts.NotesPublicPrefix = "/static"
	}
	return &Vault{posts: posts, notes: notes, opts: opts}
}

// Posts reads and parses every post. Malformed front-matter is reported as a
// warning and the file is kept with an empty front-matter.
func (v *Vault) Posts(ctx context.Context) ([]models.ContentRecord, []apperr.Warning, error) {
	metas, err := v.posts.List("", v.opts.PostExtensions...)
	if err != nil {
		return nil, nil, err
	}

	records := make([]models.ContentRecord, 0, len(metas))
	var warnings []apperr.Warning
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		data, err := v.posts.Read(m.Path)
		if err != nil {
			return nil, nil, err
		}
		res, perr := parser.Parse(data)
		if perr != nil {
			warnings = append(warnings, apperr.Warning{
				Kind:    apperr.WarnFrontmatter,
				Path:    m.Path,
				Message: perr.Error(),
			})
			res = parser.BodyOnly(data)
		}
		records = append(records, models.ContentRecord{
			RawPath:     m.Path,
			Frontmatter: res.Frontmatter,
			Body:        res.Body,
			Checksum:    m.Checksum,
			ReadTime:    res.ReadTime,
			Excerpt:     res.Excerpt,
		})
	}
	return records, warnings, nil
}

// Notes lists every PDF in the notes directory, ordered by name.
func (v *Vault) Notes(ctx context.Context) ([]models.NoteRecord, error) {
	if v.notes == nil {
		return nil, nil
	}
	metas, err := v.notes.List("", ".pdf")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.NoteRecord, 0, len(metas))
	for _, m := range metas {
		base := path.Base(m.Path)
		name := strings.TrimSuffix(base, path.Ext(base))
		out = append(out, models.NoteRecord{
			Name:       name,
			SourcePath: m.Path,
			Checksum:   m.Checksum,
			PublicURL:  PublicURL(v.opts.NotesPublicPrefix, m.Checksum, name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SourcePath < out[j].SourcePath
	})
	return out, nil
}

// PublicURL returns the content-addressed URL of a note asset.
func PublicURL(prefix, sum, name string) string {
	return path.Join("/", prefix, checksum.Short(sum, 32), fmt.Sprintf("%s.pdf", name))
}
