// Package publish writes a page plan and its note assets into the output
// directory as static files.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/starford/sitegen/internal/apperr"
	"github.com/starford/sitegen/internal/checksum"
	"github.com/starford/sitegen/internal/models"
	"github.com/starford/sitegen/internal/storage"
)

// Output file names, relative to the output root.
const (
	PlanFile     = "plan.json"
	ManifestFile = "manifest.json"
	PageDataDir  = "page-data"
)

// Stats counts the file operations of one Sync.
type Stats struct {
	Written int
	Skipped int
	Removed int
}

// pageData is the per-page file read by the renderer.
type pageData struct {
	Path        string         `json:"path"`
	Template    string         `json:"template"`
	PageContext map[string]any `json:"pageContext"`
}

// PageDataPath returns the output location of a page's data file. Paths
// with the same models.PageKey share a location.
func PageDataPath(pagePath string) string {
	return PageDataDir + "/" + models.PageKey(pagePath) + "/page-data.json"
}

// Sync publishes plan into out: plan.json, one page-data file per page and
// a copy of each note read from assets at its public URL. Files whose
// content is unchanged are not rewritten. Files listed in the previous
// manifest but no longer produced are deleted. Two pages that would share
// a data file fail the sync before anything is written.
func Sync(plan *models.Plan, notes []models.NoteRecord, out, assets storage.Provider, logger *slog.Logger) (*Stats, error) {
	owners := make(map[string]string, len(plan.Pages))
	for _, p := range plan.Pages {
		target := PageDataPath(p.Path)
		if prev, ok := owners[target]; ok {
			return nil, fmt.Errorf("publish: pages %q and %q both map to %s", prev, p.Path, target)
		}
		owners[target] = p.Path
	}

	existing, err := out.List("")
	if err != nil {
		return nil, fmt.Errorf("publish: list output: %w", err)
	}
	sums := make(map[string]string, len(existing))
	for _, m := range existing {
		sums[m.Path] = m.Checksum
	}

	stats := &Stats{}
	var produced []string
	put := func(path string, data []byte) error {
		produced = append(produced, path)
		if sums[path] == checksum.Sum(data) {
			stats.Skipped++
			return nil
		}
		if err := out.Write(path, data); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		logger.Debug("publish: wrote", slog.String("path", path))
		stats.Written++
		return nil
	}

	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("publish: encode plan: %w", err)
	}
	if err := put(PlanFile, planJSON); err != nil {
		return nil, err
	}

	for _, p := range plan.Pages {
		data, err := json.Marshal(pageData{Path: p.Path, Template: p.Template, PageContext: p.Context})
		if err != nil {
			return nil, fmt.Errorf("publish: encode %s: %w", p.Path, err)
		}
		if err := put(PageDataPath(p.Path), data); err != nil {
			return nil, err
		}
	}

	for _, n := range notes {
		target := strings.TrimPrefix(n.PublicURL, "/")
		if n.Checksum != "" && sums[target] == n.Checksum {
			produced = append(produced, target)
			stats.Skipped++
			continue
		}
		data, err := assets.Read(n.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("publish: note %s: %w", n.Name, err)
		}
		if err := put(target, data); err != nil {
			return nil, err
		}
	}

	stats.Removed = removeStale(out, produced, logger)

	slices.Sort(produced)
	manifest, err := json.MarshalIndent(produced, "", "  ")
	if err != nil {
		return stats, fmt.Errorf("publish: encode manifest: %w", err)
	}
	if sums[ManifestFile] != checksum.Sum(manifest) {
		if err := out.Write(ManifestFile, manifest); err != nil {
			return stats, fmt.Errorf("publish: %w", err)
		}
	}

	logger.Info("publish: synced",
		slog.Int("written", stats.Written),
		slog.Int("skipped", stats.Skipped),
		slog.Int("removed", stats.Removed))
	return stats, nil
}

// removeStale deletes every file named in the previous manifest that is not
// in produced. A missing or unreadable manifest removes nothing.
func removeStale(out storage.Provider, produced []string, logger *slog.Logger) int {
	data, err := out.Read(ManifestFile)
	if err != nil {
		return 0
	}
	var previous []string
	if err := json.Unmarshal(data, &previous); err != nil {
		logger.Warn("publish: ignoring corrupt manifest", slog.String("error", err.Error()))
		return 0
	}

	keep := make(map[string]struct{}, len(produced))
	for _, p := range produced {
		keep[p] = struct{}{}
	}
	removed := 0
	for _, p := range previous {
		if _, ok := keep[p]; ok {
			continue
		}
		if err := out.Delete(p); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			logger.Warn("publish: delete stale failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("publish: removed stale", slog.String("path", p))
		removed++
	}
	return removed
}
