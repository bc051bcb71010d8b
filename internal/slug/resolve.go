package slug

import (
	"path"
	"strings"

	"github.com/starford/sitegen/internal/models"
)

// Options controls slug resolution.
type Options struct {
	// FromTitle derives the slug from the front-matter title when no explicit
	// slug is set.
	FromTitle bool
}

// Resolve returns the canonical page path of a record. It never fails:
//
//  1. front-matter slug: "/" + Kebab(slug)
//  2. front-matter title (when opts.FromTitle): "/" + Kebab(title)
//  3. non-index file in a directory: "/<dir>/<name>/"
//  4. file at the root: "/<name>/"
//  5. index file in a directory: "/<dir>/"
//
// Empty slug or title values produce the degenerate path "/".
func Resolve(rawPath string, fm models.Frontmatter, opts Options) string {
	if fm.Slug != nil {
		return "/" + Kebab(*fm.Slug)
	}
	if opts.FromTitle && fm.Title != nil {
		return "/" + Kebab(*fm.Title)
	}

	dir, name := splitPath(rawPath)
	switch {
	case name != "index" && dir != "":
		return "/" + dir + "/" + name + "/"
	case dir == "":
		return "/" + name + "/"
	default:
		return "/" + dir + "/"
	}
}

// splitPath mirrors a dir/name parse of a slash-separated path, dropping the extension.
func splitPath(rawPath string) (dir, name string) {
	p := strings.TrimPrefix(path.Clean("/"+rawPath), "/")
	dir = path.Dir(p)
	if dir == "." {
		dir = ""
	}
	base := path.Base(p)
	name = strings.TrimSuffix(base, path.Ext(base))
	return dir, name
}

// ToTitle turns a hyphenated slug into a display title by capitalising the
// first letter of each hyphen-separated word.
func ToTitle(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
