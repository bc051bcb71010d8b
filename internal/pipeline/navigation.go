package pipeline

import "github.com/starford/sitegen/internal/models"

// LinkNavigation returns the circular neighbours of every record, aligned
// with index positions: the first record's previous is the last record and
// the last record's next is the first.
func LinkNavigation(index models.SortedIndex) []models.NavigationLink {
	n := len(index)
	links := make([]models.NavigationLink, n)
	for i := range index {
		next := index[(i+1)%n]
		prev := index[(i-1+n)%n]
		links[i] = models.NavigationLink{
			NextTitle: next.Title(),
			NextSlug:  next.Slug,
			PrevTitle: prev.Title(),
			PrevSlug:  prev.Slug,
		}
	}
	return links
}
