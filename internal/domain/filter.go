package domain

import (
	"sort"
	"strings"
)

// SortOrder selects the single active sort key for link listings.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortTitle    SortOrder = "title"
	SortPlatform SortOrder = "platform"
)

// Filters describes one link query: free-text search, folder scope,
// tag and platform selections, a favorites switch and a sort order.
type Filters struct {
	Query         string
	FolderID      string
	Tags          []string
	Platforms     []Platform
	FavoritesOnly bool
	Sort          SortOrder
}

// IsZero reports whether no filter criterion is active (sort aside).
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		f.FolderID == "" &&
		len(f.Tags) == 0 &&
		len(f.Platforms) == 0 &&
		!f.FavoritesOnly
}

// ApplyFilters produces the ordered view of links matching the given
// filters. It is pure: the input slice is never mutated and the same
// inputs always yield the same ordered output.
//
// The pipeline order is fixed: favorites, search, folder, tags,
// platforms, sort. Keep it that way; later filters may become
// order-sensitive.
func ApplyFilters(links []Link, folders []Folder, f Filters) []Link {
	filtered := make([]Link, len(links))
	copy(filtered, links)

	if f.FavoritesOnly {
		filtered = keep(filtered, func(l Link) bool { return l.IsFavorite })
	}

	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		filtered = keep(filtered, func(l Link) bool { return matchesQuery(l, query) })
	}

	if f.FolderID != "" {
		include := folderScope(folders, f.FolderID)
		filtered = keep(filtered, func(l Link) bool { return include[l.FolderID] })
	}

	if len(f.Tags) > 0 {
		filtered = keep(filtered, func(l Link) bool { return hasAnyTag(l, f.Tags) })
	}

	if len(f.Platforms) > 0 {
		filtered = keep(filtered, func(l Link) bool {
			for _, p := range f.Platforms {
				if l.Platform == p {
					return true
				}
			}
			return false
		})
	}

	sortLinks(filtered, f.Sort)
	return filtered
}

func keep(links []Link, pred func(Link) bool) []Link {
	out := links[:0]
	for _, l := range links {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

func matchesQuery(l Link, query string) bool {
	if strings.Contains(strings.ToLower(l.Title), query) ||
		strings.Contains(strings.ToLower(l.Description), query) ||
		strings.Contains(strings.ToLower(l.URL), query) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func hasAnyTag(l Link, tags []string) bool {
	for _, want := range tags {
		for _, have := range l.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// folderScope returns the set of folder IDs a folder selection covers.
// Selecting a platform folder includes its direct children (one level
// only, not the full subtree); an ordinary folder matches exactly.
func folderScope(folders []Folder, folderID string) map[string]bool {
	include := map[string]bool{folderID: true}

	var selected *Folder
	for i := range folders {
		if folders[i].ID == folderID {
			selected = &folders[i]
			break
		}
	}
	if selected == nil || !selected.IsPlatformFolder {
		return include
	}

	for _, f := range folders {
		if f.ParentID == folderID {
			include[f.ID] = true
		}
	}
	return include
}

func sortLinks(links []Link, order SortOrder) {
	switch order {
	case SortNewest:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].CreatedAt.After(links[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].CreatedAt.Before(links[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].Title < links[j].Title
		})
	case SortPlatform:
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].Platform < links[j].Platform
		})
	}
}
