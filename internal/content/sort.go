package content

import (
	"slices"
	"strings"
)

// Ordering rules. All ties break on slug, ascending, so every sort is a
// total order that is identical across platforms regardless of directory
// enumeration order.

// SortPosts orders posts by date, newest first.
func SortPosts(posts []Post) {
	slices.SortFunc(posts, func(a, b Post) int {
		if !a.Date.Equal(b.Date) {
			if a.Date.After(b.Date) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortExperience orders experience entries: explicit order (ascending)
// when both entries carry one, otherwise current roles before completed
// ones, otherwise by slug.
func SortExperience(entries []Experience) {
	slices.SortFunc(entries, func(a, b Experience) int {
		if a.Order != nil && b.Order != nil && *a.Order != *b.Order {
			return *a.Order - *b.Order
		}
		if a.Current != b.Current {
			if a.Current {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortVentures orders ventures by explicit order, ascending. A venture
// without an order sorts after every venture that has one.
func SortVentures(ventures []Venture) {
	slices.SortFunc(ventures, func(a, b Venture) int {
		switch {
		case a.Order != nil && b.Order != nil:
			if *a.Order != *b.Order {
				return *a.Order - *b.Order
			}
		case a.Order != nil:
			return -1
		case b.Order != nil:
			return 1
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// Published filters posts down to those not explicitly unpublished.
func Published(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}

// WithTag filters posts carrying the given tag.
func WithTag(posts []Post, tag string) []Post {
	var out []Post
	for _, p := range posts {
		if slices.Contains(p.Tags, tag) {
			out = append(out, p)
		}
	}
	return out
}

// WithCategory filters posts in the given category.
func WithCategory(posts []Post, category string) []Post {
	var out []Post
	for _, p := range posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedPosts filters posts flagged as featured.
func FeaturedPosts(posts []Post) []Post {
	var out []Post
	for _, p := range posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedVentures filters ventures flagged as featured.
func FeaturedVentures(ventures []Venture) []Venture {
	var out []Venture
	for _, v := range ventures {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out
}

// VenturesWithStatus filters ventures by status.
func VenturesWithStatus(ventures []Venture, status string) []Venture {
	var out []Venture
	for _, v := range ventures {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out
}
