package content

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func intp(n int) *int { return &n }

func slugsOfPosts(ps []Post) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func TestSortPosts_NewestFirstSlugTie(t *testing.T) {
	posts := []Post{
		{Slug: "b", Date: day("2025-01-01")},
		{Slug: "c", Date: day("2025-06-01")},
		{Slug: "a", Date: day("2025-01-01")},
	}
	SortPosts(posts)
	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, slugsOfPosts(posts)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortVentures_ExplicitOrder(t *testing.T) {
	vs := []Venture{
		{Slug: "x", Order: intp(3)},
		{Slug: "y", Order: intp(1)},
		{Slug: "z", Order: intp(2)},
	}
	SortVentures(vs)
	got := []int{*vs[0].Order, *vs[1].Order, *vs[2].Order}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortVentures_MissingOrderSortsLast(t *testing.T) {
	vs := []Venture{
		{Slug: "none-b"},
		{Slug: "ordered", Order: intp(9)},
		{Slug: "none-a"},
	}
	SortVentures(vs)
	if vs[0].Slug != "ordered" {
		t.Errorf("first = %q, want ordered", vs[0].Slug)
	}
	if vs[1].Slug != "none-a" || vs[2].Slug != "none-b" {
		t.Errorf("unordered tail should tie-break on slug: %q, %q", vs[1].Slug, vs[2].Slug)
	}
}

func TestSortExperience_CurrentBeforeCompleted(t *testing.T) {
	es := []Experience{
		{Slug: "old", Current: false},
		{Slug: "now", Current: true},
	}
	SortExperience(es)
	if es[0].Slug != "now" {
		t.Errorf("first = %q, want current role", es[0].Slug)
	}
}

func TestSortExperience_OrderWinsWhenBothPresent(t *testing.T) {
	es := []Experience{
		{Slug: "a", Current: true, Order: intp(2)},
		{Slug: "b", Current: false, Order: intp(1)},
	}
	SortExperience(es)
	if es[0].Slug != "b" {
		t.Errorf("explicit order must beat the current flag, got first = %q", es[0].Slug)
	}
}

func TestSortExperience_SlugFallback(t *testing.T) {
	es := []Experience{
		{Slug: "zeta", Current: true},
		{Slug: "alpha", Current: true},
	}
	SortExperience(es)
	if es[0].Slug != "alpha" {
		t.Errorf("equal entries must fall back to slug order, got %q", es[0].Slug)
	}
}

func TestPublishedFilter(t *testing.T) {
	posts := []Post{
		{Slug: "visible", Published: true},
		{Slug: "draft", Published: false},
	}
	got := Published(posts)
	if len(got) != 1 || got[0].Slug != "visible" {
		t.Errorf("got %v", slugsOfPosts(got))
	}
}

func TestWithTagAndCategory(t *testing.T) {
	posts := []Post{
		{Slug: "a", Category: "eng", Tags: []string{"go", "web"}},
		{Slug: "b", Category: "life", Tags: []string{"travel"}},
	}
	if got := WithTag(posts, "go"); len(got) != 1 || got[0].Slug != "a" {
		t.Errorf("WithTag = %v", slugsOfPosts(got))
	}
	if got := WithCategory(posts, "life"); len(got) != 1 || got[0].Slug != "b" {
		t.Errorf("WithCategory = %v", slugsOfPosts(got))
	}
}

func TestSortIsDeterministic(t *testing.T) {
	mk := func() []Venture {
		return []Venture{
			{Slug: "c"}, {Slug: "a", Order: intp(2)}, {Slug: "b", Order: intp(2)},
		}
	}
	first, second := mk(), mk()
	SortVentures(first)
	SortVentures(second)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two sorts of identical input differ:\n%s", diff)
	}
}
