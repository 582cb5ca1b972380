// Package presenter turns flat, ordered content lists into the named sections the
// public pages render. Everything here is pure and safe for concurrent use.
package presenter

// Layout hints how a section should be rendered.
type Layout string

const (
	LayoutFeatured Layout = "featured"
	LayoutCards    Layout = "cards"
	LayoutCompact  Layout = "compact"
)

// Group is one named partition of the input, items kept in input order.
type Group[T any] struct {
	Name   string `json:"name"`
	Layout Layout `json:"layout,omitempty"`
	Items  []T    `json:"items"`
}

// GroupBy partitions records with classify. Groups named in preferred come first in
// that order, followed by every other group in the order its first record appeared.
// Each record lands in exactly one group and empty groups are never emitted.
func GroupBy[T any](records []T, classify func(T) string, preferred []string) []Group[T] {
	if len(records) == 0 {
		return nil
	}

	buckets := make(map[string][]T)
	seen := make([]string, 0)
	for _, r := range records {
		name := classify(r)
		if _, ok := buckets[name]; !ok {
			seen = append(seen, name)
		}
		buckets[name] = append(buckets[name], r)
	}

	result := make([]Group[T], 0, len(buckets))
	emitted := make(map[string]struct{}, len(buckets))
	for _, name := range preferred {
		if _, done := emitted[name]; done {
			continue
		}
		if items := buckets[name]; len(items) > 0 {
			result = append(result, Group[T]{Name: name, Items: items})
			emitted[name] = struct{}{}
		}
	}
	for _, name := range seen {
		if _, done := emitted[name]; done {
			continue
		}
		result = append(result, Group[T]{Name: name, Items: buckets[name]})
		emitted[name] = struct{}{}
	}
	return result
}

// MapGroups converts the items of every group, keeping names, layouts and order.
func MapGroups[T, U any](groups []Group[T], fn func(T) U) []Group[U] {
	if groups == nil {
		return nil
	}
	out := make([]Group[U], len(groups))
	for i, g := range groups {
		items := make([]U, len(g.Items))
		for j, item := range g.Items {
			items[j] = fn(item)
		}
		out[i] = Group[U]{Name: g.Name, Layout: g.Layout, Items: items}
	}
	return out
}

// Total counts the items across groups.
func Total[T any](groups []Group[T]) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}

// FilterActive drops the records active reports as inactive, preserving order.
func FilterActive[T any](records []T, active func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if active(r) {
			out = append(out, r)
		}
	}
	return out
}
