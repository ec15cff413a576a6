package expcache

import "context"

// RemoveMatching drops every element of a cached slice for which match
// returns true. The entry keeps its original timestamp, so its remaining
// lifetime is unchanged. Absent entries are left alone; a slice filtered
// down to nothing stays cached as an empty slice.
func RemoveMatching[E any](ctx context.Context, c Cache[[]E], match func(E) bool) {
	c.Modify(ctx, func(items []E) ([]E, bool) {
		return filter(items, match)
	})
}

// RemoveMatchingIn is RemoveMatching for a collection nested inside a
// structured payload. items returns a pointer to the collection within the
// decoded value, or nil when the payload holds no collection, in which case
// nothing is changed.
func RemoveMatchingIn[V, E any](ctx context.Context, c Cache[V], items func(*V) *[]E, match func(E) bool) {
	c.Modify(ctx, func(v V) (V, bool) {
		p := items(&v)
		if p == nil {
			return v, false
		}
		kept, changed := filter(*p, match)
		if changed {
			*p = kept
		}
		return v, changed
	})
}

func filter[E any](items []E, match func(E) bool) ([]E, bool) {
	kept := make([]E, 0, len(items))
	for _, it := range items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	return kept, len(kept) != len(items)
}

// RemoveMatchingAny handles dynamically typed payloads (e.g. a JSON codec
// decoding into any). Only a top-level []any is filtered; any other payload
// shape is left untouched.
func RemoveMatchingAny(ctx context.Context, c Cache[any], match func(any) bool) {
	c.Modify(ctx, func(v any) (any, bool) {
		items, ok := v.([]any)
		if !ok {
			return v, false
		}
		kept, changed := filter(items, match)
		return kept, changed
	})
}
