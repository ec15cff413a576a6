package fieldcache

import (
	"context"

	"github.com/unkn0wn-root/expcache"
)

// Load is the read-through used by screens. A hit is returned unless refresh
// is set; otherwise fetch is called against the primary source and its result
// replaces the cached entry. Only fetch errors reach the caller.
func Load[V any](ctx context.Context, c expcache.Cache[V], refresh bool, fetch func(context.Context) (V, error)) (V, error) {
	if !refresh {
		if v, ok := c.Get(ctx); ok {
			return v, nil
		}
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(ctx, v)
	return v, nil
}
