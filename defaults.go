package expcache

import "time"

func unitCost(string, []byte) int64 { return 1 }

// withDefaults fills the optional fields of o and folds every negative TTL
// into NoExpiry. Required fields are checked by newCache.
func (o Options[V]) withDefaults() Options[V] {
	if o.TTL < 0 {
		o.TTL = NoExpiry
	}
	o.Logger = coalesce[Logger](o.Logger, NopLogger{})
	o.Hooks = coalesce[Hooks](o.Hooks, NopHooks{})
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.ComputeSetCost == nil {
		o.ComputeSetCost = unitCost
	}
	if o.ProviderTTL < 0 {
		o.ProviderTTL = 0
	}
	return o
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
