package expcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/expcache/codec"
	pr "github.com/unkn0wn-root/expcache/provider"
)

// NoExpiry disables TTL enforcement. Entries live until cleared or overwritten.
const NoExpiry time.Duration = -1

type SetCostFunc func(storageKey string, raw []byte) int64

// Cache is an expiring cache for one logical resource. V is the payload type.
// None of the mutating operations return errors: failures are logged and
// reported to Hooks, and reads degrade to a miss. Peek is the only method
// that surfaces errors, for callers that need to tell a miss from an outage.
type Cache[V any] interface {
	Enabled() bool
	StorageKey() string
	TTL() time.Duration

	// Get returns the payload if present and not older than TTL.
	// Expired or corrupt entries are deleted as a side effect.
	Get(ctx context.Context) (v V, ok bool)
	// Set overwrites the entry with a fresh timestamp.
	Set(ctx context.Context, value V)
	// Clear removes the entry. Clearing an absent entry is a no-op.
	Clear(ctx context.Context)
	// Modify rewrites the payload in place, keeping the original timestamp.
	// TTL is not enforced, so a stale-but-present entry is modified too.
	// fn reports whether it changed the value; nothing is written otherwise.
	Modify(ctx context.Context, fn func(V) (V, bool))

	// Peek reads the raw entry without TTL enforcement or self-healing.
	Peek(ctx context.Context) (e Entry[V], ok bool, err error)
	// Expired reports whether e is older than TTL right now.
	Expired(e Entry[V]) bool
}

// Options tune the behavior of an expiring cache.
// Namespace, Key, TTL, Provider and Codec are required.
type Options[V any] struct {
	// Required
	Namespace string        // logical namespace to avoid collisions. e.g. "fieldapp"
	Key       string        // resource key. e.g. "dailyPlans", "homePage"
	TTL       time.Duration // > 0, or NoExpiry. Zero is rejected.
	Provider  pr.Provider
	Codec     c.Codec[V]

	Logger         Logger           // if nil, NopLogger is used
	Hooks          Hooks            // if nil, NopHooks is used
	Now            func() time.Time // if nil, time.Now
	ProviderTTL    time.Duration    // expiry hint passed to Provider.Set; 0 => none
	ComputeSetCost SetCostFunc      // default 1
	Disabled       bool             // default false (enabled)
}

func New[V any](opts Options[V]) (Cache[V], error) {
	c, err := newCache[V](opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}
