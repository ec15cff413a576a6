// Package expcache implements a generic, namespaced, time-boxed cache for a
// single typed payload per logical resource, on top of any persistent
// key-value store. It is a best-effort acceleration layer: a failing store or
// an unreadable entry degrades to a cache miss and is reported through Logger
// and Hooks, never to the caller.
//
// Components:
//   - Provider: byte store. Adapters for bbolt, SQLite, Redis, Ristretto,
//     BigCache and ttlcache live under provider/.
//   - Codec[V]: (de)serializes V <-> []byte. See package codec.
//
// Keys:
//
//	exp:<ns>:<key> - one entry per cache instance
//
// Entries written with a textual codec are stored as
//
//	{"data": <payload>, "timestamp": <unix millis>}
//
// and binary codecs use a length-prefixed frame carrying the same two fields.
// Entries expire lazily: Get compares the stored timestamp with the TTL and
// deletes the entry when it is too old. There is no background sweep.
//
// Read-through pattern (the cache never fetches on its own):
//
//	plans, ok := cache.Get(ctx)
//	if !ok {
//		plans, err = fetchPlans(ctx)
//		if err != nil { ... }
//		cache.Set(ctx, plans)
//	}
package expcache
