// Package provider defines the byte store an expcache.Cache persists into.
//
// A store sees only opaque values: each one is an envelope holding the write
// timestamp and the encoded payload, and Get must hand back exactly the bytes
// given to Set. Freshness is decided by the cache from that timestamp, so
// store-level expiry is only a cleanup hint.
//
// Keys look like "exp:<namespace>:<key>". Anything else written under that
// prefix is read as corruption and removed.
package provider

import (
	"context"
	"time"
)

// Provider must be safe for concurrent use. Writes to one key are last
// write wins; nothing spans keys.
type Provider interface {
	// Get reports a miss as (nil, false, nil). Only I/O or remote failures
	// return an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. cost and ttl are hints the store may
	// ignore; ttl <= 0 asks for no store-level expiry. ok=false means the
	// store declined the write, e.g. under memory pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes key. A missing key is not an error.
	Del(ctx context.Context, key string) error

	Close(ctx context.Context) error
}
