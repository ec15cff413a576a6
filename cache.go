package expcache

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/expcache/codec"
	"github.com/unkn0wn-root/expcache/internal/util"
	"github.com/unkn0wn-root/expcache/internal/wire"
	pr "github.com/unkn0wn-root/expcache/provider"
)

type cache[V any] struct {
	key            string // storage key
	ttl            time.Duration
	provider       pr.Provider
	codec          codec.Codec[V]
	format         wire.Format
	log            keyLog
	hooks          Hooks
	now            func() time.Time
	providerTTL    time.Duration
	computeSetCost SetCostFunc
	enabled        bool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("expcache: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("expcache: codec is required")
	}
	if opts.TTL == 0 {
		return nil, fmt.Errorf("expcache: ttl is required (use NoExpiry for entries that never expire)")
	}
	key, err := util.StorageKey(opts.Namespace, opts.Key)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	c := &cache[V]{
		key:            key,
		ttl:            opts.TTL,
		provider:       opts.Provider,
		codec:          opts.Codec,
		format:         wire.FormatBinary,
		log:            keyLog{l: opts.Logger, key: key},
		hooks:          opts.Hooks,
		now:            opts.Now,
		providerTTL:    opts.ProviderTTL,
		computeSetCost: opts.ComputeSetCost,
		enabled:        !opts.Disabled,
	}
	if codec.IsTextual(opts.Codec) {
		c.format = wire.FormatJSON
	}
	return c, nil
}

func (c *cache[V]) Enabled() bool      { return c.enabled }
func (c *cache[V]) StorageKey() string { return c.key }
func (c *cache[V]) TTL() time.Duration { return c.ttl }

func (c *cache[V]) Get(ctx context.Context) (V, bool) {
	var zero V
	if !c.enabled {
		return zero, false
	}
	raw, ok := c.read(ctx)
	if !ok {
		return zero, false
	}
	ts, payload, err := wire.Decode(raw)
	if err != nil {
		c.selfHeal(ctx, "corrupt", err)
		return zero, false
	}
	if c.expiredAt(ts) {
		c.selfHeal(ctx, "expired", nil)
		return zero, false
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		c.selfHeal(ctx, "value_decode", err)
		return zero, false
	}
	return v, true
}

func (c *cache[V]) Set(ctx context.Context, value V) {
	if !c.enabled {
		return
	}
	c.write(ctx, value, c.now().UnixMilli())
}

func (c *cache[V]) Clear(ctx context.Context) {
	if !c.enabled {
		return
	}
	if err := c.provider.Del(ctx, c.key); err != nil {
		c.log.warn("clear failed", err)
		c.hooks.StoreError("del", c.key, err)
	}
}

func (c *cache[V]) Modify(ctx context.Context, fn func(V) (V, bool)) {
	if !c.enabled {
		return
	}
	raw, ok := c.read(ctx)
	if !ok {
		return
	}
	ts, payload, err := wire.Decode(raw)
	if err != nil {
		c.selfHeal(ctx, "corrupt", err)
		return
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		c.selfHeal(ctx, "value_decode", err)
		return
	}
	next, changed := fn(v)
	if !changed {
		return
	}
	// keep the entry's age: a partial update is not a refresh
	c.write(ctx, next, ts)
}

func (c *cache[V]) Peek(ctx context.Context) (Entry[V], bool, error) {
	var zero Entry[V]
	if !c.enabled {
		return zero, false, nil
	}
	raw, ok, err := c.provider.Get(ctx, c.key)
	if err != nil {
		return zero, false, &OpError{Op: "get", Key: c.key, Err: err}
	}
	if !ok {
		return zero, false, nil
	}
	ts, payload, err := wire.Decode(raw)
	if err != nil {
		return zero, false, &OpError{Op: "decode", Key: c.key, Err: err}
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		return zero, false, &OpError{Op: "decode", Key: c.key, Err: err}
	}
	return Entry[V]{Data: v, Timestamp: ts}, true, nil
}

func (c *cache[V]) Expired(e Entry[V]) bool { return c.expiredAt(e.Timestamp) }

func (c *cache[V]) expiredAt(ts int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().UnixMilli()-ts > c.ttl.Milliseconds()
}

// read fetches the raw entry; store errors degrade to a miss.
func (c *cache[V]) read(ctx context.Context) ([]byte, bool) {
	raw, ok, err := c.provider.Get(ctx, c.key)
	if err != nil {
		c.log.warn("read failed; treating as miss", err)
		c.hooks.StoreError("get", c.key, err)
		return nil, false
	}
	return raw, ok
}

func (c *cache[V]) write(ctx context.Context, value V, ts int64) {
	payload, err := c.codec.Encode(value)
	if err == nil {
		payload, err = wire.Encode(c.format, ts, payload)
	}
	if err != nil {
		c.log.error("encode failed; entry not written", err)
		c.hooks.EncodeError(c.key, err)
		return
	}
	ok, err := c.provider.Set(ctx, c.key, payload, c.computeSetCost(c.key, payload), c.providerTTL)
	if err != nil {
		c.log.warn("write failed", err)
		c.hooks.StoreError("set", c.key, err)
		return
	}
	if !ok {
		c.log.debug("write rejected by provider (pressure)", nil)
		c.hooks.ProviderSetRejected(c.key)
	}
}

// selfHeal drops an entry that can never be served.
func (c *cache[V]) selfHeal(ctx context.Context, reason string, cause error) {
	if cause != nil {
		c.log.debug("dropping unreadable entry", cause, "reason", reason)
	}
	c.hooks.SelfHeal(c.key, reason)
	c.Clear(ctx)
}
