// Package ttlcache keeps cache entries in process memory and evicts each one
// when its ttl hint runs out. Entries do not survive a restart.
package ttlcache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	pr "github.com/unkn0wn-root/expcache/provider"
)

type Config struct {
	// Capacity bounds the entry count; 0 means unbounded. Past it the least
	// recently used entry is evicted.
	Capacity uint64
}

type Provider struct {
	c    *ttlcache.Cache[string, []byte]
	stop sync.Once
}

var _ pr.Provider = (*Provider)(nil)

// New starts the expiry loop; Close stops it.
func New(cfg Config) *Provider {
	opts := []ttlcache.Option[string, []byte]{ttlcache.WithDisableTouchOnHit[string, []byte]()}
	if cfg.Capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, []byte](cfg.Capacity))
	}
	p := &Provider{c: ttlcache.New[string, []byte](opts...)}
	go p.c.Start()
	return p
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := p.c.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

// Set uses the ttl hint as the eviction deadline; ttl <= 0 keeps the entry
// until it is deleted or pushed out by Capacity.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	p.c.Set(key, value, ttl)
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Delete(key)
	return nil
}

func (p *Provider) Len() int { return p.c.Len() }

func (p *Provider) Close(context.Context) error {
	p.stop.Do(p.c.Stop)
	return nil
}
