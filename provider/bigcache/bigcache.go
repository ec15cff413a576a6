// Package bigcache keeps cache entries in process memory using BigCache's
// sharded byte arenas. Entries do not survive a restart.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/expcache/provider"
)

// Config maps onto bigcache.Config. LifeWindow is the only required field;
// it should be at least the longest TTL served from this store, since
// BigCache drops entries after it regardless of the per-write ttl hint.
type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration // 0 keeps bigcache's default
	Shards             int           // power of two; 0 keeps the default
	MaxEntrySize       int           // initial per-entry size estimate in bytes
	HardMaxCacheSizeMB int           // 0 means unbounded
}

type Provider struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Provider)(nil)

var ErrNoLifeWindow = errors.New("bigcache provider: LifeWindow must be > 0")

func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.LifeWindow <= 0 {
		return nil, ErrNoLifeWindow
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB

	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	switch b, err := p.c.Get(key); {
	case errors.Is(err, bc.ErrEntryNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	default:
		return b, true, nil
	}
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if err := p.c.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

// Len is the number of entries currently held, expired ones included until
// the next clean pass.
func (p *Provider) Len() int { return p.c.Len() }

func (p *Provider) Close(context.Context) error { return p.c.Close() }
