// Package redis shares cache entries across processes through Redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/expcache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Config struct {
	Client goredis.UniversalClient
	// Prefix is prepended to every storage key, for sharing one Redis
	// database between applications.
	Prefix string
	// OwnsClient makes Close close Client too.
	OwnsClient bool
}

type Provider struct {
	rdb    goredis.UniversalClient
	prefix string
	owns   bool
}

var _ pr.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Provider{rdb: cfg.Client, prefix: cfg.Prefix, owns: cfg.OwnsClient}, nil
}

func (p *Provider) k(key string) string { return p.prefix + key }

// Ping checks that the server is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, p.k(key)).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// Set maps the ttl hint onto the Redis key expiry. A hint <= 0 stores the
// key without expiry; staleness is still judged from the entry timestamp.
func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, p.k(key), value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Del issues DEL, which already treats a missing key as success.
func (p *Provider) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, p.k(key)).Err()
}

func (p *Provider) Close(context.Context) error {
	if !p.owns {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
