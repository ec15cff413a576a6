// Package backend opens the provider named by a config.Config.
package backend

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/expcache/internal/config"
	pr "github.com/unkn0wn-root/expcache/provider"
	"github.com/unkn0wn-root/expcache/provider/bbolt"
	"github.com/unkn0wn-root/expcache/provider/redis"
	"github.com/unkn0wn-root/expcache/provider/sqlite"
)

// Open returns a provider the caller must Close.
func Open(ctx context.Context, cfg config.Config) (pr.Provider, error) {
	switch cfg.Backend {
	case "bbolt":
		p, err := bbolt.Open(cfg.Path, bbolt.Config{Bucket: cfg.Bucket})
		if err != nil {
			return nil, fmt.Errorf("open bbolt %s: %w", cfg.Path, err)
		}
		return p, nil
	case "sqlite":
		p, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return p, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		p, err := redis.New(redis.Config{Client: client, OwnsClient: true})
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		if err := p.Ping(ctx); err != nil {
			_ = p.Close(ctx)
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
