package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config selects the store cachectl operates on.
type Config struct {
	Backend   string        `env:"EXPCACHE_BACKEND" envDefault:"bbolt"` // bbolt | sqlite | redis
	Path      string        `env:"EXPCACHE_PATH" envDefault:"expcache.db"`
	Bucket    string        `env:"EXPCACHE_BUCKET"`
	RedisAddr string        `env:"EXPCACHE_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Namespace string        `env:"EXPCACHE_NAMESPACE" envDefault:"fieldapp"`
	TTL       time.Duration `env:"EXPCACHE_TTL" envDefault:"10m"`
	Debug     bool          `env:"EXPCACHE_DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFrom is Load over an explicit environment map.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case "bbolt", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("EXPCACHE_PATH is required for backend %q", c.Backend)
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("EXPCACHE_REDIS_ADDR is required for backend redis")
		}
	default:
		return fmt.Errorf("unknown backend %q (want bbolt, sqlite or redis)", c.Backend)
	}
	if c.TTL == 0 {
		return fmt.Errorf("EXPCACHE_TTL must be non-zero (negative disables expiry)")
	}
	return nil
}
