package fieldcache

import (
	"time"

	"github.com/unkn0wn-root/expcache"
	pr "github.com/unkn0wn-root/expcache/provider"
)

// Deps are the collaborators shared by every feature cache.
type Deps struct {
	Namespace string // e.g. "fieldapp"
	Provider  pr.Provider
	Logger    expcache.Logger
	Hooks     expcache.Hooks
	Now       func() time.Time
}

func options[V any](d Deps, key string, ttl time.Duration) expcache.Options[V] {
	return expcache.Options[V]{
		Namespace: d.Namespace,
		Key:       key,
		TTL:       ttl,
		Provider:  d.Provider,
		Logger:    d.Logger,
		Hooks:     d.Hooks,
		Now:       d.Now,
	}
}
