package expcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// An entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "expired", "value_decode"}
	SelfHeal(storageKey, reason string)

	// A provider call failed. op ∈ {"get", "set", "del"}
	StoreError(op, storageKey string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// The value could not be encoded; nothing was written.
	EncodeError(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)          {}
func (NopHooks) StoreError(string, string, error) {}
func (NopHooks) ProviderSetRejected(string)       {}
func (NopHooks) EncodeError(string, error)        {}
