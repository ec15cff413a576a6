// Package otelhooks counts cache events with OpenTelemetry metric instruments.
package otelhooks

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/unkn0wn-root/expcache"
)

const instrumentationName = "github.com/unkn0wn-root/expcache"

type Hooks struct {
	selfHeal    metric.Int64Counter
	storeErrors metric.Int64Counter
	rejected    metric.Int64Counter
	encodeErrs  metric.Int64Counter
}

var _ expcache.Hooks = (*Hooks)(nil)

// New registers the counters on a meter from mp.
func New(mp metric.MeterProvider) (*Hooks, error) {
	m := mp.Meter(instrumentationName)

	var h Hooks
	var err error
	if h.selfHeal, err = m.Int64Counter("expcache.self_heal",
		metric.WithDescription("Entries deleted on read (expired, corrupt, undecodable).")); err != nil {
		return nil, fmt.Errorf("self_heal counter: %w", err)
	}
	if h.storeErrors, err = m.Int64Counter("expcache.store_errors",
		metric.WithDescription("Failed provider calls.")); err != nil {
		return nil, fmt.Errorf("store_errors counter: %w", err)
	}
	if h.rejected, err = m.Int64Counter("expcache.provider_set_rejected",
		metric.WithDescription("Writes dropped by the provider under pressure.")); err != nil {
		return nil, fmt.Errorf("provider_set_rejected counter: %w", err)
	}
	if h.encodeErrs, err = m.Int64Counter("expcache.encode_errors",
		metric.WithDescription("Values that could not be encoded.")); err != nil {
		return nil, fmt.Errorf("encode_errors counter: %w", err)
	}
	return &h, nil
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	h.selfHeal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("key", storageKey),
		attribute.String("reason", reason)))
}

func (h *Hooks) StoreError(op, storageKey string, _ error) {
	h.storeErrors.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("key", storageKey),
		attribute.String("op", op)))
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	h.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("key", storageKey)))
}

func (h *Hooks) EncodeError(storageKey string, _ error) {
	h.encodeErrs.Add(context.Background(), 1, metric.WithAttributes(attribute.String("key", storageKey)))
}
