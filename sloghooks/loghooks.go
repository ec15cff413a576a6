// Package sloghooks reports expcache events through log/slog.
package sloghooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/expcache"
)

type Options struct {
	// Log every Nth event of a kind; 0 and 1 log everything.
	SelfHealEvery   uint64
	StoreErrorEvery uint64
	RejectedEvery   uint64
	// Redact rewrites storage keys before they are logged. The default is
	// the first 8 bytes of the SHA-256 in hex.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHeals   atomic.Uint64
	storeErrors atomic.Uint64
	rejected    atomic.Uint64
}

var _ expcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if opts.Redact == nil {
		opts.Redact = hashKey
	}
	return &Hooks{l: l, opts: opts}
}

func hashKey(k string) string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func every(n uint64, ctr *atomic.Uint64) bool {
	return n <= 1 || ctr.Add(1)%n == 0
}

func (h *Hooks) emit(level slog.Level, msg, key string, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("key", h.opts.Redact(key)))
	h.l.LogAttrs(context.Background(), level, msg, attrs...)
}

// SelfHeal logs expiry at debug since it is routine. Corrupt and undecodable
// entries are logged at warn.
func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !every(h.opts.SelfHealEvery, &h.selfHeals) {
		return
	}
	level := slog.LevelWarn
	if reason == "expired" {
		level = slog.LevelDebug
	}
	h.emit(level, "expcache.self_heal", storageKey, slog.String("reason", reason))
}

func (h *Hooks) StoreError(op, storageKey string, err error) {
	if h.l == nil || !every(h.opts.StoreErrorEvery, &h.storeErrors) {
		return
	}
	h.emit(slog.LevelWarn, "expcache.store_error", storageKey, slog.String("op", op), slog.Any("err", err))
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil || !every(h.opts.RejectedEvery, &h.rejected) {
		return
	}
	h.emit(slog.LevelInfo, "expcache.provider_set_rejected", storageKey)
}

func (h *Hooks) EncodeError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.emit(slog.LevelError, "expcache.encode_error", storageKey, slog.Any("err", err))
}
