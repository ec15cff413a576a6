package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Provider {
	t.Helper()
	p, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
	if _, err := New(nil); err != ErrNilDB {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
}

func TestSetGetOverwriteDel(t *testing.T) {
	ctx := context.Background()
	p := openTest(t)

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	for _, v := range [][]byte{[]byte("first"), []byte("second")} {
		if ok, err := p.Set(ctx, "k", v, 1, 0); err != nil || !ok {
			t.Fatalf("Set: ok=%v err=%v", ok, err)
		}
		got, ok, err := p.Get(ctx, "k")
		if err != nil || !ok || !bytes.Equal(got, v) {
			t.Fatalf("Get: got=%q ok=%v err=%v", got, ok, err)
		}
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "missing"); err != nil {
		t.Fatalf("Del missing: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestTTLHintAndPurge(t *testing.T) {
	ctx := context.Background()
	p := openTest(t)
	now := time.UnixMilli(5_000_000)
	p.now = func() time.Time { return now }

	if _, err := p.Set(ctx, "short", []byte("s"), 1, time.Minute); err != nil {
		t.Fatalf("Set short: %v", err)
	}
	if _, err := p.Set(ctx, "forever", []byte("f"), 1, 0); err != nil {
		t.Fatalf("Set forever: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := p.Get(ctx, "short"); ok {
		t.Fatalf("expected short to be expired")
	}
	n, err := p.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("Purge removed %d rows, want 1", n)
	}
	if _, ok, _ := p.Get(ctx, "forever"); !ok {
		t.Fatalf("entry without ttl hint must survive purge")
	}
}
