package bbolt

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Provider {
	t.Helper()
	p, err := Open(filepath.Join(t.TempDir(), "cache.db"), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := openTest(t)

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	val := []byte(`{"data":[1],"timestamp":5}`)
	if ok, err := p.Set(ctx, "k", val, 1, 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, val) {
		t.Fatalf("Get: got=%q ok=%v err=%v", got, ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del of missing key: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestTTLHint(t *testing.T) {
	ctx := context.Background()
	p := openTest(t)
	now := time.UnixMilli(1_000_000)
	p.now = func() time.Time { return now }

	if _, err := p.Set(ctx, "k", []byte("v"), 1, time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	now = now.Add(999 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before ttl")
	}
	now = now.Add(2 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	p, err := Open(path, Config{Bucket: "plans"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := p.Set(ctx, "k", []byte("kept"), 1, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p2, err := Open(path, Config{Bucket: "plans"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close(ctx)
	got, ok, err := p2.Get(ctx, "k")
	if err != nil || !ok || string(got) != "kept" {
		t.Fatalf("after reopen: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestNewRejectsNilDB(t *testing.T) {
	if _, err := New(nil, Config{}); err != ErrNilDB {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
}
