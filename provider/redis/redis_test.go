package redis

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestNewRejectsNilClient(t *testing.T) {
	if _, err := New(Config{}); err != ErrNilClient {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestPrefixAndBorrowedClient(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	p, err := New(Config{Client: client, Prefix: "app1:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.k("exp:ns:key"); got != "app1:exp:ns:key" {
		t.Fatalf("prefixed key = %q", got)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// a borrowed client stays usable after the provider is closed
	if err := client.Close(); err != nil {
		t.Fatalf("client already closed by provider: %v", err)
	}
}

// Runs against a live server when EXPCACHE_REDIS_ADDR is set.
func TestRoundTripLive(t *testing.T) {
	addr := os.Getenv("EXPCACHE_REDIS_ADDR")
	if addr == "" {
		t.Skip("EXPCACHE_REDIS_ADDR not set")
	}
	ctx := context.Background()
	p, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: addr}), Prefix: "it:", OwnsClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)
	if err := p.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	key := "exp:test:" + t.Name()
	t.Cleanup(func() { _ = p.Del(context.Background(), key) })

	val := []byte(`{"data":{"a":1},"timestamp":1}`)
	if ok, err := p.Set(ctx, key, val, 1, time.Minute); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, key)
	if err != nil || !ok || !bytes.Equal(got, val) {
		t.Fatalf("Get: got=%q ok=%v err=%v", got, ok, err)
	}
	if err := p.Del(ctx, key); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, err := p.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss after Del, ok=%v err=%v", ok, err)
	}
}
