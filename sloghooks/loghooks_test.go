package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBuffered(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestRedactsKeysByDefault(t *testing.T) {
	h, buf := newBuffered(Options{})
	h.StoreError("set", "exp:app:dailyPlans", errors.New("disk full"))

	out := buf.String()
	if strings.Contains(out, "dailyPlans") {
		t.Fatalf("key leaked into log: %s", out)
	}
	if !strings.Contains(out, "op=set") || !strings.Contains(out, "disk full") {
		t.Fatalf("missing fields: %s", out)
	}
}

func TestCustomRedactAndSampling(t *testing.T) {
	h, buf := newBuffered(Options{
		SelfHealEvery: 3,
		Redact:        func(k string) string { return "K" },
	})
	for i := 0; i < 6; i++ {
		h.SelfHeal("exp:app:homePage", "corrupt")
	}
	if n := strings.Count(buf.String(), "expcache.self_heal"); n != 2 {
		t.Fatalf("expected 2 sampled lines, got %d: %s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "key=K") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.SelfHeal("k", "expired")
	h.StoreError("get", "k", errors.New("x"))
	h.ProviderSetRejected("k")
	h.EncodeError("k", errors.New("x"))
}

func TestExpiryLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := New(l, Options{})

	h.SelfHeal("exp:app:dailyPlans", "expired")
	if buf.Len() != 0 {
		t.Fatalf("expiry must stay below info: %s", buf.String())
	}
	h.SelfHeal("exp:app:dailyPlans", "value_decode")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "reason=value_decode") {
		t.Fatalf("unexpected line: %s", buf.String())
	}
}

func TestRejectedSampling(t *testing.T) {
	h, buf := newBuffered(Options{RejectedEvery: 2})
	for i := 0; i < 4; i++ {
		h.ProviderSetRejected("k")
	}
	if n := strings.Count(buf.String(), "expcache.provider_set_rejected"); n != 2 {
		t.Fatalf("expected 2 sampled lines, got %d", n)
	}
}
