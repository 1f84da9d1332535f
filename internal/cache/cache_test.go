package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	if _, ok, _ := c.Get(ctx, "cards:list:v1"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	_ = c.Set(ctx, "cards:list:v1", []byte(`[]`))

	got, ok, err := c.Get(ctx, "cards:list:v1")
	if err != nil || !ok || string(got) != `[]` {
		t.Fatalf("got (%q, %v, %v)", got, ok, err)
	}

	_ = c.Delete(ctx, "cards:list:v1")

	if _, ok, _ := c.Get(ctx, "cards:list:v1"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := New(time.Second)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"))

	now = now.Add(500 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("entry expired too early")
	}

	now = now.Add(time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}

	c.mu.RLock()
	_, still := c.m["k"]
	c.mu.RUnlock()
	if still {
		t.Fatalf("expired entry should be evicted on read")
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	if c := New(0); c.ttl != 5*time.Second {
		t.Fatalf("got ttl %v", c.ttl)
	}
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)
	_ = c.Set(ctx, "a", []byte("1"))
	_ = c.Set(ctx, "b", []byte("2"))

	c.Clear()

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("expected empty cache after Clear")
	}
}

func TestCache_Generation(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	if gen, _ := c.Generation(ctx, "g"); gen != 0 {
		t.Fatalf("fresh generation = %d", gen)
	}
	if gen, _ := c.Bump(ctx, "g"); gen != 1 {
		t.Fatalf("bump = %d", gen)
	}
	if gen, _ := c.Generation(ctx, "g"); gen != 1 {
		t.Fatalf("generation = %d", gen)
	}
}

func TestCache_SetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	c := New(time.Second)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "cards:list:v1:gen=0", []byte("old"))
	now = now.Add(2 * time.Second)
	_ = c.Set(ctx, "cards:list:v1:gen=1", []byte("new"))

	c.mu.RLock()
	_, stale := c.m["cards:list:v1:gen=0"]
	c.mu.RUnlock()
	if stale {
		t.Fatal("expired entry of a past generation should be swept")
	}
}
