package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements only the commands RedisStore issues.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestRedisStore_PrefixesAndTTL(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, 7*time.Second)

	if _, ok, err := s.Get(ctx, "cards:list:v1"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "cards:list:v1", []byte(`[{"_id":"x"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if rdb.ttls["mesto:cards:list:v1"] != 7*time.Second {
		t.Fatalf("ttl = %v", rdb.ttls["mesto:cards:list:v1"])
	}

	got, ok, err := s.Get(ctx, "cards:list:v1")
	if err != nil || !ok || string(got) != `[{"_id":"x"}]` {
		t.Fatalf("get = %q %v %v", got, ok, err)
	}

	if err := s.Delete(ctx, "cards:list:v1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "cards:list:v1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestRedisStore_ErrorsSurface(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")

	_, ok, err := NewRedisStore(rdb, 0).Get(context.Background(), "k")
	if ok || err == nil {
		t.Fatalf("expected error, got ok=%v err=%v", ok, err)
	}
}

func TestRedisStore_Generation(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, time.Second)

	if gen, err := s.Generation(ctx, "cards:list:gen"); gen != 0 || err != nil {
		t.Fatalf("fresh generation = %d, %v", gen, err)
	}

	for want := int64(1); want <= 2; want++ {
		if gen, err := s.Bump(ctx, "cards:list:gen"); gen != want || err != nil {
			t.Fatalf("bump = %d, %v; want %d", gen, err, want)
		}
	}

	if gen, err := s.Generation(ctx, "cards:list:gen"); gen != 2 || err != nil {
		t.Fatalf("generation = %d, %v", gen, err)
	}
	if _, ok := rdb.ttls["mesto:cards:list:gen"]; ok {
		t.Fatal("counter must not carry a TTL")
	}
}
