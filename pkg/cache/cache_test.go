package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte(`{"anchors":[]}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != `{"anchors":[]}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nodes.csv")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != Hash([]byte("hello")) {
		t.Errorf("HashFile = %s, want content hash", got)
	}

	got, err = HashFile(filepath.Join(dir, "missing.csv"))
	if err != nil || got != "" {
		t.Errorf("missing file: %q, %v", got, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	a := ResourceKey{ID: "a", Name: "a.png", Path: "a.png", Type: "image"}
	b := ResourceKey{ID: "b", Name: "b.png", Path: "b.png", Type: "image"}
	base := BuildKeyOpts{NodesHash: "n", EdgesHash: "e", Resources: []ResourceKey{a, b}, Keep: 3, Precision: -1, Pairing: "reversed"}

	key := k.BuildKey(base)
	if !strings.HasPrefix(key, "scaffold:") {
		t.Errorf("BuildKey = %s", key)
	}
	if key != k.BuildKey(base) {
		t.Error("BuildKey should be deterministic")
	}

	variants := []func(o *BuildKeyOpts){
		func(o *BuildKeyOpts) { o.NodesHash = "n2" },
		func(o *BuildKeyOpts) { o.Resources = []ResourceKey{b, a} },
		func(o *BuildKeyOpts) {
			renamed := a
			renamed.Name, renamed.Path = "a.b.png", "a.b.png"
			o.Resources = []ResourceKey{renamed, b}
		},
		func(o *BuildKeyOpts) { o.Keep = 4 },
		func(o *BuildKeyOpts) { o.Precision = 2 },
		func(o *BuildKeyOpts) { o.Pairing = "in-order" },
	}
	for i, mutate := range variants {
		o := base
		mutate(&o)
		if k.BuildKey(o) == key {
			t.Errorf("variant %d should change the key", i)
		}
	}

	s1 := k.ScaleKey("h", ScaleKeyOpts{Axes: []string{"x"}, Min: -1, Max: 1})
	s2 := k.ScaleKey("h", ScaleKeyOpts{Axes: []string{"x"}, Min: -2, Max: 1})
	if s1 == s2 || !strings.HasPrefix(s1, "scaled:") {
		t.Errorf("ScaleKey: %s vs %s", s1, s2)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "fascia:")
	opts := BuildKeyOpts{Keep: 3}
	if got, want := scoped.BuildKey(opts), "fascia:"+NewDefaultKeyer().BuildKey(opts); got != want {
		t.Errorf("BuildKey = %s, want %s", got, want)
	}
	if got := scoped.ScaleKey("h", ScaleKeyOpts{}); !strings.HasPrefix(got, "fascia:scaled:") {
		t.Errorf("ScaleKey = %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	base := errors.New("connection refused")
	err := Retryable(base)
	if !IsRetryable(err) || !errors.Is(err, base) {
		t.Error("wrapped error should be retryable and unwrap to its cause")
	}
	if err.Error() != base.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsRetryable(base) {
		t.Error("plain error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()
	ctx := context.Background()

	calls := 0
	plain := errors.New("bad url")
	if err := RetryWithBackoff(ctx, func() error { calls++; return plain }); err != plain || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(plain)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(plain) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(errors.New("down")) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis"); err == nil {
		t.Error("expected an error for a non-redis URL")
	}
}
