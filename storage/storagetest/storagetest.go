// Package storagetest is a conformance suite for storage.Storage backends.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/ggoodman/discord-interactions-go/storage"
)

// StorageFactory returns a fresh backend. The suite closes it when the test
// ends.
type StorageFactory func(t *testing.T) storage.Storage

// Backends shared between runs (such as a Redis database) see distinct
// application IDs per test.
var nextApp atomic.Uint64

func init() {
	nextApp.Store(uint64(time.Now().UnixNano()))
}

func freshApp() discord.Snowflake {
	return discord.Snowflake(nextApp.Add(1))
}

// RunStorageTests runs the suite against factory.
func RunStorageTests(t *testing.T, factory StorageFactory) {
	t.Run("SetAndGet", func(t *testing.T) { testSetAndGet(t, factory) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, factory) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, factory) })
	t.Run("TTL", func(t *testing.T) { testTTL(t, factory) })
	t.Run("NamespaceIsolation", func(t *testing.T) { testNamespaceIsolation(t, factory) })
	t.Run("DeleteKey", func(t *testing.T) { testDeleteKey(t, factory) })
	t.Run("DeleteNamespace", func(t *testing.T) { testDeleteNamespace(t, factory) })
}

func open(t *testing.T, factory StorageFactory) storage.Storage {
	t.Helper()
	s := factory(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustGet(t *testing.T, s storage.Storage, key string, opts ...storage.Option) *storage.Item {
	t.Helper()
	item, err := s.Get(context.Background(), key, opts...)
	if err != nil {
		t.Fatalf("Get(%q): %v", key, err)
	}
	return item
}

func mustSet(t *testing.T, s storage.Storage, key string, data []byte, opts ...storage.Option) {
	t.Helper()
	if err := s.Set(context.Background(), key, data, opts...); err != nil {
		t.Fatalf("Set(%q): %v", key, err)
	}
}

func testSetAndGet(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	app := storage.WithApplication(freshApp())

	before := time.Now().Add(-time.Second)
	mustSet(t, s, "digest", []byte("abc"), app)

	item := mustGet(t, s, "digest", app)
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if !bytes.Equal(item.Data, []byte("abc")) {
		t.Errorf("want %q, got %q", "abc", item.Data)
	}
	if item.CreatedAt.Before(before) {
		t.Errorf("CreatedAt %v predates the write", item.CreatedAt)
	}
	if item.ExpiresAt != nil {
		t.Errorf("item without TTL should not expire, got %v", item.ExpiresAt)
	}
}

func testGetMissing(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	if item := mustGet(t, s, "nope", storage.WithApplication(freshApp())); item != nil {
		t.Errorf("expected nil for missing key, got %+v", item)
	}
}

func testOverwrite(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	app := storage.WithApplication(freshApp())
	mustSet(t, s, "digest", []byte("one"), app)
	mustSet(t, s, "digest", []byte("two"), app)
	if item := mustGet(t, s, "digest", app); item == nil || string(item.Data) != "two" {
		t.Errorf("want %q, got %+v", "two", item)
	}
}

func testTTL(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	app := storage.WithApplication(freshApp())
	mustSet(t, s, "short", []byte("x"), app, storage.WithTTL(200*time.Millisecond))

	item := mustGet(t, s, "short", app)
	if item == nil || item.ExpiresAt == nil {
		t.Fatalf("expected live item with expiry, got %+v", item)
	}

	time.Sleep(400 * time.Millisecond)
	if item := mustGet(t, s, "short", app); item != nil {
		t.Errorf("expected expired item to be gone, got %+v", item)
	}
}

func testNamespaceIsolation(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	appID := freshApp()
	app := storage.WithApplication(appID)
	guildA := storage.WithGuild(appID, 1)
	guildB := storage.WithGuild(appID, 2)

	mustSet(t, s, "digest", []byte("app"), app)
	mustSet(t, s, "digest", []byte("a"), guildA)
	mustSet(t, s, "digest", []byte("b"), guildB)
	mustSet(t, s, "digest", []byte("other"), storage.WithApplication(freshApp()))

	for _, tc := range []struct {
		opt  storage.Option
		want string
	}{{app, "app"}, {guildA, "a"}, {guildB, "b"}} {
		item := mustGet(t, s, "digest", tc.opt)
		if item == nil || string(item.Data) != tc.want {
			t.Errorf("want %q, got %+v", tc.want, item)
		}
	}
}

func testDeleteKey(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	app := storage.WithApplication(freshApp())
	mustSet(t, s, "keep", []byte("1"), app)
	mustSet(t, s, "drop", []byte("2"), app)

	if err := s.Delete(context.Background(), app, storage.WithKey("drop")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if item := mustGet(t, s, "drop", app); item != nil {
		t.Errorf("deleted key still present")
	}
	if item := mustGet(t, s, "keep", app); item == nil {
		t.Errorf("sibling key was deleted")
	}
}

func testDeleteNamespace(t *testing.T, factory StorageFactory) {
	s := open(t, factory)
	appID := freshApp()
	app := storage.WithApplication(appID)
	guild := storage.WithGuild(appID, 7)

	mustSet(t, s, "a", []byte("1"), app)
	mustSet(t, s, "b", []byte("2"), app)
	mustSet(t, s, "a", []byte("3"), guild)

	if err := s.Delete(context.Background(), app); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if item := mustGet(t, s, k, app); item != nil {
			t.Errorf("key %q survived namespace delete", k)
		}
	}
	if item := mustGet(t, s, "a", guild); item == nil {
		t.Errorf("guild namespace must not be affected by an application delete")
	}
}

// RequireClosedErrors checks that calls on a closed backend fail with
// storage.ErrClosed. Backends whose Close hands off to an external client
// may not report ErrClosed and should not call this.
func RequireClosedErrors(t *testing.T, s storage.Storage) {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Get after Close: want ErrClosed, got %v", err)
	}
	if err := s.Set(context.Background(), "k", nil); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Set after Close: want ErrClosed, got %v", err)
	}
}
