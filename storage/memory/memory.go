// Package memory is a bounded in-process storage.Storage backed by an LRU
// cache. It suits single-process deployments and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ggoodman/discord-interactions-go/storage"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMaxItems      = 1024
	defaultSweepInterval = 5 * time.Minute
)

// Config configures New. Zero values select the defaults.
type Config struct {
	// MaxItems bounds the cache; the least recently used key is evicted
	// first. Default 1024.
	MaxItems int

	// SweepInterval is how often expired items are dropped in the
	// background. Default 5m.
	SweepInterval time.Duration
}

// Storage implements storage.Storage.
type Storage struct {
	cache *lru.Cache[string, *storage.Item]

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
	done   chan struct{}
}

// New returns a memory store and starts its expiry sweeper. Call Close to
// stop it.
func New(cfg Config) (*Storage, error) {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	cache, err := lru.New[string, *storage.Item](cfg.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("memory: create lru cache: %w", err)
	}
	s := &Storage{
		cache: cache,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.sweep(cfg.SweepInterval)
	return s, nil
}

func (s *Storage) Get(ctx context.Context, key string, opts ...storage.Option) (*storage.Item, error) {
	if s.isClosed() {
		return nil, storage.ErrClosed
	}
	k := storage.Path(storage.Apply(opts...).Namespace) + key
	item, ok := s.cache.Get(k)
	if !ok {
		return nil, nil
	}
	if item.Expired(time.Now()) {
		s.cache.Remove(k)
		return nil, nil
	}
	out := *item
	out.Data = slices.Clone(item.Data)
	return &out, nil
}

func (s *Storage) Set(ctx context.Context, key string, data []byte, opts ...storage.Option) error {
	if s.isClosed() {
		return storage.ErrClosed
	}
	o := storage.Apply(opts...)
	now := time.Now()
	item := &storage.Item{Data: slices.Clone(data), CreatedAt: now}
	if item.Data == nil {
		item.Data = []byte{}
	}
	if o.TTL != nil {
		exp := now.Add(*o.TTL)
		item.ExpiresAt = &exp
	}
	s.cache.Add(storage.Path(o.Namespace)+key, item)
	return nil
}

func (s *Storage) Delete(ctx context.Context, opts ...storage.Option) error {
	if s.isClosed() {
		return storage.ErrClosed
	}
	o := storage.Apply(opts...)
	prefix := storage.Path(o.Namespace)
	if o.Key != nil {
		s.cache.Remove(prefix + *o.Key)
		return nil
	}
	// The LRU has no ordered index, so a namespace delete walks every key.
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Remove(k)
		}
	}
	return nil
}

// Close stops the sweeper and drops all items. It is safe to call twice.
func (s *Storage) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.stop)
	s.mu.Unlock()

	<-s.done
	s.cache.Purge()
	return nil
}

func (s *Storage) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Storage) sweep(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			for _, k := range s.cache.Keys() {
				if item, ok := s.cache.Peek(k); ok && item.Expired(now) {
					s.cache.Remove(k)
				}
			}
		}
	}
}

var _ storage.Storage = (*Storage)(nil)
