// Package redis is a storage.Storage backed by Redis, for deployments where
// several processes register commands against the same application.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ggoodman/discord-interactions-go/storage"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "discord:interactions:"

// Config configures New.
type Config struct {
	// Client is required. Standalone, cluster and failover clients all
	// satisfy redis.UniversalClient.
	Client redis.UniversalClient

	// KeyPrefix is prepended to every key. Default "discord:interactions:".
	KeyPrefix string
}

// Storage implements storage.Storage.
type Storage struct {
	client redis.UniversalClient
	prefix string
}

type record struct {
	Data      []byte     `json:"data"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// New returns a Redis-backed store. It does not contact the server.
func New(cfg Config) (*Storage, error) {
	if cfg.Client == nil {
		return nil, errors.New("redis: client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	return &Storage{client: cfg.Client, prefix: cfg.KeyPrefix}, nil
}

func (s *Storage) key(ns storage.Namespace, key string) string {
	return s.prefix + storage.Path(ns) + key
}

func (s *Storage) Get(ctx context.Context, key string, opts ...storage.Option) (*storage.Item, error) {
	k := s.key(storage.Apply(opts...).Namespace, key)
	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", k, err)
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("redis: decode %s: %w", k, err)
	}
	item := &storage.Item{Data: rec.Data, CreatedAt: rec.CreatedAt, ExpiresAt: rec.ExpiresAt}
	if item.Data == nil {
		item.Data = []byte{}
	}
	// Redis expires the key itself; this covers clock skew at the boundary.
	if item.Expired(time.Now()) {
		s.client.Del(ctx, k)
		return nil, nil
	}
	return item, nil
}

func (s *Storage) Set(ctx context.Context, key string, data []byte, opts ...storage.Option) error {
	o := storage.Apply(opts...)
	k := s.key(o.Namespace, key)
	now := time.Now()
	rec := record{Data: data, CreatedAt: now}
	var ttl time.Duration
	if o.TTL != nil {
		ttl = *o.TTL
		exp := now.Add(ttl)
		rec.ExpiresAt = &exp
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", k, err)
	}
	if err := s.client.Set(ctx, k, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", k, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, opts ...storage.Option) error {
	o := storage.Apply(opts...)
	if o.Key != nil {
		k := s.key(o.Namespace, *o.Key)
		if err := s.client.Del(ctx, k).Err(); err != nil {
			return fmt.Errorf("redis: del %s: %w", k, err)
		}
		return nil
	}

	pattern := s.key(o.Namespace, "*")
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis: unlink %s: %w", pattern, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis: scan %s: %w", pattern, err)
	}
	if len(batch) > 0 {
		if err := s.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis: unlink %s: %w", pattern, err)
		}
	}
	return nil
}

// Close closes the underlying client.
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)
