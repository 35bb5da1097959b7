// Package storage persists small blobs scoped to a Discord application or to
// one guild of an application. The registration client uses it to remember
// the digest of the last command list it pushed to each scope.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// Storage is a namespaced key/value store.
type Storage interface {
	// Get returns the item stored under key, or nil when it is absent or
	// expired. An error means the backend itself failed.
	Get(ctx context.Context, key string, opts ...Option) (*Item, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte, opts ...Option) error

	// Delete removes the key named by WithKey, or every key of the selected
	// namespace when no key is given.
	Delete(ctx context.Context, opts ...Option) error

	// Close releases the backend.
	Close() error
}

// Item is a stored value with its bookkeeping.
type Item struct {
	Data      []byte
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the item outlived its TTL at now.
func (it *Item) Expired(now time.Time) bool {
	return it.ExpiresAt != nil && now.After(*it.ExpiresAt)
}

// Option configures a storage call.
type Option func(*Options)

// Options is the resolved form of a call's Option list.
type Options struct {
	Namespace Namespace
	Key       *string
	TTL       *time.Duration
}

// Apply folds opts into a fresh Options.
func Apply(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Namespace selects the scope a key lives in. A nil Namespace is the global
// scope.
type Namespace interface {
	namespace()
}

// ApplicationNamespace holds keys for an application's global commands.
type ApplicationNamespace struct {
	ApplicationID discord.Snowflake
}

func (ApplicationNamespace) namespace() {}

// GuildNamespace holds keys for an application's commands in one guild.
type GuildNamespace struct {
	ApplicationID discord.Snowflake
	GuildID       discord.Snowflake
}

func (GuildNamespace) namespace() {}

// WithApplication scopes the call to an application.
func WithApplication(appID discord.Snowflake) Option {
	return func(o *Options) {
		o.Namespace = ApplicationNamespace{ApplicationID: appID}
	}
}

// WithGuild scopes the call to one guild of an application.
func WithGuild(appID, guildID discord.Snowflake) Option {
	return func(o *Options) {
		o.Namespace = GuildNamespace{ApplicationID: appID, GuildID: guildID}
	}
}

// WithKey names the single key Delete should remove.
func WithKey(key string) Option {
	return func(o *Options) {
		o.Key = &key
	}
}

// WithTTL expires the value after ttl.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = &ttl
	}
}

// Path renders ns as a colon-separated key prefix, ending in a colon. Both
// backends lay out keys this way so a namespace delete is a prefix match;
// no namespace's prefix is a prefix of another's.
func Path(ns Namespace) string {
	switch ns := ns.(type) {
	case ApplicationNamespace:
		return "app:" + ns.ApplicationID.String() + ":"
	case GuildNamespace:
		return "guild:" + ns.ApplicationID.String() + ":" + ns.GuildID.String() + ":"
	default:
		return "global:"
	}
}

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("storage: closed")
