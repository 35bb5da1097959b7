// Package register pushes command definitions to the platform's bulk
// overwrite endpoints.
//
// A Client PUTs the encoded command list to the application-wide endpoint
// (PutCommands) or to one guild (PutGuildCommands). Any 2xx status is
// success; anything else is returned as a *StatusError carrying the response
// body verbatim.
//
// When Config.Storage is set, the client remembers the SHA-256 of the last
// payload it successfully pushed to each scope and skips the request when
// nothing changed. Pass Force to push regardless. A failed push forgets the
// scope's digest, since the remote state is then unknown.
package register

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/ggoodman/discord-interactions-go/storage"
)

// DefaultBaseURL is the versioned REST root used when Config.BaseURL is
// empty.
const DefaultBaseURL = "https://discord.com/api/v10"

const (
	digestKey    = "commands.sha256"
	userAgent    = "DiscordBot (https://github.com/ggoodman/discord-interactions-go, 1)"
	maxErrorBody = 64 << 10
)

// Config configures NewClient.
type Config struct {
	// ApplicationID is required.
	ApplicationID discord.Snowflake

	// BotToken is required. It is sent as "Authorization: Bot <token>".
	BotToken string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// Storage, when set, enables the unchanged-payload skip.
	Storage storage.Storage

	// DigestTTL, when positive, expires stored digests so an unchanged
	// payload is pushed again at least this often.
	DigestTTL time.Duration

	// LogHandler is an optional slog.Handler. If nil, logging is discarded.
	LogHandler slog.Handler
}

// Client registers commands for one application.
type Client struct {
	appID   discord.Snowflake
	token   string
	baseURL string
	http    *http.Client
	store   storage.Storage
	ttl     time.Duration
	log     *slog.Logger
}

// StatusError reports a non-2xx registration response. The body is not
// interpreted.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("register: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Body
}

// Result describes a completed registration.
type Result struct {
	// Skipped is true when the stored digest matched and no request was made.
	Skipped bool

	// Digest is the hex SHA-256 of the encoded payload.
	Digest string
}

// PutOption adjusts a single PutCommands or PutGuildCommands call.
type PutOption func(*putOptions)

type putOptions struct {
	force bool
}

// Force pushes the payload even when the stored digest matches.
func Force() PutOption {
	return func(o *putOptions) { o.force = true }
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ApplicationID == 0 {
		return nil, errors.New("register: application id is required")
	}
	if cfg.BotToken == "" {
		return nil, errors.New("register: bot token is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if cfg.DigestTTL < 0 {
		return nil, errors.New("register: digest ttl must not be negative")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("register: invalid base url: %w", err)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	logHandler := slog.DiscardHandler
	if cfg.LogHandler != nil {
		logHandler = cfg.LogHandler
	}
	return &Client{
		appID:   cfg.ApplicationID,
		token:   cfg.BotToken,
		baseURL: strings.TrimRight(base, "/"),
		http:    hc,
		store:   cfg.Storage,
		ttl:     cfg.DigestTTL,
		log:     slog.New(logHandler).With(slog.String("application_id", cfg.ApplicationID.String())),
	}, nil
}

// PutCommands replaces the application's global commands with cmds.
func (c *Client) PutCommands(ctx context.Context, cmds []command.Command, opts ...PutOption) (Result, error) {
	endpoint := fmt.Sprintf("%s/applications/%s/commands", c.baseURL, c.appID)
	return c.put(ctx, endpoint, storage.WithApplication(c.appID), c.log, cmds, opts)
}

// PutGuildCommands replaces the application's commands in one guild with
// cmds.
func (c *Client) PutGuildCommands(ctx context.Context, guildID discord.Snowflake, cmds []command.Command, opts ...PutOption) (Result, error) {
	if guildID == 0 {
		return Result{}, errors.New("register: guild id is required")
	}
	endpoint := fmt.Sprintf("%s/applications/%s/guilds/%s/commands", c.baseURL, c.appID, guildID)
	log := c.log.With(slog.String("guild_id", guildID.String()))
	return c.put(ctx, endpoint, storage.WithGuild(c.appID, guildID), log, cmds, opts)
}

func (c *Client) put(ctx context.Context, endpoint string, scope storage.Option, log *slog.Logger, cmds []command.Command, opts []PutOption) (Result, error) {
	var po putOptions
	for _, opt := range opts {
		opt(&po)
	}

	body, err := command.EncodeList(cmds)
	if err != nil {
		return Result{}, fmt.Errorf("register: encode commands: %w", err)
	}
	sum := sha256.Sum256(body)
	res := Result{Digest: hex.EncodeToString(sum[:])}

	if c.store != nil && !po.force {
		prev, err := c.store.Get(ctx, digestKey, scope)
		if err != nil {
			// Fall through and PUT.
			log.WarnContext(ctx, "register.digest.read_failed", slog.String("err", err.Error()))
		} else if prev != nil && string(prev.Data) == res.Digest {
			log.InfoContext(ctx, "register.skip.unchanged", slog.Int("commands", len(cmds)), slog.String("digest", res.Digest))
			res.Skipped = true
			return res, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("register: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("register: put %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.ErrorContext(ctx, "register.put.failed", slog.Int("status", resp.StatusCode), slog.Duration("took", time.Since(start)))
		c.forgetDigest(ctx, scope, log)
		return Result{}, &StatusError{StatusCode: resp.StatusCode, Body: string(detail)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	log.InfoContext(ctx, "register.put.ok", slog.Int("status", resp.StatusCode), slog.Int("commands", len(cmds)), slog.Duration("took", time.Since(start)))

	if c.store != nil {
		setOpts := []storage.Option{scope}
		if c.ttl > 0 {
			setOpts = append(setOpts, storage.WithTTL(c.ttl))
		}
		if err := c.store.Set(ctx, digestKey, []byte(res.Digest), setOpts...); err != nil {
			log.WarnContext(ctx, "register.digest.write_failed", slog.String("err", err.Error()))
		}
	}
	return res, nil
}

func (c *Client) forgetDigest(ctx context.Context, scope storage.Option, log *slog.Logger) {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(ctx, scope, storage.WithKey(digestKey)); err != nil {
		log.WarnContext(ctx, "register.digest.delete_failed", slog.String("err", err.Error()))
	}
}
