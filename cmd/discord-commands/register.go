package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/ggoodman/discord-interactions-go/internal/manifest"
	"github.com/ggoodman/discord-interactions-go/register"
	"github.com/ggoodman/discord-interactions-go/storage"
	"github.com/ggoodman/discord-interactions-go/storage/memory"
	redisstore "github.com/ggoodman/discord-interactions-go/storage/redis"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	registerGuild    string
	registerForce    bool
	registerWatch    bool
	registerDebounce time.Duration
	registerTTL      time.Duration
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Replace the application's commands with the manifest",
	Long: `register PUTs every command in the manifest to the bulk-overwrite
endpoint, removing commands that are no longer listed.

The digest of each pushed payload is remembered (in Redis when REDIS_ADDR is
set, otherwise for the life of the process) and an unchanged manifest is not
pushed again unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerGuild, "guild", "", "register to this guild instead of globally (default $DISCORD_GUILD_ID)")
	registerCmd.Flags().BoolVar(&registerForce, "force", false, "push even when the manifest is unchanged")
	registerCmd.Flags().BoolVar(&registerWatch, "watch", false, "keep running and re-register when the manifest changes")
	registerCmd.Flags().DurationVar(&registerDebounce, "debounce", 500*time.Millisecond, "quiet period before a change is pushed in --watch mode")
	registerCmd.Flags().DurationVar(&registerTTL, "digest-ttl", 0, "forget a pushed digest after this long so an unchanged manifest is pushed again (0 keeps it)")
}

type registrar struct {
	client *register.Client
	guild  discord.Snowflake
	force  bool
	out    io.Writer
	log    *slog.Logger
}

func (r *registrar) push(ctx context.Context, cmds []command.Command) error {
	var opts []register.PutOption
	if r.force {
		opts = append(opts, register.Force())
	}

	var (
		res register.Result
		err error
	)
	if r.guild != 0 {
		res, err = r.client.PutGuildCommands(ctx, r.guild, cmds, opts...)
	} else {
		res, err = r.client.PutCommands(ctx, cmds, opts...)
	}
	if err != nil {
		return err
	}

	scope := "globally"
	if r.guild != 0 {
		scope = "to guild " + r.guild.String()
	}
	if res.Skipped {
		fmt.Fprintf(r.out, "%d command(s) unchanged %s (sha256 %s)\n", len(cmds), scope, res.Digest[:12])
	} else {
		fmt.Fprintf(r.out, "registered %d command(s) %s (sha256 %s)\n", len(cmds), scope, res.Digest[:12])
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := register.LoadEnv()
	if err != nil {
		return err
	}
	cfg, err := env.Config()
	if err != nil {
		return err
	}

	guild, _, err := env.Guild()
	if err != nil {
		return err
	}
	if registerGuild != "" {
		if guild, err = discord.ParseSnowflake(registerGuild); err != nil {
			return fmt.Errorf("--guild: %w", err)
		}
	}

	store, err := openStore(env)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg.Storage = store
	cfg.DigestTTL = registerTTL
	cfg.LogHandler = logHandler()
	client, err := register.NewClient(cfg)
	if err != nil {
		return err
	}

	r := &registrar{
		client: client,
		guild:  guild,
		force:  registerForce,
		out:    cmd.OutOrStdout(),
		log:    slog.New(cfg.LogHandler),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmds, err := manifest.LoadFile(manifestPath)
	if err != nil {
		return err
	}
	if err := r.push(ctx, cmds); err != nil {
		return err
	}
	if !registerWatch {
		return nil
	}

	// Later pushes in watch mode honour the digest even with --force.
	r.force = false
	fmt.Fprintf(r.out, "watching %s\n", manifestPath)
	return manifest.Watch(ctx, manifestPath, registerDebounce, func(ctx context.Context, cmds []command.Command, err error) {
		if err != nil {
			r.log.ErrorContext(ctx, "manifest.reload.failed", slog.String("err", err.Error()))
			return
		}
		if err := r.push(ctx, cmds); err != nil {
			r.log.ErrorContext(ctx, "register.failed", slog.String("err", err.Error()))
		}
	})
}

func openStore(env register.Env) (storage.Storage, error) {
	if env.RedisAddr == "" {
		return memory.New(memory.Config{MaxItems: 64})
	}
	client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", env.RedisAddr, err)
	}
	return redisstore.New(redisstore.Config{Client: client})
}
