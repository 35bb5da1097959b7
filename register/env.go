package register

import (
	"fmt"

	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/joeshaw/envdecode"
)

// Env is the process environment understood by the registration tooling.
type Env struct {
	ApplicationID string `env:"DISCORD_APPLICATION_ID,required"`
	BotToken      string `env:"DISCORD_BOT_TOKEN,required"`
	BaseURL       string `env:"DISCORD_API_BASE_URL,default=https://discord.com/api/v10"`

	// GuildID selects guild-scoped registration when set.
	GuildID string `env:"DISCORD_GUILD_ID"`

	// RedisAddr enables the Redis digest store when set.
	RedisAddr string `env:"REDIS_ADDR"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envdecode.Decode(&env); err != nil {
		return Env{}, fmt.Errorf("register: load environment: %w", err)
	}
	return env, nil
}

// Config converts env into a Config. Storage, HTTPClient and LogHandler are
// left for the caller.
func (env Env) Config() (Config, error) {
	appID, err := discord.ParseSnowflake(env.ApplicationID)
	if err != nil {
		return Config{}, fmt.Errorf("register: DISCORD_APPLICATION_ID: %w", err)
	}
	return Config{
		ApplicationID: appID,
		BotToken:      env.BotToken,
		BaseURL:       env.BaseURL,
	}, nil
}

// Guild parses GuildID. ok is false when it is unset.
func (env Env) Guild() (id discord.Snowflake, ok bool, err error) {
	if env.GuildID == "" {
		return 0, false, nil
	}
	id, err = discord.ParseSnowflake(env.GuildID)
	if err != nil {
		return 0, false, fmt.Errorf("register: DISCORD_GUILD_ID: %w", err)
	}
	return id, true, nil
}
