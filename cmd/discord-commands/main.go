// Command discord-commands validates command manifests and registers them
// with the platform.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	manifestPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "discord-commands",
	Short: "Validate and register Discord application commands",
	Long: `discord-commands manages an application's commands from a YAML manifest.

  discord-commands validate            # check the manifest
  discord-commands schema              # print the JSON Schema of the payload
  discord-commands register            # push the commands globally
  discord-commands register --guild 1  # push to one guild
  discord-commands register --watch    # re-push whenever the manifest changes

register reads DISCORD_APPLICATION_ID and DISCORD_BOT_TOKEN from the
environment, plus the optional DISCORD_API_BASE_URL, DISCORD_GUILD_ID and
REDIS_ADDR.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "file", "f", "commands.yaml", "command manifest path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func logHandler() slog.Handler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
