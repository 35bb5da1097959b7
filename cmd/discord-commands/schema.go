package main

import (
	"encoding/json"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of one registered command",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(command.PayloadSchema())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
