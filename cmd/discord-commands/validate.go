package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/ggoodman/discord-interactions-go/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest and print the command tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := manifest.LoadFile(manifestPath)
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), cmds)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d command(s) valid\n", manifestPath, len(cmds))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func printTree(w io.Writer, cmds []command.Command) {
	for _, c := range cmds {
		fmt.Fprintf(w, "%s (%s)\n", c.Name(), c.Kind())
		printOptions(w, c.Options(), 1)
	}
}

func printOptions(w io.Writer, opts []command.Option, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, o := range opts {
		var flags []string
		if o.Required() {
			flags = append(flags, "required")
		}
		if o.Autocomplete() {
			flags = append(flags, "autocomplete")
		}
		if n := len(o.Choices()); n > 0 {
			flags = append(flags, fmt.Sprintf("%d choices", n))
		}
		line := fmt.Sprintf("%s%s: %s", indent, o.Name(), o.Kind())
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
		printOptions(w, o.Options(), depth+1)
	}
}
