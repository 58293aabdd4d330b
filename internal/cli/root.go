// Package cli provides the Cobra command structure for wikitok.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root wikitok command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "wikitok",
		Short: "Tokenize interwiki links in wiki markup",
		Long: `wikitok finds interwiki links in wiki markup and replaces each one with
an opaque placeholder token, keeping the site, page and display text of the
link in a token store.

The tokenized text can be inspected with "wikitok parse" or turned back into
XHTML links or plain text with "wikitok render".`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand(info))
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
