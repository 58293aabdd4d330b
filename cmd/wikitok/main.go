// Package main is the entry point for the wikitok CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/wikitok/internal/cli"
	"github.com/yaklabco/wikitok/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/wikitok/pkg/wiki/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Per-file failures were already reported.
		if !errors.Is(err, cli.ErrFilesFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
