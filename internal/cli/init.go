package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/configloader"
	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/fsutil"
	"github.com/yaklabco/wikitok/pkg/wiki"
	"github.com/yaklabco/wikitok/pkg/wiki/rules"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikitok configuration file",
		Long: `Create a new .wikitok.yml configuration file in the current directory.
The template lists every rule, the built-in interwiki sites and the token
store settings with their defaults.

Examples:
  wikitok init                      Create .wikitok.yml
  wikitok init --output custom.yml  Write to a custom file path
  wikitok init --force              Overwrite an existing file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(commandContext(cmd), cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .wikitok.yml)")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("resolve path: %w", err))
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(rules.RuleInfos(wiki.DefaultRegistry))
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'wikitok rules' to see all available rules")

	return nil
}
