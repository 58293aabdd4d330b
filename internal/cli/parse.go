package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/reporter"
)

type parseFlags struct {
	runFlags

	format   string
	showText bool
	compact  bool
}

func newParseCommand(info BuildInfo) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Tokenize wiki files and report the issued tokens",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags, info)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.showText, "show-text", false, "include the tokenized text in the report")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

const parseLongDescription = `Tokenize wiki files and report every token issued.

By default, parses all .wiki, .mediawiki and .txt files in the current
directory and subdirectories. When no paths are given and standard input
is not a terminal, the text is read from standard input instead.

Examples:
  wikitok parse                        # Parse current directory
  wikitok parse docs/                  # Parse docs directory
  wikitok parse --show-text page.wiki  # Show the tokenized text
  echo '[[:en:Go]]' | wikitok parse    # Parse standard input
  wikitok parse --format json          # Output as JSON`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags, info BuildInfo) error {
	ctx := commandContext(cmd)

	cliCfg := flags.cliConfig(cmd)
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	result, err := parseInputs(ctx, cmd, args, cfg, workDir, &flags.runFlags)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowText:    flags.showText,
		ShowSummary: true,
		Compact:     flags.compact,
		Version:     info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logging.FromContext(ctx).Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}

	return nil
}
