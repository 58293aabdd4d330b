package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/wikitok/internal/configloader"
	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/runner"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

// stdinArg selects standard input explicitly.
const stdinArg = "-"

// runFlags are shared by the commands that parse wiki sources.
type runFlags struct {
	jobs          int
	ignore        []string
	enable        []string
	disable       []string
	maxTokens     int
	stdinFilename string
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "maximum tokens per file (0 = unlimited)")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "<stdin>", "name reported for standard input")
}

// cliConfig maps explicitly set flags onto a config overlay.
func (f *runFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.Tokens.MaxTokens = f.maxTokens
	}
	return cfg
}

// commandContext returns the command context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the configuration for a command and returns it with
// the working directory used for discovery.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     wiki.DefaultRegistry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", withExitCode(ExitConfigError,
			errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldRender, cfg.Render,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// useStdin reports whether input should come from standard input: either
// "-" was given, or no paths were given and stdin is not a terminal.
func useStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinArg {
		return true
	}
	if len(args) > 0 {
		return false
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return true
}

// parseInputs parses standard input or the files under args.
func parseInputs(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	cfg *config.Config,
	workDir string,
	flags *runFlags,
) (*runner.Result, error) {
	logger := logging.FromContext(ctx)
	wikiRunner := runner.New(wiki.NewEngine(wiki.DefaultRegistry))

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	if useStdin(cmd, args) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, withExitCode(ExitIOError, fmt.Errorf("read stdin: %w", err))
		}
		logger.Debug("parsing standard input", logging.FieldLength, len(content))
		return wikiRunner.RunSource(ctx, flags.stdinFilename, string(content), opts), nil
	}

	logger.Debug("starting parse run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := wikiRunner.Run(ctx, opts)
	if err != nil {
		return nil, withExitCode(ExitIOError, errors.Join(errors.New("parse run failed"), err))
	}
	return result, nil
}
