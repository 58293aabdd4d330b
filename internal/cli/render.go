package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/fsutil"
	"github.com/yaklabco/wikitok/pkg/render"
	"github.com/yaklabco/wikitok/pkg/runner"
)

// outputDirPermissions is the mode for directories created under --out-dir.
const outputDirPermissions = 0o755

type renderFlags struct {
	runFlags

	to     string
	outDir string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render wiki files with interwiki links resolved",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().StringVar(&flags.to, "to", "xhtml", "render target: xhtml, plain")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "",
		"write one output file per input under this directory instead of stdout")

	return cmd
}

const renderLongDescription = `Tokenize wiki files, then resolve every token into output markup.

The xhtml target turns interwiki links into anchors using the site URL
patterns from the interwiki.sites configuration. The plain target keeps
only the display text of each link.

Examples:
  wikitok render page.wiki                     # Print XHTML to stdout
  wikitok render --to plain page.wiki          # Print plain text
  wikitok render --out-dir build/ docs/        # Write build/**/*.html
  cat page.wiki | wikitok render --to plain    # Render standard input`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := flags.cliConfig(cmd)
	if cmd.Flags().Changed("to") {
		cliCfg.Render = config.RenderTarget(flags.to)
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Render, cfg)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	result, err := parseInputs(ctx, cmd, args, cfg, workDir, &flags.runFlags)
	if err != nil {
		return err
	}

	failed := false
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("parse failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			failed = true
			continue
		}

		out, err := render.Resolve(outcome.Result.Text, outcome.Result.Store, renderer)
		if err != nil {
			logger.Error("render failed", logging.FieldPath, outcome.Path, logging.FieldError, err)
			failed = true
			continue
		}

		if err := writeRendered(ctx, cmd.OutOrStdout(), flags.outDir, workDir, outcome, cfg.Render, out); err != nil {
			return withExitCode(ExitIOError, err)
		}
	}

	if failed {
		return ErrFilesFailed
	}
	return nil
}

// writeRendered writes one rendered file to w, or under outDir when set.
func writeRendered(
	ctx context.Context,
	w io.Writer,
	outDir, workDir string,
	outcome runner.FileOutcome,
	target config.RenderTarget,
	out string,
) error {
	if outDir == "" {
		if _, err := io.WriteString(w, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	dest := OutputPath(outDir, workDir, outcome.Path, target)
	if err := os.MkdirAll(filepath.Dir(dest), outputDirPermissions); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, dest, []byte(out), fsutil.DefaultFileMode)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s", dest), err)
	}

	logging.FromContext(ctx).Debug("rendered",
		logging.FieldPath, outcome.Path,
		logging.FieldOutput, dest,
		"changed", written,
	)
	return nil
}

// OutputPath maps a source path to its rendered file under outDir. The path
// relative to workDir is kept; sources outside workDir keep only their base
// name, and a pseudo-name like "<stdin>" loses its brackets. The extension
// becomes .html for xhtml and .txt for plain.
func OutputPath(outDir, workDir, source string, target config.RenderTarget) string {
	rel := strings.Trim(filepath.Base(source), "<>")
	if workDir != "" {
		if r, err := filepath.Rel(workDir, source); err == nil && !strings.HasPrefix(r, "..") && !filepath.IsAbs(r) {
			rel = r
		}
	}

	ext := ".html"
	if target == config.RenderPlain {
		ext = ".txt"
	}

	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext)
}
