package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/fsutil"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

// Runner parses many files with a shared engine. Every file gets its own
// source buffer and token store.
type Runner struct {
	// Engine runs the parse rules.
	Engine *wiki.Engine
}

// New creates a new Runner with the given engine.
func New(engine *wiki.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Per-file failures are recorded on the outcome; only discovery errors and
// cancellation are returned as errors. Outcomes are in discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("files discovered", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processFile(groupCtx, path, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
	)

	return result, nil
}

// processFile reads and parses a single file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	parsed, err := r.Engine.ParseText(ctx, path, string(content), opts.Config)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Result = parsed
	return outcome
}

// RunSource parses in-memory text, such as standard input, as a
// single-file run.
func (r *Runner) RunSource(ctx context.Context, path, text string, opts Options) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, 1),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = 1

	outcome := FileOutcome{Path: path}
	parsed, err := r.Engine.ParseText(ctx, path, text, opts.Config)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = parsed
	}

	result.accumulate(outcome)
	return result
}
