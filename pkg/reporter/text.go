package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/wikitok/internal/ui/pretty"
	"github.com/yaklabco/wikitok/pkg/runner"
	"github.com/yaklabco/wikitok/pkg/tokens"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to parse."))
		}
		return 0, nil
	}

	total := 0
	for _, outcome := range result.Files {
		if ctx.Err() != nil {
			return total, fmt.Errorf("report cancelled: %w", ctx.Err())
		}
		total += r.reportFile(outcome)
	}

	if r.opts.ShowSummary {
		r.writeSummary(result.Stats)
	}

	return total, nil
}

func (r *TextReporter) reportFile(outcome runner.FileOutcome) int {
	path := r.styles.FilePath.Render(displayPath(outcome.Path, r.opts.WorkingDir))

	if outcome.Error != nil {
		fmt.Fprintf(r.bw, "%s %s\n", path, r.styles.Error.Render("error: "+outcome.Error.Error()))
		return 0
	}

	res := outcome.Result
	toks := res.Store.Tokens()
	fmt.Fprintf(r.bw, "%s %s\n", path, r.styles.Dim.Render(fmt.Sprintf("(%d tokens)", len(toks))))

	for _, tok := range toks {
		fmt.Fprintf(r.bw, "  %s %s %s\n",
			r.styles.TokenID.Render(fmt.Sprintf("#%d", tok.ID)),
			r.styles.Rule.Render(tok.Rule),
			r.formatAttrs(tok.Attrs),
		)
	}

	if r.opts.ShowText {
		fmt.Fprintln(r.bw, r.styledText(res.Text, res.Store))
	}

	return len(toks)
}

// formatAttrs writes attributes as key=value pairs sorted by key.
func (r *TextReporter) formatAttrs(attrs tokens.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, r.styles.AttrKey.Render(k+"=")+r.styles.AttrVal.Render(fmt.Sprintf("%q", attrs[k])))
	}
	return strings.Join(parts, " ")
}

func (r *TextReporter) styledText(text string, store *tokens.Store) string {
	var b strings.Builder
	for _, seg := range store.Split(text) {
		if seg.IsToken() {
			b.WriteString(r.styles.Placeholder.Render(fmt.Sprintf(displayPlaceholder, seg.TokenID)))
			continue
		}
		b.WriteString(r.styles.Literal.Render(seg.Text))
	}
	return b.String()
}

func (r *TextReporter) writeSummary(stats runner.Stats) {
	line := fmt.Sprintf("%d files parsed, %d tokens", stats.FilesProcessed, stats.TokensTotal)
	if stats.FilesErrored > 0 {
		line += fmt.Sprintf(", %d failed", stats.FilesErrored)
		fmt.Fprintln(r.bw, r.styles.Failure.Render(line))
		return
	}
	fmt.Fprintln(r.bw, r.styles.Success.Render(line))
}
