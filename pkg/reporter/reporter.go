// Package reporter writes parse results in human and machine readable form.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/wikitok/pkg/runner"
	"github.com/yaklabco/wikitok/pkg/tokens"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// displayPlaceholder shows a placeholder in reported text. Raw placeholders
// contain delimiter bytes that are not printable.
const displayPlaceholder = "{{#%d}}"

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of tokens reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Color == "" {
		opts.Color = defaults.Color
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// DisplayText replaces the placeholders in text with printable markers.
func DisplayText(text string, store *tokens.Store) string {
	if store == nil {
		return text
	}

	var b strings.Builder
	for _, seg := range store.Split(text) {
		if seg.IsToken() {
			fmt.Fprintf(&b, displayPlaceholder, seg.TokenID)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
