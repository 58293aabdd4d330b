package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wikitok/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path   string      `json:"path"`
	Text   string      `json:"text,omitempty"`
	Tokens []JSONToken `json:"tokens"`
	Error  string      `json:"error,omitempty"`
}

// JSONToken represents a single issued token.
type JSONToken struct {
	ID    int               `json:"id"`
	Rule  string            `json:"rule"`
	Attrs map[string]string `json:"attrs"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesErrored    int            `json:"filesErrored"`
	TokensTotal     int            `json:"tokensTotal"`
	TokensByRule    map[string]int `json:"tokensByRule"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{
		Version: r.opts.Version,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{TokensByRule: map[string]int{}},
	}

	total := 0
	if result != nil {
		for _, outcome := range result.Files {
			file := r.fileResult(outcome)
			total += len(file.Tokens)
			output.Files = append(output.Files, file)
		}
		output.Summary = JSONSummary{
			FilesDiscovered: result.Stats.FilesDiscovered,
			FilesProcessed:  result.Stats.FilesProcessed,
			FilesErrored:    result.Stats.FilesErrored,
			TokensTotal:     result.Stats.TokensTotal,
			TokensByRule:    result.RuleCounts(),
		}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}

	return total, nil
}

func (r *JSONReporter) fileResult(outcome runner.FileOutcome) JSONFileResult {
	file := JSONFileResult{
		Path:   displayPath(outcome.Path, r.opts.WorkingDir),
		Tokens: []JSONToken{},
	}

	if outcome.Error != nil {
		file.Error = outcome.Error.Error()
		return file
	}

	res := outcome.Result
	for _, tok := range res.Store.Tokens() {
		file.Tokens = append(file.Tokens, JSONToken{
			ID:    tok.ID,
			Rule:  tok.Rule,
			Attrs: tok.Attrs,
		})
	}
	if r.opts.ShowText {
		file.Text = DisplayText(res.Text, res.Store)
	}
	return file
}
