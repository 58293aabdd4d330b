package runner

import (
	"maps"

	"github.com/yaklabco/wikitok/pkg/wiki"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the parse result. Nil if Error is set.
	Result *wiki.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully parsed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// TokensTotal is the number of tokens issued across all files.
	TokensTotal int

	// TokensByRule maps rule names to token counts.
	TokensByRule map[string]int
}

func newStats() Stats {
	return Stats{TokensByRule: make(map[string]int)}
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors returns true if any file failed.
func (r *Result) HasErrors() bool {
	return r.Stats.FilesErrored > 0
}

// accumulate appends an outcome and updates the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Result == nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.TokensTotal += outcome.Result.TokenCount()
	if outcome.Result.Store != nil {
		for rule, n := range outcome.Result.Store.CountByRule() {
			r.Stats.TokensByRule[rule] += n
		}
	}
}

// RuleCounts returns a copy of the per-rule token counts.
func (r *Result) RuleCounts() map[string]int {
	return maps.Clone(r.Stats.TokensByRule)
}
