package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikitok/pkg/reporter"
	"github.com/yaklabco/wikitok/pkg/runner"
	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

// sampleResult builds a run with one parsed file and one failed file.
func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	store := tokens.NewStore(tokens.Options{Delimiter: "@"})
	first, err := store.Issue("interwiki", tokens.Attributes{"site": "en", "page": "Go", "text": "the language"})
	require.NoError(t, err)
	second, err := store.Issue("interwiki", tokens.Attributes{"site": "local", "page": "Home", "text": "Home"})
	require.NoError(t, err)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/docs/a.wiki",
				Result: &wiki.Result{
					Path:  "/work/docs/a.wiki",
					Text:  "Read " + first + " then " + second + ".",
					Store: store,
				},
			},
			{Path: "/work/docs/b.wiki", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2,
			FilesProcessed:  1,
			FilesErrored:    1,
			TokensTotal:     2,
			TokensByRule:    map[string]int{"interwiki": 2},
		},
	}
}

func TestTextReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatText,
		Color:       "never",
		ShowText:    true,
		ShowSummary: true,
		WorkingDir:  "/work",
	})
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Contains(t, out, "docs/a.wiki (2 tokens)")
	assert.Contains(t, out, `#0 interwiki page="Go" site="en" text="the language"`)
	assert.Contains(t, out, `#1 interwiki page="Home" site="local" text="Home"`)
	assert.Contains(t, out, "Read {{#0}} then {{#1}}.")
	assert.Contains(t, out, "docs/b.wiki error: permission denied")
	assert.Contains(t, out, "1 files parsed, 2 tokens, 1 failed")
	assert.NotContains(t, out, "/work/")
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	n, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "No files to parse.")
}

func TestTextReporter_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rep.Report(ctx, sampleResult(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:     &buf,
		Format:     reporter.FormatJSON,
		ShowText:   true,
		Version:    "1.2.3",
		WorkingDir: "/work",
	})
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.2.3", out.Version)
	require.Len(t, out.Files, 2)

	parsed := out.Files[0]
	assert.Equal(t, "docs/a.wiki", parsed.Path)
	assert.Equal(t, "Read {{#0}} then {{#1}}.", parsed.Text)
	require.Len(t, parsed.Tokens, 2)
	assert.Equal(t, 0, parsed.Tokens[0].ID)
	assert.Equal(t, "interwiki", parsed.Tokens[0].Rule)
	assert.Equal(t, map[string]string{"site": "en", "page": "Go", "text": "the language"}, parsed.Tokens[0].Attrs)

	failed := out.Files[1]
	assert.Equal(t, "permission denied", failed.Error)
	assert.Empty(t, failed.Tokens)

	assert.Equal(t, 2, out.Summary.FilesDiscovered)
	assert.Equal(t, 1, out.Summary.FilesErrored)
	assert.Equal(t, map[string]int{"interwiki": 2}, out.Summary.TokensByRule)
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true, Version: "dev"})

	n, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.JSONEq(t,
		`{"version":"dev","files":[],"summary":{"filesDiscovered":0,"filesProcessed":0,"filesErrored":0,"tokensTotal":0,"tokensByRule":{}}}`,
		buf.String())
}

func TestDisplayText(t *testing.T) {
	store := tokens.NewStore(tokens.Options{Delimiter: "@"})
	ph, err := store.Issue("interwiki", tokens.Attributes{"site": "en", "page": "X", "text": "X"})
	require.NoError(t, err)

	assert.Equal(t, "a {{#0}} b", reporter.DisplayText("a "+ph+" b", store))
	assert.Equal(t, "@7@ unknown", reporter.DisplayText("@7@ unknown", store))
	assert.Equal(t, "raw", reporter.DisplayText("raw", nil))
}
