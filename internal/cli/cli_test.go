package cli_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/wikitok/internal/cli"
	_ "github.com/yaklabco/wikitok/pkg/wiki/rules" // Register built-in rules
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "wikitok" {
		t.Errorf("expected Use to be 'wikitok', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "render", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	for _, flagName := range []string{
		"format", "jobs", "ignore", "enable", "disable",
		"max-tokens", "stdin-filename", "show-text", "compact",
	} {
		if parseCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on parse command", flagName)
		}
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	renderCmd, _, err := cmd.Find([]string{"render"})
	if err != nil {
		t.Fatalf("render command not found: %v", err)
	}

	for _, flagName := range []string{"to", "out-dir", "jobs", "ignore", "max-tokens"} {
		if renderCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on render command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) || !bytes.Contains(out.Bytes(), []byte("abc123")) {
		t.Errorf("expected version and commit in output, got %q", out.String())
	}
}

func TestHelpIsStyledWithoutColor(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"render", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	help := out.String()
	for _, want := range []string{"Usage:", "Flags:", "Global Flags:", "--out-dir string", "render target"} {
		if !bytes.Contains([]byte(help), []byte(want)) {
			t.Errorf("expected %q in help output:\n%s", want, help)
		}
	}
}
