//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/wikitok"
	mainPkg = "./cmd/wikitok"
	rulePkg = "./pkg/wiki/rules/"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"tr": Test.Rules,
	"l":  Lint.Default,
	"c":  Check,
	"bn": Bench.Rules,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/wikitok with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building wikitok...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install installs wikitok to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Smoke renders a sample through the built binary and checks for a link.
func Smoke() error {
	st.Deps(Build)
	sample := "Read [[:en:Go|about Go]] and [[Main Page]]."
	out, err := sh.Output("sh", "-c", fmt.Sprintf("printf %%s %q | %s render -", sample, binary))
	if err != nil {
		return fmt.Errorf("render sample: %w", err)
	}
	if !strings.Contains(out, `href="https://en.wikipedia.org/wiki/Go"`) {
		return fmt.Errorf("unexpected render output: %q", out)
	}
	fmt.Println("✓ render smoke test passed")
	return nil
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "./...", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "./...")
}

// Rules runs only the parse rule and token store tests.
func (Test) Rules() error {
	return gotestsum("testname", rulePkg, "./pkg/tokens/", "./pkg/render/")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs the checks CI requires before merge.
func (CI) Gate() error {
	st.SerialDeps(Lint.FmtCheck, CI.Vet, Build, Test.Default, Smoke)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Vet runs go vet, including the stavefile.
func (CI) Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", "stave", ".")
}

// Rules benchmarks the parse rules.
func (Bench) Rules() error {
	benchtime := cmp.Or(os.Getenv("WIKITOK_BENCHTIME"), "1s")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "-benchtime="+benchtime, rulePkg)
}

// gotestsum runs go test through the gotestsum tool with race detection.
func gotestsum(format string, args ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{
		"tool", "gotestsum", "-f", format, "--",
		"-race", "-p", nCores, "-parallel", nCores,
	}, args...)
	if err := sh.RunV("go", cmdArgs...); err != nil {
		return fmt.Errorf("go test %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
