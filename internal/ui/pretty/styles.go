// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// File header
	FilePath lipgloss.Style
	Error    lipgloss.Style

	// Token components
	TokenID lipgloss.Style
	Rule    lipgloss.Style
	AttrKey lipgloss.Style
	AttrVal lipgloss.Style

	// Tokenized text: placeholders stand out from literal text
	Placeholder lipgloss.Style
	Literal     lipgloss.Style

	// Summary
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TokenID: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Rule:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		AttrKey: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		AttrVal: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Literal:     lipgloss.NewStyle(),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:     plain,
		Error:        plain,
		TokenID:      plain,
		Rule:         plain,
		AttrKey:      plain,
		AttrVal:      plain,
		Placeholder:  plain,
		Literal:      plain,
		SummaryTitle: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
