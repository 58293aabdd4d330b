package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/ui/pretty"
)

// HelpFormatter renders Cobra help and usage text with the output styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.Bold.Render,
		"subcommand": h.styles.Rule.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagsUsage,
		"rpad":       rpad,
		"join":       strings.Join,
		"trimRight":  trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}` + usageTemplate

// flagsUsage dims the type placeholder of each flag line.
func (h *HelpFormatter) flagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles "  -o, --out-dir string   description": flag names
// bold and the type dim. Column alignment is kept.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return line
	}
	flagPart, rest := trimmed[:idx], trimmed[idx:]

	fields := strings.Fields(flagPart)
	for i, field := range fields {
		if strings.HasPrefix(field, "-") {
			name := strings.TrimSuffix(field, ",")
			fields[i] = h.styles.Bold.Render(name) + strings.TrimPrefix(field, name)
		} else {
			fields[i] = h.styles.Dim.Render(field)
		}
	}

	return indent + strings.Join(fields, " ") + rest
}

// ApplyToCommand installs the styled help and usage output on cmd and its
// subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	execute := func(name, text string, w io.Writer, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(w, command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return execute("usage", usageTemplate, command.OutOrStderr(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := execute("help", helpTemplate, command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
