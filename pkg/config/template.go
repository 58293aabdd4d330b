package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the wiki package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// GenerateTemplate creates a commented YAML configuration file template.
// When provider is nil the rules section is left empty.
func GenerateTemplate(provider RuleInfoProvider) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# wikitok configuration\n\n")

	buf.WriteString("# Per-rule settings, keyed by rule ID or name.\n")
	var infos []RuleInfo
	if provider != nil {
		infos = provider()
	}
	if len(infos) == 0 {
		buf.WriteString("rules: {}\n")
	} else {
		buf.WriteString("rules:\n")
		slices.SortFunc(infos, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
		for _, info := range infos {
			fmt.Fprintf(&buf, "  # %s (%s): %s\n", info.ID, info.Name, info.Description)
			fmt.Fprintf(&buf, "  %s:\n", info.Name)
			fmt.Fprintf(&buf, "    enabled: %t\n", info.Enabled)
		}
	}

	buf.WriteString("\n# Interwiki rendering. \"%s\" in a site pattern is replaced by the page.\n")
	buf.WriteString("interwiki:\n")
	buf.WriteString("  sites:\n")
	sites := DefaultSites()
	keys := make([]string, 0, len(sites))
	for key := range sites {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&buf, "    %s: %q\n", key, sites[key])
	}
	buf.WriteString("  target: \"\"\n")
	buf.WriteString("  css_class: \"\"\n")

	buf.WriteString("\n# Token store limits. max_tokens: 0 means unlimited.\n")
	buf.WriteString("tokens:\n")
	buf.WriteString("  max_tokens: 0\n")

	buf.WriteString("\n# Files to skip and extensions to parse.\n")
	buf.WriteString("ignore: []\n")
	buf.WriteString("extensions:\n")
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %s\n", ext)
	}

	return buf.Bytes(), nil
}
