package configloader

import (
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "interwiki.sites.en").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownRenderTargets = map[config.RenderTarget]bool{
	config.RenderXHTML: true,
	config.RenderPlain: true,
}

// Validate checks a configuration for errors and warnings. Rule keys are
// checked against registry; a nil registry skips that check.
func Validate(cfg *config.Config, registry *wiki.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format))
	}

	if cfg.Render != "" && !knownRenderTargets[cfg.Render] {
		result.addError("render", cfg.Render,
			fmt.Sprintf("invalid render target %q; must be one of: xhtml, plain", cfg.Render))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateTokens(cfg, result)
	validateSites(cfg, result)
	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, msg string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: msg})
}

func (r *ValidationResult) addWarning(field string, value any, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: msg})
}

func validateTokens(cfg *config.Config, result *ValidationResult) {
	if cfg.Tokens.MaxTokens < 0 {
		result.addError("tokens.max_tokens", cfg.Tokens.MaxTokens, "max_tokens must be >= 0 (0 means unlimited)")
	}

	if err := tokens.CheckDelimiter(cfg.Tokens.Delimiter); err != nil {
		result.addError("tokens.delimiter", cfg.Tokens.Delimiter, err.Error())
	}
}

// validateSites checks interwiki site keys and URL patterns.
func validateSites(cfg *config.Config, result *ValidationResult) {
	sites := slices.Sorted(maps.Keys(cfg.Interwiki.Sites))

	for _, site := range sites {
		pattern := cfg.Interwiki.Sites[site]
		field := "interwiki.sites." + site

		if strings.Contains(site, ":") {
			result.addWarning(field, site, "site names containing ':' can never match a link")
		}

		if n := strings.Count(pattern, "%s"); n > 1 {
			result.addError(field, pattern, "URL pattern may contain at most one %s")
			continue
		}

		if _, err := url.Parse(strings.Replace(pattern, "%s", "page", 1)); err != nil {
			result.addError(field, pattern, fmt.Sprintf("invalid URL pattern: %v", err))
		}
	}
}

func validateRules(cfg *config.Config, registry *wiki.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}

	for _, ruleID := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if _, exists := registry.Get(ruleID); !exists {
			result.addWarning("rules."+ruleID, ruleID, fmt.Sprintf("unknown rule %q; it will be ignored", ruleID))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile with the same
// glob syntax the runner uses.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, fmt.Sprintf("extension %q must start with '.'", ext))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *wiki.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
