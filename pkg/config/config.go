// Package config defines core configuration types for wikitok.
// These types are pure data structures with no dependency on the loader.
package config

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled *bool          `yaml:"enabled"`
	Options map[string]any `yaml:"options"`
}

// InterwikiConfig controls how interwiki tokens are rendered.
type InterwikiConfig struct {
	// Sites maps a site key to a URL pattern. A "%s" in the pattern is
	// replaced with the escaped page name; otherwise the page is appended.
	Sites map[string]string `yaml:"sites"`

	// Target is an optional link target attribute (e.g., "_blank").
	Target string `yaml:"target"`

	// CSSClass is an optional class attribute for rendered links.
	CSSClass string `yaml:"css_class"`
}

// TokenConfig controls the token store.
type TokenConfig struct {
	// Delimiter wraps token IDs in placeholders. Empty uses the store default.
	Delimiter string `yaml:"delimiter"`

	// MaxTokens limits tokens per file; 0 means unlimited.
	MaxTokens int `yaml:"max_tokens"`
}

// OutputFormat specifies the output format for parse reports.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RenderTarget specifies the markup produced by the render stage.
type RenderTarget string

const (
	RenderXHTML RenderTarget = "xhtml"
	RenderPlain RenderTarget = "plain"
)

// Config is the root configuration structure for wikitok.
type Config struct {
	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Interwiki configures interwiki rendering.
	Interwiki InterwikiConfig `yaml:"interwiki"`

	// Tokens configures the token store.
	Tokens TokenConfig `yaml:"tokens"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Extensions lists the file extensions treated as wiki source.
	Extensions []string `yaml:"extensions"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`

	// Render specifies the render target.
	Render RenderTarget `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// DefaultExtensions returns the default set of wiki source extensions.
func DefaultExtensions() []string {
	return []string{".wiki", ".mediawiki", ".txt"}
}

// DefaultSites returns the built-in interwiki site map.
func DefaultSites() map[string]string {
	return map[string]string{
		"local": "/wiki/%s",
		"en":    "https://en.wikipedia.org/wiki/%s",
		"de":    "https://de.wikipedia.org/wiki/%s",
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Interwiki: InterwikiConfig{
			Sites: DefaultSites(),
		},
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Render:     RenderXHTML,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
