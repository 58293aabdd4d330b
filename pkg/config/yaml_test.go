package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikitok/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		enabled := true
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"WK001": {
					Enabled: &enabled,
					Options: map[string]any{"join_overflow": true},
				},
			},
		}

		clone := original.Clone()
		require.Contains(t, clone.Rules, "WK001")
		assert.True(t, *clone.Rules["WK001"].Enabled)

		*clone.Rules["WK001"].Enabled = false
		clone.Rules["WK001"].Options["join_overflow"] = false

		assert.True(t, *original.Rules["WK001"].Enabled)
		assert.Equal(t, true, original.Rules["WK001"].Options["join_overflow"])
	})

	t.Run("deep copies sites and slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"drafts/**"}

		clone := original.Clone()
		clone.Interwiki.Sites["local"] = "/changed/%s"
		clone.Ignore[0] = "other"
		clone.Extensions[0] = ".other"

		assert.Equal(t, "/wiki/%s", original.Interwiki.Sites["local"])
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, ".wiki", original.Extensions[0])
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		original := &config.Config{
			Format:      config.FormatJSON,
			Render:      config.RenderPlain,
			Jobs:        4,
			EnableRules: []string{"WK001"},
		}

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, config.RenderPlain, clone.Render)
		assert.Equal(t, 4, clone.Jobs)
		assert.Equal(t, []string{"WK001"}, clone.EnableRules)
	})
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
rules:
  interwiki:
    enabled: false
    options:
      join_overflow: true
interwiki:
  sites:
    meta: "https://meta.example.org/%s"
  target: _blank
tokens:
  max_tokens: 100
ignore:
  - "drafts/**"
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	require.Contains(t, cfg.Rules, "interwiki")
	require.NotNil(t, cfg.Rules["interwiki"].Enabled)
	assert.False(t, *cfg.Rules["interwiki"].Enabled)
	assert.Equal(t, true, cfg.Rules["interwiki"].Options["join_overflow"])
	assert.Equal(t, "https://meta.example.org/%s", cfg.Interwiki.Sites["meta"])
	assert.Equal(t, "_blank", cfg.Interwiki.Target)
	assert.Equal(t, 100, cfg.Tokens.MaxTokens)
	assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
}

func TestFromYAML_InitializesRules(t *testing.T) {
	cfg, err := config.FromYAML([]byte("ignore: []\n"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Rules)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)
}

func TestToYAML_SkipsCLIFields(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Jobs = 8
	cfg.Format = config.FormatJSON

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "interwiki:")
	assert.NotContains(t, out, "jobs")
	assert.NotContains(t, out, "format")

	var nilCfg *config.Config
	data, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		format config.RuleFormat
		name   string
		want   string
	}{
		{config.RuleFormatName, "interwiki", "interwiki"},
		{config.RuleFormatID, "interwiki", "WK001"},
		{config.RuleFormatCombined, "interwiki", "WK001/interwiki"},
		{config.RuleFormat("bogus"), "interwiki", "interwiki"},
		{config.RuleFormatName, "", "WK001"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, config.FormatRuleID(tt.format, "WK001", tt.name))
	}
}

func TestGenerateTemplate(t *testing.T) {
	provider := func() []config.RuleInfo {
		return []config.RuleInfo{
			{ID: "WK001", Name: "interwiki", Description: "Interwiki links", Enabled: true},
		}
	}

	content, err := config.GenerateTemplate(provider)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err, "template must be valid YAML")

	require.Contains(t, cfg.Rules, "interwiki")
	assert.True(t, *cfg.Rules["interwiki"].Enabled)
	assert.Equal(t, config.DefaultSites(), cfg.Interwiki.Sites)
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
}

func TestGenerateTemplate_NoRules(t *testing.T) {
	content, err := config.GenerateTemplate(nil)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
}
