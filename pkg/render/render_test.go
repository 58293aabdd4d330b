package render_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/render"
	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki"
	"github.com/yaklabco/wikitok/pkg/wiki/rules"
)

// parse tokenizes input with the built-in rules.
func parse(t *testing.T, input string, cfg *config.Config) *wiki.Result {
	t.Helper()

	reg := wiki.NewRegistry()
	rules.RegisterAll(reg)

	result, err := wiki.NewEngine(reg).ParseText(context.Background(), "test.wiki", input, cfg)
	require.NoError(t, err)
	return result
}

func TestResolve_XHTML(t *testing.T) {
	cfg := config.NewConfig()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "local link",
			input: "See [[Main Page]].",
			want:  `See <a href="/wiki/Main%20Page">Main Page</a>.`,
		},
		{
			name:  "described namespaced link",
			input: "[[:en:Go|the Go language]]",
			want:  `<a href="https://en.wikipedia.org/wiki/Go">the Go language</a>`,
		},
		{
			name:  "unknown site renders text",
			input: "[[:xx:Page|Shown]]",
			want:  `Shown`,
		},
		{
			name:  "literal text is escaped",
			input: "a < b & [[Page]]",
			want:  `a &lt; b &amp; <a href="/wiki/Page">Page</a>`,
		},
		{
			name:  "unmatched markup stays literal",
			input: "[[Page]]s",
			want:  "[[Page]]s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parse(t, tt.input, cfg)
			renderer, err := render.New(config.RenderXHTML, cfg)
			require.NoError(t, err)

			got, err := render.Resolve(result.Text, result.Store, renderer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_XHTMLAttributes(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Interwiki.Target = "_blank"
	cfg.Interwiki.CSSClass = "iw"
	cfg.Interwiki.Sites["meta"] = "https://meta.example.org/page?title="

	result := parse(t, "[[:meta:Help Desk]]", cfg)
	renderer, err := render.New(config.RenderXHTML, cfg)
	require.NoError(t, err)

	got, err := render.Resolve(result.Text, result.Store, renderer)
	require.NoError(t, err)
	assert.Equal(t,
		`<a class="iw" href="https://meta.example.org/page?title=Help%20Desk" target="_blank">Help Desk</a>`,
		got)
}

func TestResolve_Plain(t *testing.T) {
	result := parse(t, "Go to [[Home]] or [[:en:Go|Go]].", nil)
	renderer, err := render.New(config.RenderPlain, nil)
	require.NoError(t, err)

	got, err := render.Resolve(result.Text, result.Store, renderer)
	require.NoError(t, err)
	assert.Equal(t, "Go to Home or Go.", got)
}

func TestResolve_StrayDelimiter(t *testing.T) {
	t.Run("default delimiter", func(t *testing.T) {
		cfg := config.NewConfig()
		result := parse(t, "caf\xFF [[Page]] and [[Home]]", cfg)
		renderer, err := render.New(config.RenderXHTML, cfg)
		require.NoError(t, err)

		got, err := render.Resolve(result.Text, result.Store, renderer)
		require.NoError(t, err)
		assert.Equal(t,
			"caf\xFF <a href=\"/wiki/Page\">Page</a> and <a href=\"/wiki/Home\">Home</a>", got)
	})

	t.Run("configured delimiter in text", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Tokens.Delimiter = "@"
		result := parse(t, "mail a@b or [[Home]]", cfg)

		got, err := render.Resolve(result.Text, result.Store, render.NewPlain())
		require.NoError(t, err)
		assert.Equal(t, "mail a@b or Home", got)
	})
}

func TestResolve_UnknownRule(t *testing.T) {
	store := tokens.NewStore(tokens.Options{})
	placeholder, err := store.Issue("table", nil)
	require.NoError(t, err)

	for _, renderer := range []render.Renderer{render.NewPlain(), render.NewXHTML(config.InterwikiConfig{})} {
		_, err = render.Resolve("x"+placeholder, store, renderer)
		require.ErrorIs(t, err, render.ErrUnknownRule)
	}
}

func TestNew_UnknownTarget(t *testing.T) {
	_, err := render.New(config.RenderTarget("pdf"), nil)
	require.ErrorIs(t, err, render.ErrUnknownTarget)

	renderer, err := render.New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &render.XHTML{}, renderer)
}

func TestSiteURL(t *testing.T) {
	tests := []struct {
		pattern string
		page    string
		want    string
	}{
		{"/wiki/%s", "Page", "/wiki/Page"},
		{"/wiki/%s/history", "A B", "/wiki/A%20B/history"},
		{"https://example.org/?p=", "a/b", "https://example.org/?p=a%2Fb"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.SiteURL(tt.pattern, tt.page))
	}
}
