// Package render resolves placeholder tokens in tokenized wiki text back
// into output markup.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/tokens"
)

// ErrUnknownRule is returned when a renderer has no handler for a token's rule.
var ErrUnknownRule = errors.New("no renderer for rule")

// ErrUnknownTarget is returned by New for an unsupported render target.
var ErrUnknownTarget = errors.New("unknown render target")

// Renderer turns tokens and literal text into output markup.
type Renderer interface {
	// Token renders a single token.
	Token(tok tokens.Token) (string, error)

	// Literal renders text that is not part of any token.
	Literal(text string) string
}

// New creates the renderer for target configured from cfg.
func New(target config.RenderTarget, cfg *config.Config) (Renderer, error) {
	var interwiki config.InterwikiConfig
	if cfg != nil {
		interwiki = cfg.Interwiki
	}

	switch target {
	case config.RenderXHTML, "":
		return NewXHTML(interwiki), nil
	case config.RenderPlain:
		return NewPlain(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

// Resolve replaces every placeholder in text with the rendered token and
// renders the literal text between them.
func Resolve(text string, store *tokens.Store, renderer Renderer) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	for _, seg := range store.Split(text) {
		if !seg.IsToken() {
			out.WriteString(renderer.Literal(seg.Text))
			continue
		}

		tok, _ := store.Get(seg.TokenID)
		rendered, err := renderer.Token(tok)
		if err != nil {
			return "", fmt.Errorf("render token %d: %w", tok.ID, err)
		}
		out.WriteString(rendered)
	}

	return out.String(), nil
}
