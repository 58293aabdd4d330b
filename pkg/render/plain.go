package render

import (
	"fmt"

	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki/rules"
)

// Plain renders tokens as their display text.
type Plain struct{}

// NewPlain creates a plain text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Token renders an interwiki token as its text.
func (p *Plain) Token(tok tokens.Token) (string, error) {
	switch tok.Rule {
	case rules.InterwikiRuleName:
		return tok.Attrs[rules.AttrText], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownRule, tok.Rule)
	}
}

// Literal returns text unchanged.
func (p *Plain) Literal(text string) string {
	return text
}
