package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki/rules"
)

// XHTML renders tokens as XHTML markup.
type XHTML struct {
	sites    map[string]string
	target   string
	cssClass string
}

// NewXHTML creates an XHTML renderer using the interwiki site map in cfg.
func NewXHTML(cfg config.InterwikiConfig) *XHTML {
	return &XHTML{
		sites:    cfg.Sites,
		target:   cfg.Target,
		cssClass: cfg.CSSClass,
	}
}

// Token renders a token as an anchor.
func (x *XHTML) Token(tok tokens.Token) (string, error) {
	switch tok.Rule {
	case rules.InterwikiRuleName:
		return x.interwiki(tok.Attrs), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownRule, tok.Rule)
	}
}

// Literal escapes text for inclusion in XHTML.
func (x *XHTML) Literal(text string) string {
	return escape(text)
}

// interwiki renders a link to page on site. Links to sites missing from the
// site map render as their escaped text.
func (x *XHTML) interwiki(attrs tokens.Attributes) string {
	site := attrs[rules.AttrSite]
	page := attrs[rules.AttrPage]
	text := attrs[rules.AttrText]

	pattern, ok := x.sites[site]
	if !ok {
		return escape(text)
	}

	href := SiteURL(pattern, page)

	var b strings.Builder
	b.WriteString("<a")
	if x.cssClass != "" {
		b.WriteString(` class="` + escape(x.cssClass) + `"`)
	}
	b.WriteString(` href="` + escape(href) + `"`)
	if x.target != "" {
		b.WriteString(` target="` + escape(x.target) + `"`)
	}
	b.WriteString(">")
	b.WriteString(escape(text))
	b.WriteString("</a>")
	return b.String()
}

// SiteURL builds the URL of page on a site. A "%s" in pattern is replaced
// with the escaped page; otherwise the page is appended.
func SiteURL(pattern, page string) string {
	escaped := url.PathEscape(page)
	if strings.Contains(pattern, "%s") {
		return strings.Replace(pattern, "%s", escaped, 1)
	}
	return pattern + escaped
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
