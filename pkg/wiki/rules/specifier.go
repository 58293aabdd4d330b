package rules

import "strings"

// SpecifierKind distinguishes the two site specifier forms.
type SpecifierKind int

const (
	// SpecifierLocal is a bare page name with no colon: "Page".
	SpecifierLocal SpecifierKind = iota

	// SpecifierNamespaced is the colon-leading form: ":site:page".
	SpecifierNamespaced
)

// Specifier is a parsed site specifier, the text between "[[" and the
// first "|" or "]]".
type Specifier struct {
	Kind SpecifierKind

	// Site is the interwiki site key. Empty for local specifiers.
	Site string

	// Page is the target page.
	Page string

	// Overflow holds colon segments after the page (":en:Ns:Target"
	// yields Page "Ns" and Overflow ["Target"]).
	Overflow []string
}

// ParseSpecifier splits a raw site specifier on ":".
// Without a colon the whole string is a local page name. Otherwise
// segment 0 is the (empty) text before the leading colon, segment 1 the
// site, segment 2 the page, and anything further is overflow.
func ParseSpecifier(raw string) Specifier {
	segments := strings.Split(raw, ":")
	if len(segments) == 1 {
		return Specifier{Kind: SpecifierLocal, Page: raw}
	}

	spec := Specifier{Kind: SpecifierNamespaced, Site: segments[1]}
	if len(segments) > 2 {
		spec.Page = segments[2]
	}
	if len(segments) > 3 {
		spec.Overflow = segments[3:]
	}
	return spec
}

// FullPage returns the page with overflow segments rejoined by ":".
func (s Specifier) FullPage() string {
	if len(s.Overflow) == 0 {
		return s.Page
	}
	return s.Page + ":" + strings.Join(s.Overflow, ":")
}
