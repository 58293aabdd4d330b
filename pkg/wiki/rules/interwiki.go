package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/tokens"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

// InterwikiRuleName is the rule name recorded on interwiki tokens.
const InterwikiRuleName = "interwiki"

// LocalSite is the site key of links without a site prefix.
const LocalSite = "local"

// Token attribute keys.
const (
	AttrSite = "site"
	AttrPage = "page"
	AttrText = "text"
)

// Pass is one scan of the interwiki rule over the whole buffer.
type Pass int

const (
	// PassDescribed matches "[[spec|text]]".
	PassDescribed Pass = iota

	// PassStandalone matches "[[spec]]".
	PassStandalone
)

// Passes returns the passes in the order they run. The described pass must
// consume "[[a|b]]" spans before the standalone pass sees the buffer.
func Passes() []Pass {
	return []Pass{PassDescribed, PassStandalone}
}

func (p Pass) String() string {
	switch p {
	case PassDescribed:
		return "described"
	case PassStandalone:
		return "standalone"
	default:
		return fmt.Sprintf("pass(%d)", int(p))
	}
}

const (
	specifierPattern = `([A-Za-z0-9_ ]+|:[A-Za-z0-9_ /=&~#.:;-]+)`
	displayPattern   = `([A-Za-z0-9_ ]+)`
)

//nolint:gochecknoglobals // Compiled once, read-only.
var passPatterns = map[Pass]*regexp.Regexp{
	PassDescribed:  regexp.MustCompile(`\[\[` + specifierPattern + `\|` + displayPattern + `\]\]`),
	PassStandalone: regexp.MustCompile(`\[\[` + specifierPattern + `\]\]`),
}

// LinkReference is a decoded interwiki link.
type LinkReference struct {
	Site string
	Page string
	Text string
}

// Attributes converts the reference into token attributes.
func (l LinkReference) Attributes() tokens.Attributes {
	return tokens.Attributes{
		AttrSite: l.Site,
		AttrPage: l.Page,
		AttrText: l.Text,
	}
}

// DecodeOptions tune how captures are decoded.
type DecodeOptions struct {
	// JoinOverflow keeps colon segments after the page as part of it
	// instead of discarding them.
	JoinOverflow bool
}

// Decode turns the capture groups of a match into a LinkReference.
// groups[0] is the site specifier; for PassDescribed groups[1] is the
// display text. It reports false when the specifier names no usable site
// or page, in which case the markup is left as is.
func Decode(pass Pass, groups []string, opts DecodeOptions) (LinkReference, bool) {
	if len(groups) == 0 {
		return LinkReference{}, false
	}

	spec := ParseSpecifier(groups[0])

	ref := LinkReference{Site: LocalSite, Page: spec.Page}
	if spec.Kind == SpecifierNamespaced {
		ref.Site = spec.Site
		if opts.JoinOverflow {
			ref.Page = spec.FullPage()
		}
	}
	if ref.Site == "" || ref.Page == "" {
		return LinkReference{}, false
	}

	ref.Text = ref.Page
	if pass == PassDescribed {
		if len(groups) < 2 || groups[1] == "" {
			return LinkReference{}, false
		}
		ref.Text = groups[1]
	}

	return ref, true
}

// InterwikiRule replaces interwiki links with placeholder tokens.
type InterwikiRule struct {
	wiki.BaseRule
}

// NewInterwikiRule creates a new interwiki rule.
func NewInterwikiRule() *InterwikiRule {
	return &InterwikiRule{
		BaseRule: wiki.NewBaseRule(
			"WK001",
			InterwikiRuleName,
			"Interwiki links: [[Page]], [[Page|Text]], [[:site:Page]], [[:site:Page|Text]]",
			[]string{"link", "interwiki"},
		),
	}
}

// Apply runs every pass over the whole buffer, in order.
func (r *InterwikiRule) Apply(ctx *wiki.RuleContext) error {
	if ctx.Source == nil || ctx.Tokens == nil {
		return nil
	}

	opts := DecodeOptions{
		JoinOverflow: ctx.OptionBool("join_overflow", false),
	}
	logger := logging.FromContext(ctx.Ctx)

	for _, pass := range Passes() {
		text, count, err := r.applyPass(ctx, pass, ctx.Source.Text(), opts)
		if err != nil {
			return err
		}
		ctx.Source.Set(text)

		logger.Debug("interwiki pass",
			logging.FieldPass, pass.String(),
			logging.FieldTokens, count,
		)
	}

	return nil
}

// applyPass replaces every match of the pass pattern in text. A match
// followed by a word character is skipped, and scanning resumes one byte
// after the match start.
func (r *InterwikiRule) applyPass(
	ctx *wiki.RuleContext,
	pass Pass,
	text string,
	opts DecodeOptions,
) (string, int, error) {
	re := passPatterns[pass]

	var out strings.Builder
	count := 0
	copied := 0 // text[:copied] has been written to out
	pos := 0

	for pos < len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if end < len(text) && isWordByte(text[end]) {
			pos = start + 1
			continue
		}

		groups := make([]string, 0, len(loc)/2-1)
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, text[pos+loc[g]:pos+loc[g+1]])
		}

		ref, ok := Decode(pass, groups, opts)
		if !ok {
			pos = start + 1
			continue
		}

		if ctx.Cancelled() {
			return text, count, fmt.Errorf("interwiki cancelled: %w", ctx.Ctx.Err())
		}

		placeholder, err := ctx.Tokens.Issue(r.Name(), ref.Attributes())
		if err != nil {
			return text, count, err
		}

		out.WriteString(text[copied:start])
		out.WriteString(placeholder)
		copied = end
		pos = end
		count++
	}

	if count == 0 {
		return text, 0, nil
	}

	out.WriteString(text[copied:])
	return out.String(), count, nil
}

// isWordByte reports whether b is an ASCII word character.
func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
