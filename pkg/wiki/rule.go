// Package wiki provides the parse rule abstraction, the rule registry, and
// the engine that runs rules over a wiki source buffer.
package wiki

import "github.com/yaklabco/wikitok/pkg/tokens"

// TokenIssuer hands out placeholder tokens for recognized markup.
// *tokens.Store implements it.
type TokenIssuer interface {
	// Issue records attrs under the given rule name and returns the
	// placeholder that replaces the markup in the source.
	Issue(rule string, attrs tokens.Attributes) (string, error)
}

// Rule defines the interface that all parse rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "WK001").
	ID() string

	// Name returns the human-readable name of the rule. It is also the rule
	// name recorded on issued tokens.
	Name() string

	// Description returns a detailed description of what the rule recognizes.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// Tags returns categorization tags for this rule (e.g., ["link"]).
	Tags() []string

	// Apply rewrites ctx.Source, replacing recognized markup with tokens
	// issued through ctx.Tokens.
	//
	// Rules must:
	//   - Leave unrecognized text untouched.
	//   - Respect context cancellation.
	//   - Return token store errors as they are.
	Apply(ctx *RuleContext) error
}
