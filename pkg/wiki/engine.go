package wiki

import (
	"context"
	"fmt"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/tokens"
)

// Result contains the outcome of parsing a single source.
type Result struct {
	// Path is the path the source was read from.
	Path string

	// Text is the tokenized source: recognized markup replaced by placeholders.
	Text string

	// Store holds the tokens issued while parsing.
	Store *tokens.Store

	// RulesRun lists the IDs of the rules applied, in order.
	RulesRun []string
}

// TokenCount returns the number of tokens issued.
func (r *Result) TokenCount() int {
	if r.Store == nil {
		return 0
	}
	return r.Store.Len()
}

// Engine runs the enabled parse rules over a source buffer.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// NewStore creates a token store configured from cfg.
func NewStore(cfg *config.Config) *tokens.Store {
	if cfg == nil {
		return tokens.NewStore(tokens.Options{})
	}
	return tokens.NewStore(tokens.Options{
		Delimiter: cfg.Tokens.Delimiter,
		MaxTokens: cfg.Tokens.MaxTokens,
	})
}

// ParseText tokenizes content with a fresh Source and token store.
func (e *Engine) ParseText(
	ctx context.Context,
	path string,
	content string,
	cfg *config.Config,
) (*Result, error) {
	src := NewSource(path, content)
	store := NewStore(cfg)

	rulesRun, err := e.Apply(ctx, src, store, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:     path,
		Text:     src.Text(),
		Store:    store,
		RulesRun: rulesRun,
	}, nil
}

// Apply runs every enabled rule, in parse order, against src.
// It returns the IDs of the rules that ran.
func (e *Engine) Apply(
	ctx context.Context,
	src *Source,
	issuer TokenIssuer,
	cfg *config.Config,
) ([]string, error) {
	ctx = logging.WithFields(ctx, logging.FieldPath, src.Path())
	logger := logging.FromContext(ctx)
	resolved := ResolveRules(e.Registry, cfg)
	ran := make([]string, 0, len(resolved))

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return ran, fmt.Errorf("parsing cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, src, issuer, cfg, rr.Config)
		if err := rr.Rule.Apply(ruleCtx); err != nil {
			return ran, fmt.Errorf("rule %s: %w", rr.Rule.ID(), err)
		}
		ran = append(ran, rr.Rule.ID())

		logger.Debug("rule applied",
			logging.FieldRule, rr.Rule.Name(),
			logging.FieldLength, src.Len(),
		)
	}

	return ran, nil
}
