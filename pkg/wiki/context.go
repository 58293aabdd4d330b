package wiki

import (
	"context"

	"github.com/yaklabco/wikitok/pkg/config"
)

// RuleContext provides everything a rule needs to rewrite one source buffer.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Source is the shared buffer the rule rewrites in place.
	Source *Source

	// Tokens issues placeholders for recognized markup.
	Tokens TokenIssuer

	// Config is the resolved configuration (may be nil).
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig
}

// NewRuleContext creates a RuleContext for the given buffer and token issuer.
func NewRuleContext(
	ctx context.Context,
	src *Source,
	issuer TokenIssuer,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RuleContext{
		Ctx:        ctx,
		Source:     src,
		Tokens:     issuer,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}
