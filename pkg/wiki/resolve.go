package wiki

import (
	"slices"

	"github.com/yaklabco/wikitok/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, in parse order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// Config files set the baseline; CLI enable/disable lists win.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:    rule,
		Enabled: rule.DefaultEnabled(),
	}

	if cfg == nil {
		return rr
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
	}

	matches := func(key string) bool {
		return key == rule.ID() || key == rule.Name()
	}
	if slices.ContainsFunc(cfg.EnableRules, matches) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matches) {
		rr.Enabled = false
	}

	return rr
}
