package rules

import (
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

// RegisterAll registers all built-in rules with the given registry.
// Registration order is parse order.
func RegisterAll(registry *wiki.Registry) {
	registry.Register(NewInterwikiRule()) // WK001
}

// RegisterLegacyAliases registers alternate names that resolve to built-in
// rules. "Interwiki" is the rule name used by Text_Wiki configurations.
func RegisterLegacyAliases(registry *wiki.Registry) {
	registry.RegisterAlias("Interwiki", "WK001")
	registry.RegisterAlias("interwiki-link", "WK001")
}

// RuleInfos describes the rules in registry for config template generation.
func RuleInfos(registry *wiki.Registry) config.RuleInfoProvider {
	return func() []config.RuleInfo {
		rules := registry.Rules()
		infos := make([]config.RuleInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, config.RuleInfo{
				ID:          rule.ID(),
				Name:        rule.Name(),
				Description: rule.Description(),
				Enabled:     rule.DefaultEnabled(),
			})
		}
		return infos
	}
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(wiki.DefaultRegistry)
	RegisterLegacyAliases(wiki.DefaultRegistry)
}
