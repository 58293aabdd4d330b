package configloader

import (
	"maps"

	"github.com/yaklabco/wikitok/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Render != "" {
		result.Render = override.Render
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Tokens.Delimiter != "" {
		result.Tokens.Delimiter = override.Tokens.Delimiter
	}
	if override.Tokens.MaxTokens != 0 {
		result.Tokens.MaxTokens = override.Tokens.MaxTokens
	}

	if override.Interwiki.Target != "" {
		result.Interwiki.Target = override.Interwiki.Target
	}
	if override.Interwiki.CSSClass != "" {
		result.Interwiki.CSSClass = override.Interwiki.CSSClass
	}
	result.Interwiki.Sites = mergeSites(base.Interwiki.Sites, override.Interwiki.Sites)

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

// mergeSites merges interwiki site maps. An empty pattern in override
// removes the site.
func mergeSites(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	for site, pattern := range override {
		if pattern == "" {
			delete(result, site)
			continue
		}
		result[site] = pattern
	}
	return result
}

// mergeRules performs deep merge of rule configurations.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}

	if override.Options != nil {
		merged := make(map[string]any, len(result.Options)+len(override.Options))
		maps.Copy(merged, result.Options)
		maps.Copy(merged, override.Options)
		result.Options = merged
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
