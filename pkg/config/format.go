package config

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "interwiki"
	RuleFormatID       RuleFormat = "id"       // "WK001"
	RuleFormatCombined RuleFormat = "combined" // "WK001/interwiki"
)

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}
