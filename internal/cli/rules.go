package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikitok/internal/logging"
	"github.com/yaklabco/wikitok/pkg/config"
	"github.com/yaklabco/wikitok/pkg/wiki"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available parse rules",
		Long: `List all available parse rules in the order they run, with their IDs,
descriptions and whether they are enabled by default.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := wiki.DefaultRegistry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())
			if len(rules) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, rule := range rules {
				logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
					logging.FieldEnabled, rule.DefaultEnabled(),
					"tags", strings.Join(rule.Tags(), ","),
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesJSON(w io.Writer, rules []wiki.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
