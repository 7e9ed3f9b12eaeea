package main

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/calculation"
	"github.com/rgehrsitz/zatax/internal/config"
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/output"
	"github.com/spf13/cobra"
)

func rulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and check tax rule sets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the tax years with built-in rules",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, y := range config.AvailableYears() {
				fmt.Fprintln(cmd.OutOrStdout(), y)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the rule set in effect as YAML, with its tax thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules(a.settings.TaxYear)
			if err != nil {
				return err
			}
			data, err := config.MarshalRuleSet(rules)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))
			fmt.Fprintln(out, "# tax thresholds:")
			for _, line := range thresholdLines(rules) {
				fmt.Fprintln(out, "#   "+line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Check a rule set file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadRuleSet(args[0])
			if err != nil {
				if fields := domain.InvalidFields(err); len(fields) > 0 {
					a.logger.Sugar().Warnf("invalid fields: %v", fields)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: tax year %d, %d brackets\n",
				args[0], rules.TaxYear, len(rules.Brackets))
			return nil
		},
	})

	return cmd
}

func thresholdLines(rules domain.RuleSet) []string {
	table := calculation.NewBracketTable(rules.Brackets)
	ages := []struct {
		label string
		age   int
	}{
		{"under 65", 0},
		{"65 to 74", domain.SecondaryRebateAge},
		{"75 and over", domain.TertiaryRebateAge},
	}
	lines := make([]string, 0, len(ages))
	for _, a := range ages {
		rebate := calculation.ComputeRebates(a.age, rules.Rebates)
		t, ok := calculation.TaxThreshold(rebate, table)
		if !ok {
			lines = append(lines, a.label+": none")
			continue
		}
		lines = append(lines, a.label+": "+output.FormatCurrency(t.Ceil()))
	}
	return lines
}
