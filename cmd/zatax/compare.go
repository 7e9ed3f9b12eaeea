package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/zatax/internal/compare"
	"github.com/rgehrsitz/zatax/internal/config"
	"github.com/rgehrsitz/zatax/internal/output"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the input against what-if scenarios",
		Long: "Calculate the input as given, then again with each template (--with) and\n" +
			"transform (--transform name:key=value,...) applied, and show the difference.",
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				rules, err := a.rules(a.settings.TaxYear)
				if err != nil {
					return err
				}
				engine := compare.NewCompareEngine(nil, rules)
				fmt.Fprintln(out, "Templates:")
				for _, name := range engine.TemplateRegistry.List() {
					t, _ := engine.TemplateRegistry.Get(name)
					fmt.Fprintf(out, "  %-20s %s\n", name, t.Description)
				}
				fmt.Fprintln(out, "\nTransforms:")
				for _, name := range engine.TransformRegistry.List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if file.IsBatch() {
				return fmt.Errorf("%s holds %d records; compare takes a single record", args[0], len(file.Records))
			}
			recs, err := resolveRecords(a.builder(), file)
			if err != nil {
				return err
			}

			rules, err := a.rules(a.taxYear(cmd, file))
			if err != nil {
				return err
			}
			calc, err := a.calculator(rules)
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			if base == "" {
				base = recs[0].name
			}
			with, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")

			engine := compare.NewCompareEngine(calc, rules)
			compSet, err := engine.Compare(commandContext(cmd), recs[0].input, compare.CompareOptions{
				BaseScenarioName: base,
				Templates:        splitList(with),
				Transforms:       transforms,
				InputPath:        args[0],
			})
			if err != nil {
				return err
			}

			detailed, _ := cmd.Flags().GetBool("detailed")
			text, err := formatComparison(compSet, a.settings.Format, detailed)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("base", "", "Name for the unmodified scenario (default: the record name, or \"base\")")
	f.String("with", "", "Comma-separated list of templates to compare")
	f.StringArray("transform", nil, "Transform spec, e.g. raise_retirement:amount=20000 (repeatable)")
	f.Bool("list-templates", false, "List the available templates and transforms")
	f.Bool("detailed", false, "Include each scenario's full input and result in JSON output")
	return cmd
}

func formatComparison(compSet *compare.ComparisonSet, format string, detailed bool) (string, error) {
	switch name := output.NormalizeFormatName(format); name {
	case "console":
		tf := &compare.TableFormatter{}
		return tf.Format(compSet), nil
	case "compact":
		tf := &compare.TableFormatter{}
		return tf.FormatCompact(compSet) + "\n", nil
	case "csv":
		return (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true, Detailed: detailed}).Format(compSet)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	default:
		return "", fmt.Errorf("unsupported comparison format %q (available: console, compact, csv, json)", format)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
