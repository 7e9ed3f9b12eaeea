package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/zatax/internal/calculation"
	"github.com/rgehrsitz/zatax/internal/config"
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/intake"
	"github.com/rgehrsitz/zatax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolved is one record ready to calculate.
type resolved struct {
	name      string
	input     domain.TaxInput
	breakdown *intake.Breakdown
}

// resolveRecords converts every record in file, naming failures by record.
func resolveRecords(b *intake.Builder, file *config.InputFile) ([]resolved, error) {
	records := file.All()
	out := make([]resolved, 0, len(records))
	for i, r := range records {
		in, bd, err := r.Resolve(b)
		if err != nil {
			if file.IsBatch() {
				return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
			}
			return nil, err
		}
		out = append(out, resolved{name: r.Name, input: in, breakdown: bd})
	}
	return out, nil
}

func calculateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate tax for one taxpayer",
		Long: "Calculate tax for the taxpayer in input-file, or for the values given with\n" +
			"--gross, --age and the other inline flags when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rec  resolved
				file *config.InputFile
			)
			if len(args) == 1 {
				var err error
				file, err = config.NewInputParser().LoadFromFile(args[0])
				if err != nil {
					return err
				}
				if file.IsBatch() {
					return fmt.Errorf("%s holds %d records; use the batch command", args[0], len(file.Records))
				}
				recs, err := resolveRecords(a.builder(), file)
				if err != nil {
					return err
				}
				rec = recs[0]
			} else {
				in, err := inlineInput(cmd)
				if err != nil {
					return err
				}
				rec = resolved{input: in}
			}

			rules, err := a.rules(a.taxYear(cmd, file))
			if err != nil {
				return err
			}
			calc, err := a.calculator(rules)
			if err != nil {
				return err
			}
			a.logger.Debug("calculating", zap.Stringer("calculator", calc))

			result, err := calc.Calculate(rec.input)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), a.settings.Format,
				output.NewReport(rec.name, rec.input, result, rec.breakdown))
		},
	}

	f := cmd.Flags()
	f.String("gross", "", "Gross annual income")
	f.Int("age", 0, "Age at the end of the tax year")
	f.String("retirement", "0", "Retirement fund contributions")
	f.Int("medical-months", 0, "Months of medical scheme membership (0-12)")
	f.Int("dependants", 0, "Medical scheme dependants, excluding the main member")
	f.String("paye", "0", "PAYE withheld")
	f.String("provisional", "0", "Provisional tax paid")
	f.String("deductions", "0", "Other deductions")
	return cmd
}

// inlineInput builds a TaxInput from calculate's flags.
func inlineInput(cmd *cobra.Command) (domain.TaxInput, error) {
	f := cmd.Flags()
	if !f.Changed("gross") {
		return domain.TaxInput{}, fmt.Errorf("an input file or --gross is required")
	}

	money := func(name string) (decimal.Decimal, error) {
		s, _ := f.GetString(name)
		v, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, s)
		}
		return v, nil
	}

	var in domain.TaxInput
	var err error
	if in.GrossIncome, err = money("gross"); err != nil {
		return in, err
	}
	if in.RetirementContribution, err = money("retirement"); err != nil {
		return in, err
	}
	if in.PAYEWithheld, err = money("paye"); err != nil {
		return in, err
	}
	if in.ProvisionalTaxPaid, err = money("provisional"); err != nil {
		return in, err
	}
	if in.OtherDeductions, err = money("deductions"); err != nil {
		return in, err
	}
	in.Age, _ = f.GetInt("age")
	in.MedicalMonths, _ = f.GetInt("medical-months")
	in.MedicalDependants, _ = f.GetInt("dependants")

	return in, in.Validate()
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			recs, err := resolveRecords(a.builder(), file)
			if err != nil {
				if fields := domain.InvalidFields(err); len(fields) > 0 {
					a.logger.Warn("invalid fields", zap.Strings("fields", fields))
				}
				return err
			}
			if _, err := a.rules(a.taxYear(cmd, file)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d record(s))\n", args[0], len(recs))
			return nil
		},
	}
}

func batchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [input-file...]",
		Short: "Calculate every record in one or more input files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				recs []resolved
				year int
			)
			parser := config.NewInputParser()
			for i, path := range args {
				file, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				fy := a.taxYear(cmd, file)
				if i == 0 {
					year = fy
				} else if fy != year {
					return fmt.Errorf("%s is for tax year %d, but %s is for %d", path, fy, args[0], year)
				}
				r, err := resolveRecords(a.builder(), file)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				recs = append(recs, r...)
			}

			rules, err := a.rules(year)
			if err != nil {
				return err
			}
			calc, err := a.calculator(rules)
			if err != nil {
				return err
			}
			cached := calculation.NewCachingCalculator(calc, a.settings.Cache.TTL)

			inputs := make([]domain.TaxInput, len(recs))
			for i, r := range recs {
				inputs[i] = r.input
			}
			results, err := calculation.CalculateBatch(commandContext(cmd), cached, inputs, a.settings.Batch.Concurrency)
			if err != nil {
				return err
			}

			reports := make([]output.Report, len(recs))
			for i, r := range recs {
				reports[i] = output.NewReport(r.name, r.input, results[i], r.breakdown)
				a.logger.Debug(output.SummaryLine(reports[i]))
			}
			a.logger.Info("batch complete",
				zap.Int("records", len(reports)),
				zap.Int("distinct_inputs", cached.Len()),
				zap.Int("concurrency", a.settings.Batch.Concurrency),
			)
			return output.Write(cmd.OutOrStdout(), a.settings.Format, reports...)
		},
	}
	cmd.Flags().Int("concurrency", 4, "Maximum calculations in flight (0 is unlimited)")
	return cmd
}

// commandContext returns cmd's context, or Background when run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
