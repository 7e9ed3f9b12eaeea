package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/zatax/internal/calculation"
	"github.com/rgehrsitz/zatax/internal/config"
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/intake"
	"github.com/rgehrsitz/zatax/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	settings *config.Settings
	logger   *zap.Logger
}

// sugar returns the calculation logger. zap's SugaredLogger already has
// the Debugf/Infof/Warnf/Errorf method set.
func (a *app) sugar() calculation.Logger {
	if a.logger == nil {
		return calculation.NopLogger{}
	}
	return a.logger.Sugar()
}

// rules resolves the rule set for year, honouring --rules.
func (a *app) rules(year int) (domain.RuleSet, error) {
	return config.ResolveRuleSet(year, a.settings.RulesFile)
}

// taxYear picks the year for an input file: the file's own tax_year unless
// one was given explicitly on the command line or environment.
func (a *app) taxYear(cmd *cobra.Command, file *config.InputFile) int {
	if file != nil && file.TaxYear != 0 && !cmd.Flags().Changed("tax-year") && os.Getenv("ZATAX_TAX_YEAR") == "" {
		return file.TaxYear
	}
	return a.settings.TaxYear
}

func (a *app) calculator(rules domain.RuleSet) (*calculation.Calculator, error) {
	return calculation.NewCalculator(rules, calculation.WithLogger(a.sugar()))
}

func (a *app) builder() *intake.Builder {
	return intake.NewBuilder(intake.DefaultLimits())
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "zatax",
		Short: "South African personal income tax estimator",
		Long: "Estimate South African personal income tax for a tax year: taxable income,\n" +
			"tax before and after rebates and medical credits, and the final refund or\n" +
			"amount owing against PAYE and provisional tax already paid.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				settings.Log.Level = "debug"
			}
			logger, err := logging.New(settings.Log.Level, settings.Log.Format)
			if err != nil {
				return err
			}
			a.settings = settings
			a.logger = logger
			logger.Debug("settings loaded",
				zap.Int("tax_year", settings.TaxYear),
				zap.String("rules_file", settings.RulesFile),
				zap.String("format", settings.Format),
				zap.Duration("cache_ttl", settings.Cache.TTL),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.Int("tax-year", config.DefaultTaxYear, "Tax year whose built-in rules to use")
	pf.String("rules", "", "Path to a rule set YAML file (overrides --tax-year rules)")
	pf.StringP("format", "f", "console", "Output format (console, json, yaml, csv)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")
	pf.Bool("debug", false, "Enable debug logging of calculations")
	pf.String("config", "", "Path to a settings file")
	pf.Duration("cache-ttl", 0, "How long batch results stay memoized (default 10m)")

	root.AddCommand(calculateCmd(a))
	root.AddCommand(validateCmd(a))
	root.AddCommand(batchCmd(a))
	root.AddCommand(compareCmd(a))
	root.AddCommand(rulesCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zatax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
