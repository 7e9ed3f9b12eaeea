package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds application settings for the CLI. Values come from, in
// increasing priority: defaults, an optional config file, ZATAX_*
// environment variables and command-line flags.
type Settings struct {
	TaxYear   int
	RulesFile string
	Format    string
	Log       LogSettings
	Cache     CacheSettings
	Batch     BatchSettings
}

// LogSettings holds logging settings.
type LogSettings struct {
	Level  string
	Format string
}

// CacheSettings controls result memoization.
type CacheSettings struct {
	TTL time.Duration
}

// BatchSettings controls batch runs.
type BatchSettings struct {
	Concurrency int
}

// flagKeys maps flag names to their settings keys.
var flagKeys = map[string]string{
	"tax-year":    "tax_year",
	"rules":       "rules_file",
	"format":      "format",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"cache-ttl":   "cache.ttl",
	"concurrency": "batch.concurrency",
	"config":      "config_file",
}

// LoadSettings resolves settings. flags may be nil; flags that exist but
// were not set on the command line do not override other sources.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("ZATAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tax_year", DefaultTaxYear)
	v.SetDefault("rules_file", "")
	v.SetDefault("format", "console")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("config_file", "")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	s := &Settings{
		TaxYear:   v.GetInt("tax_year"),
		RulesFile: v.GetString("rules_file"),
		Format:    v.GetString("format"),
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Cache: CacheSettings{TTL: v.GetDuration("cache.ttl")},
		Batch: BatchSettings{Concurrency: v.GetInt("batch.concurrency")},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings values.
func (s *Settings) Validate() error {
	if s.TaxYear <= 0 {
		return fmt.Errorf("tax_year must be positive, got %d", s.TaxYear)
	}
	if s.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency cannot be negative, got %d", s.Batch.Concurrency)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative, got %s", s.Cache.TTL)
	}
	return nil
}
