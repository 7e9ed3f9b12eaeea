package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/zatax/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultTaxYear is used when no year is configured.
const DefaultTaxYear = 2025

//go:embed rules/*.yaml
var embeddedRules embed.FS

// RuleSetForYear returns the embedded, validated rule set for a tax year.
func RuleSetForYear(year int) (domain.RuleSet, error) {
	data, err := embeddedRules.ReadFile(path.Join("rules", strconv.Itoa(year)+".yaml"))
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("no built-in rules for tax year %d (available: %v)", year, AvailableYears())
	}
	rs, err := ParseRuleSet(data)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("built-in rules for %d: %w", year, err)
	}
	return rs, nil
}

// LoadRuleSet reads and validates a rule set from a YAML file.
func LoadRuleSet(filename string) (domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	rs, err := ParseRuleSet(data)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("rules file %s: %w", filename, err)
	}
	return rs, nil
}

// ParseRuleSet decodes YAML rule set data and validates it.
func ParseRuleSet(data []byte) (domain.RuleSet, error) {
	var rs domain.RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return domain.RuleSet{}, err
	}
	return rs, nil
}

// ResolveRuleSet picks a rule set the way the CLI does: an explicit file
// wins over the built-in table for year.
func ResolveRuleSet(year int, rulesFile string) (domain.RuleSet, error) {
	if rulesFile != "" {
		return LoadRuleSet(rulesFile)
	}
	if year == 0 {
		year = DefaultTaxYear
	}
	return RuleSetForYear(year)
}

// AvailableYears lists the tax years with built-in rules, oldest first.
func AvailableYears() []int {
	entries, err := fs.ReadDir(embeddedRules, "rules")
	if err != nil {
		return nil
	}
	var years []int
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".yaml")
		if y, err := strconv.Atoi(name); err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// MarshalRuleSet renders a rule set as YAML.
func MarshalRuleSet(rs domain.RuleSet) ([]byte, error) {
	return yaml.Marshal(rs)
}
