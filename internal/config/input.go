package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/intake"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Record is one taxpayer in an input file. Exactly one of Submission (raw
// form fields) or Input (already-flattened calculator input) is set.
type Record struct {
	Name       string             `yaml:"name,omitempty" json:"name,omitempty"`
	Submission *intake.Submission `yaml:"submission,omitempty" json:"submission,omitempty"`
	Input      *domain.TaxInput   `yaml:"input,omitempty" json:"input,omitempty"`
}

// Resolve turns the record into calculator input. The breakdown is nil for
// records given as a flat Input.
func (r Record) Resolve(b *intake.Builder) (domain.TaxInput, *intake.Breakdown, error) {
	if r.Input != nil {
		if err := r.Input.Validate(); err != nil {
			return domain.TaxInput{}, nil, err
		}
		return *r.Input, nil, nil
	}
	in, bd, err := b.BuildBreakdown(*r.Submission)
	if err != nil {
		return domain.TaxInput{}, nil, err
	}
	return in, &bd, nil
}

// InputFile is the on-disk format for calculate, validate and compare. A
// batch file lists several records under Records instead.
type InputFile struct {
	TaxYear int `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	Record  `yaml:",inline"`
	Records []Record `yaml:"records,omitempty" json:"records,omitempty"`
}

// IsBatch reports whether the file holds a list of records.
func (f *InputFile) IsBatch() bool { return len(f.Records) > 0 }

// All returns every record in the file, whether single or batch.
func (f *InputFile) All() []Record {
	if f.IsBatch() {
		return f.Records
	}
	return []Record{f.Record}
}

// InputParser handles parsing of taxpayer input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an input file from YAML (JSON is accepted as YAML).
func (ip *InputParser) LoadFromFile(filename string) (*InputFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and structurally validates input file data.
func (ip *InputParser) Parse(data []byte) (*InputFile, error) {
	var file InputFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateInputFile(&file); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &file, nil
}

// ValidateInputFile checks the file's shape. Field values are validated
// later, when each record is resolved.
func (ip *InputParser) ValidateInputFile(file *InputFile) error {
	single := file.Submission != nil || file.Input != nil
	if single && file.IsBatch() {
		return fmt.Errorf("file has both a top-level record and a records list")
	}
	if !single && !file.IsBatch() {
		return fmt.Errorf("file has no submission, input or records")
	}
	if file.TaxYear < 0 {
		return fmt.Errorf("tax_year cannot be negative")
	}

	var errs error
	for i, r := range file.All() {
		if err := ip.validateRecord(r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %d (%s): %w", i, r.Name, err))
		}
	}
	return errs
}

func (ip *InputParser) validateRecord(r Record) error {
	switch {
	case r.Submission != nil && r.Input != nil:
		return fmt.Errorf("set either submission or input, not both")
	case r.Submission == nil && r.Input == nil:
		return fmt.Errorf("submission or input is required")
	}
	return nil
}
