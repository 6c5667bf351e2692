package renumber

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/conceptworks/renumber/rdf"
	"github.com/conceptworks/renumber/vocab"
)

// MatchMode selects how TargetTerm narrows matching under BaseURI.
type MatchMode string

const (
	// MatchPrefix requires the remainder after BaseURI to start with
	// TargetTerm.
	MatchPrefix MatchMode = "prefix"
	// MatchSubstring requires the URI to contain TargetTerm anywhere.
	// This mirrors the containment check thesaurus exports were
	// originally filtered with and is the default.
	MatchSubstring MatchMode = "substring"
	// MatchSegment requires a full path segment after BaseURI to equal
	// TargetTerm.
	MatchSegment MatchMode = "segment"
)

// Config is the immutable description of one renumbering run. It is
// loaded once, validated, and passed by value into the pipeline.
type Config struct {
	InputFile    string `yaml:"input_file"`
	InputFormat  string `yaml:"input_format"`
	OutputFile   string `yaml:"output_file"`
	OutputFormat string `yaml:"output_format"`

	BaseURI     string    `yaml:"base_uri"`
	TargetTerm  string    `yaml:"target_term"`
	MatchMode   MatchMode `yaml:"match_mode"`
	TargetClass string    `yaml:"target_class"`

	RangeStart int64 `yaml:"range_start"`
	RangeEnd   int64 `yaml:"range_end"`

	GraphName string `yaml:"graph_name"`

	NewDateFormat  string   `yaml:"new_date_format"`
	DatePredicates []string `yaml:"date_predicates"`
	StrictDates    bool     `yaml:"strict_dates"`
}

// LoadConfig reads, defaults and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills in unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.MatchMode == "" {
		c.MatchMode = MatchSubstring
	}
	if len(c.DatePredicates) == 0 {
		c.DatePredicates = []string{
			vocab.DCTermsCreated,
			vocab.DCTermsModified,
			vocab.DCDate,
		}
	}
	if c.InputFormat == "" {
		if format, ok := rdf.FormatForPath(c.InputFile); ok {
			c.InputFormat = string(format)
		}
	}
	if c.OutputFormat == "" {
		if format, ok := rdf.FormatForPath(c.OutputFile); ok {
			c.OutputFormat = string(format)
		}
	}
}

// Validate checks the configuration for a runnable state.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.InputFile, validation.Required),
		validation.Field(&c.OutputFile, validation.Required),
		validation.Field(&c.BaseURI, validation.Required),
		validation.Field(&c.MatchMode, validation.In(MatchPrefix, MatchSubstring, MatchSegment)),
		validation.Field(&c.RangeStart, validation.Min(int64(0))),
		validation.Field(&c.RangeEnd, validation.Required, validation.Min(int64(0))),
	)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// Threshold rules skip zero values, so range ordering is checked here.
	if c.RangeEnd < c.RangeStart {
		return fmt.Errorf("invalid configuration: range_end %d is below range_start %d", c.RangeEnd, c.RangeStart)
	}

	inputFormat, ok := rdf.ParseFormat(c.InputFormat)
	if !ok {
		return fmt.Errorf("invalid configuration: cannot determine input format for %q", c.InputFile)
	}
	if !inputFormat.CanDecode() {
		return fmt.Errorf("invalid configuration: %w: cannot read %s", rdf.ErrUnsupportedFormat, inputFormat)
	}
	outputFormat, ok := rdf.ParseFormat(c.OutputFormat)
	if !ok {
		return fmt.Errorf("invalid configuration: cannot determine output format for %q", c.OutputFile)
	}
	if !outputFormat.CanEncode() {
		return fmt.Errorf("invalid configuration: %w: cannot write %s", rdf.ErrUnsupportedFormat, outputFormat)
	}
	return nil
}

// ResolvedInputFormat returns the parsed input format. Validate must
// have succeeded.
func (c Config) ResolvedInputFormat() rdf.Format {
	format, _ := rdf.ParseFormat(c.InputFormat)
	return format
}

// ResolvedOutputFormat returns the parsed output format. Validate must
// have succeeded.
func (c Config) ResolvedOutputFormat() rdf.Format {
	format, _ := rdf.ParseFormat(c.OutputFormat)
	return format
}
