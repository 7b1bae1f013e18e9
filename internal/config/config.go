package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/apptstats/internal/loader"
	"github.com/gyeh/apptstats/internal/present"
	"github.com/gyeh/apptstats/internal/reshape"
)

// Config holds all runtime configuration for an apptstats run.
type Config struct {
	Source      string // URL or local path of the workbook
	OutDir      string
	WorkDir     string // download directory; defaults to OutDir
	DSN         string
	LogFormat   string // "text" or "json"
	LogLevel    string
	ChartFormat string // static chart extension: png, svg or pdf
	Datasets    []Dataset
	Style       present.StyleConfig
}

// Percentage picks the percentage base of a dataset.
type Percentage struct {
	Base        string `yaml:"base"` // "group" or "global"
	Denominator string `yaml:"denominator"`
}

// Dataset describes one summary table of the workbook and how to reshape it.
type Dataset struct {
	Name          string `yaml:"name"`
	loader.Region `yaml:",inline"`
	IDColumn      string                    `yaml:"id_column"`
	Merge         []reshape.MergeRule       `yaml:"merge"`
	Rename        map[string]string         `yaml:"rename"`
	Percentage    Percentage                `yaml:"percentage"`
	Drop          []string                  `yaml:"drop"`
	Order         []string                  `yaml:"order"`
	Sexes         map[string]reshape.SexKey `yaml:"sexes"`
	Title         string                    `yaml:"title"`
}

// Recipe returns the reshape steps of the dataset.
func (d Dataset) Recipe() reshape.Recipe {
	return reshape.Recipe{
		IDColumn:    d.IDColumn,
		Merge:       d.Merge,
		Rename:      d.Rename,
		Base:        reshape.Base(d.Percentage.Base),
		Denominator: d.Percentage.Denominator,
		Drop:        d.Drop,
		Order:       d.Order,
	}
}

// DefaultDatasets describes the two tables of the published workbook.
func DefaultDatasets() []Dataset {
	return []Dataset{
		{
			Name:     "outcomes",
			Region:   loader.Region{Sheet: "Outcomes", Range: "B3:H8"},
			IDColumn: "Year",
			Merge: []reshape.MergeRule{
				{Target: "Cancelled", Sources: []string{"PatientCancel", "HospitalCancel"}},
			},
			Rename:     map[string]string{"Attendances": "Attended"},
			Percentage: Percentage{Base: string(reshape.BaseGroup), Denominator: "Total"},
			Drop:       []string{"Total"},
			Order:      []string{"Unknown", "Missed", "Cancelled", "Attended"},
			Title:      "Outpatient appointments by outcome",
		},
		{
			Name:       "age_sex",
			Region:     loader.Region{Sheet: "AgeSex", Range: "B3:E12"},
			IDColumn:   "Age",
			Percentage: Percentage{Base: string(reshape.BaseGlobal)},
			Order:      []string{"FemaleMaternity", "Female", "Male"},
			Sexes: map[string]reshape.SexKey{
				"Male":            {Sex: "Male"},
				"Female":          {Sex: "Female"},
				"FemaleMaternity": {Sex: "Female", Maternity: true},
			},
			Title: "Outpatient attendances by age and sex",
		},
	}
}

// Default returns a Config with the built-in datasets and chart style.
func Default() Config {
	return Config{
		OutDir:      "out",
		LogFormat:   "text",
		LogLevel:    "info",
		ChartFormat: "png",
		Datasets:    DefaultDatasets(),
		Style:       present.DefaultStyleConfig(),
	}
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	SourceURL string              `yaml:"source_url"`
	Datasets  []Dataset           `yaml:"datasets"`
	Style     present.StyleConfig `yaml:"style"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Datasets in the file replace the built-in ones; style keys override the
// current style key by key. A source given on the command line wins.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	yc := yamlConfig{Style: c.Style}
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.Source == "" {
		c.Source = yc.SourceURL
	}
	if len(yc.Datasets) > 0 {
		c.Datasets = yc.Datasets
	}
	c.Style = yc.Style
	return c.validateDatasets()
}

// validateDatasets checks every dataset is complete and names are unique.
func (c *Config) validateDatasets() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets configured")
	}
	seen := make(map[string]bool, len(c.Datasets))
	for i, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("dataset %d: name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("dataset %q: duplicate name", d.Name)
		}
		seen[d.Name] = true
		if d.Sheet == "" || d.Range == "" {
			return fmt.Errorf("dataset %q: sheet and range are required", d.Name)
		}
		if d.IDColumn == "" {
			return fmt.Errorf("dataset %q: id_column is required", d.Name)
		}
		switch reshape.Base(d.Percentage.Base) {
		case reshape.BaseGroup:
			if d.Percentage.Denominator == "" {
				return fmt.Errorf("dataset %q: group percentage needs a denominator", d.Name)
			}
		case reshape.BaseGlobal:
			if d.Percentage.Denominator != "" {
				return fmt.Errorf("dataset %q: global percentage takes no denominator", d.Name)
			}
		default:
			return fmt.Errorf("dataset %q: unknown percentage base %q", d.Name, d.Percentage.Base)
		}
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("--source is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("--out is required")
	}
	switch c.ChartFormat {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unsupported chart format %q", c.ChartFormat)
	}
	if err := c.validateDatasets(); err != nil {
		return err
	}
	if _, err := present.NewStyle(c.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	return nil
}

// ValidateWithDSN checks the config and that a DSN is present.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or APPTSTATS_DB_URL is required")
	}
	return nil
}
