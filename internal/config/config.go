// Package config loads a netluac project file and merges it with CLI flags
// (§6). The project file is optional — every field also has a CLI flag. A
// flag with a non-zero value wins over the file; a flag left at its zero
// value (empty, 0 or false) leaves the file's value in place.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/netlua/netlua/pkg/printer"
)

// Config is the merged result of a project file and the CLI flags (§6).
type Config struct {
	SourceDir  string   `yaml:"sourceDir"`
	OutputDir  string   `yaml:"outputDir"`
	Libs       []string `yaml:"libs"`
	MetaFiles  []string `yaml:"metaFiles"`
	CscFlags   string   `yaml:"cscFlags"`
	Classic    bool     `yaml:"classic"`
	IndentSize int      `yaml:"indentSize"`
	Semicolons bool     `yaml:"semicolons"`
	// ExportAttributes controls whether attribute metadata the front end
	// carries in is re-emitted as a side table the runtime can inspect; it
	// has no bearing on the lowering itself (§6 `-a`).
	ExportAttributes bool `yaml:"exportAttributes"`
}

// Default returns the configuration netluac uses when neither a project
// file nor a flag sets a value.
func Default() Config {
	return Config{
		OutputDir:  ".",
		IndentSize: 2,
	}
}

// Load reads and parses a project file (conventionally `netluac.yaml`).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge overlays non-zero-valued fields of flags onto cfg, giving the CLI
// flags priority over whatever the project file set (§6 "flags override
// the project file").
func (cfg Config) Merge(flags Config) Config {
	merged := cfg
	if flags.SourceDir != "" {
		merged.SourceDir = flags.SourceDir
	}
	if flags.OutputDir != "" {
		merged.OutputDir = flags.OutputDir
	}
	if len(flags.Libs) > 0 {
		merged.Libs = flags.Libs
	}
	if len(flags.MetaFiles) > 0 {
		merged.MetaFiles = flags.MetaFiles
	}
	if flags.CscFlags != "" {
		merged.CscFlags = flags.CscFlags
	}
	if flags.Classic {
		merged.Classic = true
	}
	if flags.IndentSize > 0 {
		merged.IndentSize = flags.IndentSize
	}
	if flags.Semicolons {
		merged.Semicolons = true
	}
	if flags.ExportAttributes {
		merged.ExportAttributes = true
	}
	return merged
}

// PrinterOptions derives the printer configuration this run should use.
func (cfg Config) PrinterOptions() printer.Options {
	dialect := printer.Modern
	if cfg.Classic {
		dialect = printer.Classic
	}
	return printer.Options{
		IndentWidth: cfg.IndentSize,
		Dialect:     dialect,
		Semicolons:  cfg.Semicolons,
	}
}
