package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netlua/netlua/internal/compiler"
	"github.com/netlua/netlua/internal/config"
	"github.com/netlua/netlua/internal/oracle"
	"github.com/netlua/netlua/internal/source"
)

// frontEnd produces the Symbol-annotated units and metadata the transform
// pipeline consumes from a resolved configuration. Lexing, parsing, name
// resolution, and type checking of L-src source are out of this module's
// scope; a full netluac build links a front end that sets this variable
// before cmd.Execute runs.
var frontEnd = func(cfg config.Config) ([]*source.Unit, map[string]string, oracle.SymbolInfo, error) {
	return nil, nil, nil, fmt.Errorf("no L-src front end linked into this build (source-dir %q)", cfg.SourceDir)
}

func runCompile(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.SourceDir == "" {
		return fmt.Errorf("source-dir is required (-s)")
	}

	meta, err := loadMetadata(cfg.MetaFiles)
	if err != nil {
		return err
	}

	units, sources, symbols, err := frontEnd(cfg)
	if err != nil {
		return err
	}

	outputs, err := compiler.Run(symbols, meta, sources, units, cfg.PrinterOptions())
	if err != nil {
		return err
	}

	for _, out := range outputs {
		dest := filepath.Join(cfg.OutputDir, out.FileName)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(out.Source), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func loadMetadata(paths []string) (*oracle.XMLMetadata, error) {
	docs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading meta file %s: %w", p, err)
		}
		docs = append(docs, data)
	}
	return oracle.LoadXMLMetadata(docs...)
}
