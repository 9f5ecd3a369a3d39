// Package cmd implements netluac's command-line driver (§6): flag parsing,
// project-file merging, and orchestration of the oracle/transform/printer
// pipeline. Resolving L-src source into the Symbol-annotated tree that
// pipeline consumes is the front end's job, which this module does not
// implement (§ Non-goals) — frontEnd below is the seam a full build links
// against.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlua/netlua/internal/config"
)

var flags config.Config
var projectFile string

var rootCmd = &cobra.Command{
	Use:   "netluac",
	Short: "Translate an L-src (.NET-family) source tree into L-dst (Lua-family) script",
	RunE:  runCompile,
}

func init() {
	fl := rootCmd.Flags()
	fl.StringVarP(&flags.SourceDir, "source-dir", "s", "", "source directory to compile")
	fl.StringVarP(&flags.OutputDir, "output-dir", "d", "", "directory to write generated .lua files to")
	fl.StringSliceVarP(&flags.Libs, "lib", "l", nil, "referenced library assembly path (repeatable)")
	fl.StringSliceVarP(&flags.MetaFiles, "meta", "m", nil, "code-template XML metadata file (repeatable)")
	fl.StringVar(&flags.CscFlags, "csc", "", "flags passed through to the front end's compiler invocation")
	fl.BoolVarP(&flags.Classic, "classic", "c", false, "target the Classic L-dst dialect instead of Modern")
	fl.IntVarP(&flags.IndentSize, "indent", "i", 0, "spaces per indent level (default 2)")
	fl.BoolVar(&flags.Semicolons, "sem", false, "terminate simple statements with a semicolon")
	fl.BoolVarP(&flags.ExportAttributes, "export-attributes", "a", false, "re-emit front-end attribute metadata as a runtime-inspectable table")
	fl.StringVar(&projectFile, "project", "", "project file to merge flags over (default ./netluac.yaml if present)")
}

// Execute runs the root command, returning a non-nil error on any failure
// so main can map it to the documented exit code -1 (§6).
func Execute() error {
	return rootCmd.Execute()
}

func resolveConfig() (config.Config, error) {
	base := config.Default()
	path := projectFile
	if path == "" {
		path = "netluac.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading project file %s: %w", path, err)
		}
		base = loaded
	} else if projectFile != "" {
		return config.Config{}, fmt.Errorf("project file %s: %w", path, err)
	}
	return base.Merge(flags), nil
}
