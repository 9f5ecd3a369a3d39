// Package compiler wires one compilation run together: it orders the input
// units deterministically, hands each to its own Transformer (§5 "one
// transformer instance per compilation unit"), and renders the result with
// the printer under a single shared Options value.
package compiler

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/netlua/netlua/internal/oracle"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/internal/transform"
	"github.com/netlua/netlua/pkg/printer"
)

// Output is one compiled unit's result.
type Output struct {
	FileName string
	Source   string
}

// Run compiles every unit in units, in natural-sort order by file name
// (4.C.4's generic-arity suffixes and enum-export ordering both want the
// deterministic, not merely lexical, ordering a version-numbered source
// tree relies on — "File2.cs" before "File10.cs"). It fails fast: the
// first unit that aborts stops the run and its error is returned alone.
func Run(symbols oracle.SymbolInfo, meta oracle.Metadata, sources map[string]string, units []*source.Unit, opts printer.Options) ([]Output, error) {
	ordered := make([]*source.Unit, len(units))
	copy(ordered, units)
	sort.Slice(ordered, func(i, j int) bool {
		return natural.Less(ordered[i].FileName, ordered[j].FileName)
	})

	p := printer.New(opts)
	outputs := make([]Output, 0, len(ordered))
	for _, u := range ordered {
		text, err := CompileUnit(symbols, meta, sources[u.FileName], u, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.FileName, err)
		}
		outputs = append(outputs, Output{FileName: outputName(u.FileName), Source: text})
	}
	return outputs, nil
}

// CompileUnit lowers and renders a single unit.
func CompileUnit(symbols oracle.SymbolInfo, meta oracle.Metadata, src string, u *source.Unit, p *printer.Printer) (string, error) {
	tr := transform.New(symbols, meta, u.FileName, src)
	file, err := tr.TransformUnit(u)
	if err != nil {
		return "", err
	}
	return p.Print(file), nil
}

// outputName swaps the conventional L-src extension for the L-dst one,
// leaving any other extension (or extensionless name) untouched.
func outputName(fileName string) string {
	const srcExt, dstExt = ".cs", ".lua"
	if len(fileName) > len(srcExt) && fileName[len(fileName)-len(srcExt):] == srcExt {
		return fileName[:len(fileName)-len(srcExt)] + dstExt
	}
	return fileName + dstExt
}
