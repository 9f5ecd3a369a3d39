// Package printer renders an L-dst AST (pkg/ast) to text. Rendering is a
// single pass, pure function of (AST, Options): the same tree printed twice
// with the same options is byte-identical (§4.B, Testable Property 1). The
// printer never renames an identifier — that is the naming service's job
// (internal/naming) — and never rewrites an adapter node's shape; it only
// chooses surface syntax for operators that differ between dialects.
package printer

import (
	"strconv"
	"strings"

	"github.com/netlua/netlua/pkg/ast"
)

// Dialect selects the L-dst surface syntax for constructs that vary between
// Lua revisions (4.B).
type Dialect int

const (
	// Modern targets a goto/label and bitwise-operator capable dialect
	// (Lua 5.3+): integer division prints as `//`, bitwise operators print
	// as symbols, goto/label print directly.
	Modern Dialect = iota
	// Classic targets an older dialect lacking native bitwise operators and
	// integer division: both lower to `System.*` runtime helper calls, and
	// label names are prefixed to dodge older reserved-identifier quirks.
	Classic
)

// Options configures one Print invocation.
type Options struct {
	// IndentWidth is the number of spaces per nesting level. Default 2.
	IndentWidth int
	Dialect     Dialect
	// Semicolons, when true, terminates every simple statement with `;`.
	Semicolons bool
	// Compact removes the spacing DetailedPrinter inserts around binary
	// operators, `=`, and after commas.
	Compact bool
}

// DefaultOptions is the DetailedPrinter configuration: two-space indent,
// modern dialect, no semicolons, spaced operators.
func DefaultOptions() Options {
	return Options{IndentWidth: 2, Dialect: Modern}
}

// CompactPrinter returns a Printer with all optional whitespace removed.
func CompactPrinter() *Printer {
	opts := DefaultOptions()
	opts.Compact = true
	return New(opts)
}

// DetailedPrinter returns a Printer using DefaultOptions.
func DetailedPrinter() *Printer {
	return New(DefaultOptions())
}

// Print renders file using DefaultOptions.
func Print(file *ast.File) string {
	return DetailedPrinter().Print(file)
}

// Printer renders an L-dst AST to text under a fixed Options value.
type Printer struct {
	opts Options
}

// New creates a Printer with explicit options.
func New(opts Options) *Printer {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	return &Printer{opts: opts}
}

// Print renders file to its final text form.
func (p *Printer) Print(file *ast.File) string {
	w := &writer{opts: p.opts}
	w.statements(file.Statements)
	return w.String()
}

// writer accumulates output and tracks indentation. It is the printer's only
// mutable state; nothing about an AST node is ever changed while printing.
type writer struct {
	sb     strings.Builder
	opts   Options
	indent int
	// blankRun records whether the previous statement was a
	// BlankLinesStatement, so two in a row coalesce rather than stack (4.B).
	blankRun bool
}

func (w *writer) String() string { return w.sb.String() }

func (w *writer) writeIndent() {
	w.sb.WriteString(strings.Repeat(" ", w.indent*w.opts.IndentWidth))
}

func (w *writer) line(s string) {
	w.writeIndent()
	w.sb.WriteString(s)
	if w.opts.Semicolons && s != "" && needsSemicolon(s) {
		w.sb.WriteString(";")
	}
	w.sb.WriteString("\n")
}

// needsSemicolon excludes block-terminating keywords and labels/comments,
// which never take a trailing semicolon even under the semicolon policy.
func needsSemicolon(s string) bool {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(trimmed, "--"):
		return false
	case strings.HasPrefix(trimmed, "::"):
		return false
	case trimmed == "end" || trimmed == "break" || strings.HasPrefix(trimmed, "goto "):
		return false
	}
	return true
}

func (w *writer) sp() string {
	if w.opts.Compact {
		return ""
	}
	return " "
}

func (w *writer) commaSep() string {
	if w.opts.Compact {
		return ","
	}
	return ", "
}

func quoteLuaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func itoa(n int) string { return strconv.Itoa(n) }
