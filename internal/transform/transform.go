// Package transform implements the Expression, Statement, and Declaration
// Transformers (§4.D, §4.E, §4.F): the single recursive-descent walk that
// lowers a fully-resolved L-src semantic tree (package source) into an
// L-dst AST (package ast). It is the only package that consults the
// symbol-info and metadata oracles (package oracle) and the naming
// service (package naming); every other package in this module is either
// upstream of it (source, oracle, naming) or downstream (printer).
package transform

import (
	"fmt"
	"strconv"

	"github.com/netlua/netlua/internal/errors"
	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/oracle"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/token"
)

// Transformer lowers one compilation unit at a time. It is not safe for
// concurrent use by multiple goroutines on the same unit, but distinct
// Transformers (one per unit) are fully independent (§5, "one transformer
// instance per compilation unit; no shared mutable state across units").
type Transformer struct {
	symbols oracle.SymbolInfo
	meta    oracle.Metadata
	file    string
	source  string

	root     *naming.Scope
	st       *stacks
	tempSeq  int

	// pendingEnumExports collects enum type names reached only through a
	// `typeof` expression, so the unit still emits their name table even
	// when no declaration in this unit otherwise references them (§4.D
	// "typeof").
	pendingEnumExports []string
}

// New creates a Transformer for one unit. symbols and meta are queried for
// every expression and method the transformer visits; file and src are
// used only to annotate CompilerError with source context (§7).
func New(symbols oracle.SymbolInfo, meta oracle.Metadata, file, src string) *Transformer {
	return &Transformer{
		symbols: symbols,
		meta:    meta,
		file:    file,
		source:  src,
		root:    naming.NewScope(),
		st:      newStacks(),
	}
}

// abortSignal is panicked with by fail; TransformUnit recovers it and
// returns the carried *errors.CompilerError. Unwinding through the panic
// runs every open defer, so deferred pops happen, but pops written as
// direct calls do not, and those frames stay on the stacks after an abort
// (see stacks). defer/recover unwinds through arbitrarily deep recursion
// without every caller re-checking an error return.
type abortSignal struct {
	err *errors.CompilerError
}

func (t *Transformer) fail(pos token.Position, format string, args ...any) {
	err := errors.NewCompilerError(pos, fmt.Sprintf(format, args...), t.source, t.file)
	err = err.WithTrace(t.st.trace())
	panic(abortSignal{err})
}

// TransformUnit lowers every top-level type in u into one ast.File. It
// never returns a partial file: any failure aborts the whole unit and
// surfaces as the returned error (§7 fail-fast).
func (t *Transformer) TransformUnit(u *source.Unit) (file *ast.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(abortSignal)
			if !ok {
				panic(r)
			}
			file, err = nil, sig.err
		}
	}()

	pos := token.Position{Line: 1, Column: 1}
	var stmts []ast.Statement
	for _, typ := range u.Types {
		stmts = append(stmts, t.transformType(typ))
	}
	for _, enum := range t.pendingEnumExports {
		call := ast.NewCallExpr(pos,
			ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "exportEnum", true),
			ast.NewIdentifier(pos, enum))
		stmts = append(stmts, ast.NewExprStatement(pos, call))
	}
	return ast.NewFile(pos, stmts...), nil
}

// newTemp mints a fresh synthetic local name, disambiguated against
// everything visible in scope, for a transformer-introduced temporary
// (conditional-access receivers, tuple-assignment staging, continue/goto-
// case flag variables).
func (t *Transformer) newTemp(scope *naming.Scope, hint string) string {
	t.tempSeq++
	sym := &source.Symbol{ID: "__tmp$" + strconv.Itoa(t.tempSeq), Name: "__" + hint, Kind: source.KindLocal}
	return scope.Assign(sym)
}

// assignedName resolves sym's L-dst name in scope, assigning it on first
// use (§4.C, write-once table).
func (t *Transformer) assignedName(scope *naming.Scope, sym *source.Symbol) string {
	if sym == nil {
		t.fail(token.Position{}, "internal: nil symbol reached naming service")
	}
	return scope.Assign(sym)
}
