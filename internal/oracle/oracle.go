// Package oracle implements the two external information sources the
// transformer consults instead of re-deriving facts from syntax (§6):
// the symbol-info oracle (symbol-of, type-of, converted-type-of,
// constant-value-of) and the metadata oracle (code-template-for). Both
// are read-only lookups computed ahead of time by the (out-of-scope)
// front end; this package only fixes the query interface the transformer
// is allowed to depend on, plus a JSON/XML-backed reference
// implementation for tests and tooling.
package oracle

import (
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/token"
)

// SymbolInfo answers the four symbol-info oracle queries of §6.
type SymbolInfo interface {
	// SymbolOf returns the Symbol attached to a node's source position and
	// declaring type, or nil if the node carries none.
	SymbolOf(nodeID string) *source.Symbol
	// TypeOf returns the static type of an expression node.
	TypeOf(nodeID string) *source.TypeRef
	// ConvertedTypeOf returns the type an expression is implicitly
	// converted to at its use site (e.g. a boxing or numeric widening
	// conversion the front end already resolved), or nil when the
	// expression's static type is used as-is.
	ConvertedTypeOf(nodeID string) *source.TypeRef
	// ConstantValueOf returns the compile-time constant value of an
	// expression and true, or ("", false) when the expression is not a
	// compile-time constant.
	ConstantValueOf(nodeID string) (string, bool)
}

// Metadata answers the metadata oracle's single query.
type Metadata interface {
	// CodeTemplateFor returns the override template text for a method
	// symbol and true, or ("", false) when no override applies and the
	// transformer should fall back to its default lowering (§6 "Missing →
	// default translation").
	CodeTemplateFor(sym *source.Symbol) (string, bool)
}

// Position resolves a node id back to its source position, for error
// reporting when an oracle query comes back empty where the transformer
// required an answer.
type Position interface {
	PositionOf(nodeID string) token.Position
}
