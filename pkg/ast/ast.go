// Package ast defines the L-dst abstract syntax tree: the closed set of
// statement, expression, and declaration nodes the transformer (internal/transform)
// can produce and the renderer (pkg/printer) can emit. The tree is acyclic and
// built bottom-up during a single transformer traversal; once handed to the
// renderer it is never mutated again (§3 Lifecycle, §9 Cyclic AST references).
//
// There is no open extension point: every concrete node is a variant of
// exactly one of Expression, Statement, or Declaration, dispatched by type
// switch rather than virtual calls (§9 Deep inheritance of AST nodes).
package ast

import "github.com/netlua/netlua/pkg/token"

// Node is the base interface every AST node implements.
type Node interface {
	// Pos returns the L-src source position this node was produced from,
	// for diagnostics; it has no bearing on rendering.
	Pos() token.Position
	node()
}

// Expression is any node that renders as an L-dst value-producing expression.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that renders as one or more L-dst statement lines.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a top-level or nested type/function declaration.
type Declaration interface {
	Statement
	declarationNode()
}

// base embeds a Position into every concrete node without repeating the
// field and its accessor by hand.
type base struct {
	Position token.Position
}

func (b base) Pos() token.Position { return b.Position }
func (base) node()                 {}

// File is the root of one rendered compilation unit: a flat list of
// statements (declarations interleaved with top-level initialization code
// and comments), rendered in order.
type File struct {
	base
	Statements []Statement
}

func NewFile(pos token.Position, stmts ...Statement) *File {
	return &File{base: base{pos}, Statements: stmts}
}
