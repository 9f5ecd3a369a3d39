// Package source defines the external input contract the transformer
// consumes: a fully-resolved L-src semantic tree with a Symbol attached to
// every expression, declaration, and member reference (§3, §6). The L-src
// front end (lexing, parsing, name resolution, type checking) that produces
// this tree is out of scope — this package only fixes the shape the
// transformer is allowed to depend on.
package source

// SymbolKind classifies what a Symbol names.
type SymbolKind int

const (
	KindMethod SymbolKind = iota
	KindProperty
	KindEvent
	KindField
	KindParameter
	KindLocal
	KindType
	KindNamespace
)

// Accessibility mirrors L-src's accessibility levels; the transformer never
// branches on it (accessibility has no L-dst encoding) but it is part of
// the external contract and carried through for completeness.
type Accessibility int

const (
	Public Accessibility = iota
	Protected
	Private
	Internal
	ProtectedInternal
)

// ParamInfo describes one parameter of a method symbol.
type ParamInfo struct {
	Name       string
	Type       *TypeRef
	IsRef      bool
	IsOut      bool
	IsParams   bool // C#-style trailing variadic array parameter
	HasDefault bool
	// DefaultValue is the constant default expression, valid when
	// HasDefault is true (§4.D "Object creation", trailing-default elision).
	DefaultValue Expression
}

// TypeRef is a resolved reference to an L-src type, attached to every typed
// node so the transformer never has to re-derive a type from syntax.
type TypeRef struct {
	Name  string
	// TypeArgs holds the resolved type arguments for a generic
	// instantiation; empty for a non-generic type or an open generic
	// definition.
	TypeArgs []*TypeRef
	IsNullableValueType bool
	IsTuple             bool
	TupleElements       []*TypeRef
	IsArray             bool
	ArrayRank           int
	ArrayElement        *TypeRef
	IsEnum              bool
	// IsSubtypeOf reports, for the `is`-pattern constant-folding rule
	// (4.D), whether this type is statically known to be a subtype of
	// other. The oracle is responsible for the actual subtyping query;
	// this field is the transformer-facing result of that query.
	subtypeOf map[string]bool
}

// IsSubtypeOf reports whether t is a statically known subtype of name.
func (t *TypeRef) IsSubtypeOf(name string) bool {
	if t == nil {
		return false
	}
	return t.subtypeOf[name]
}

// WithSubtypeOf returns a copy of t recording that it is a subtype of name;
// used by oracle implementations and test fixtures to build TypeRef values.
func (t *TypeRef) WithSubtypeOf(name string) *TypeRef {
	cp := *t
	cp.subtypeOf = map[string]bool{}
	for k, v := range t.subtypeOf {
		cp.subtypeOf[k] = v
	}
	cp.subtypeOf[name] = true
	return &cp
}

// Symbol is the semantic annotation attached to every expression,
// declaration, and member reference in the input tree (§3).
type Symbol struct {
	// ID uniquely identifies this symbol within one compilation unit; the
	// naming service's assigned-name table is keyed on it.
	ID   string
	Name string
	Kind SymbolKind

	ContainingType string
	Accessibility  Accessibility
	IsStatic       bool

	// OverrideChain lists the symbol IDs this member overrides, nearest
	// first; empty for a non-overriding member.
	OverrideChain []string

	Params   []ParamInfo
	Type     *TypeRef // declared/return type
	TypeArgs []*TypeRef

	FromReferencedBinary bool // true when the symbol originates outside user code

	IsMethod                bool
	IsExtension             bool
	IsConstructor           bool
	IsOperator              bool
	OperatorName            string // e.g. "op_Addition", set when IsOperator
	IsExplicitInterfaceImpl bool
	ExplicitInterfaceName   string
	IsMain                  bool
	// IsAutoProperty marks a KindProperty symbol with no user-written
	// accessor body, letting use sites render `obj.X` instead of
	// `obj:get_X()`/`obj:set_X(v)` (§4.C field-like vs accessor-backed).
	IsAutoProperty bool
	// ConstructorSelector is the 1-based overload index (§4.F "Constructor
	// selector"), assigned by the oracle in source order.
	ConstructorSelector int
}
