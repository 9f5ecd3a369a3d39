package ast

import "github.com/netlua/netlua/pkg/token"

func (*TypeDeclaration) statementNode()     {}
func (*TypeDeclaration) declarationNode()   {}
func (*LocalFunctionDecl) statementNode()   {}
func (*LocalFunctionDecl) declarationNode() {}

// FieldDecl is a plain field-like member: either a real field, or a
// property/event the declaration transformer chose to keep field-like
// because it has no explicit accessors (4.F).
type FieldDecl struct {
	Name      string
	IsStatic  bool
	Default   Expression // nil when the field has no initializer
}

// MethodDecl is an instance or static method, including property
// accessors (`get_X`/`set_X`) and operator methods (`op_Addition`, ...).
type MethodDecl struct {
	Name     string
	IsStatic bool
	Fn       *FunctionLiteral
	// IsOperator marks an operator method. The printer renders it like any
	// other method entry; no `__operators__` table is emitted.
	IsOperator bool
}

// ConstructorGroup is the `__ctor__` slot: either a single function (Single
// non-nil) or an ordered list of overloads (Overloads, 1-based by position).
type ConstructorGroup struct {
	Single    *FunctionLiteral
	Overloads []*FunctionLiteral
}

// EventDecl is a field-like or accessor-backed event member (4.F).
type EventDecl struct {
	Name       string
	IsAccessor bool
	AddFn      *FunctionLiteral // non-nil only when IsAccessor
	RemoveFn   *FunctionLiteral // non-nil only when IsAccessor
}

// TypeDeclaration is a class/struct/interface/enum member collection
// emitted as a table literal and handed to `System.namespace`/`System.class`
// (4.F). Generic type parameters only affect naming (arity suffix, 4.C.4);
// the declaration itself carries no type-parameter nodes.
type TypeDeclaration struct {
	base
	Name           string
	TypeParamCount int
	BaseType       Expression // nil for a type with no explicit base
	Interfaces     []Expression
	Fields         []FieldDecl
	Methods        []MethodDecl
	Ctor           ConstructorGroup
	StaticCtor     *FunctionLiteral
	Events         []EventDecl
	NestedTypes    []*TypeDeclaration
	IsStaticClass  bool
}

func NewTypeDeclaration(pos token.Position, name string) *TypeDeclaration {
	return &TypeDeclaration{base: base{pos}, Name: name}
}

// LocalFunctionDecl is a single local function, or one of a mutually
// recursive group pre-declared together so every member can see its
// siblings (4.E "Local functions").
type LocalFunctionDecl struct {
	base
	Name string
	Fn   *FunctionLiteral
	// Group lists the sibling names this declaration was pre-declared
	// alongside (`local a, b`) when part of a mutually recursive set; nil
	// for a standalone local function.
	Group []string
}

func NewLocalFunctionDecl(pos token.Position, name string, fn *FunctionLiteral) *LocalFunctionDecl {
	return &LocalFunctionDecl{base: base{pos}, Name: name, Fn: fn}
}
