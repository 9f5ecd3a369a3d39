package source

// Declaration is a member or type declaration in the input tree.
type Declaration interface {
	Node
	declNode()
}

func (*MethodDecl) declNode()      {}
func (*ConstructorDecl) declNode() {}
func (*PropertyDecl) declNode()    {}
func (*EventDecl) declNode()       {}
func (*FieldDecl) declNode()       {}
func (*OperatorDecl) declNode()    {}
func (*TypeDecl) declNode()        {}

// MethodDecl is one ordinary method, including extension methods (IsExtension
// on the attached Symbol) and explicit interface implementations.
type MethodDecl struct {
	nodeBase
	Name   string
	Params []ParamInfo
	Body   *BlockStmt // nil for an abstract/interface member
	// IsIteratorMethod is set when the method body contains `yield`,
	// requiring the coroutine-backed iterator lowering (§supplement).
	IsIteratorMethod bool
}

// ConstructorDecl is one overload of a type's constructor set. Selector
// mirrors Symbol.ConstructorSelector for convenience at the declaration site.
type ConstructorDecl struct {
	nodeBase
	Params   []ParamInfo
	Body     *BlockStmt
	Selector int
	// ChainsTo records an explicit `: base(...)`/`: this(...)` initializer,
	// nil when the constructor chains to nothing explicit (4.F).
	ChainsTo *ConstructorChain
}

// ChainKind distinguishes `: base(...)` from `: this(...)`.
type ChainKind int

const (
	ChainToBase ChainKind = iota
	ChainToThis
)

type ConstructorChain struct {
	Kind     ChainKind
	Args     []Expression
	Selector int // resolved target overload selector, for ChainToThis
}

// PropertyDecl models both auto-properties (Getter/Setter nil, backed by a
// compiler-synthesized field) and accessor-backed properties (Getter/Setter
// bodies present) — §4.C "field-like vs accessor-backed" distinction.
type PropertyDecl struct {
	nodeBase
	Name       string
	IsAutoProp bool
	Getter     *BlockStmt // nil when absent (write-only) or auto
	Setter     *BlockStmt // nil when absent (read-only) or auto
	SetterParamName string // name bound to the assigned value inside Setter
}

// EventDecl models a field-like event (compiler-synthesized add/remove) or
// an explicit add/remove accessor pair.
type EventDecl struct {
	nodeBase
	Name        string
	IsFieldLike bool
	AddBody     *BlockStmt
	RemoveBody  *BlockStmt
	AddParamName    string
	RemoveParamName string
}

type FieldDecl struct {
	nodeBase
	Name    string
	Default Expression // nil when the field has no initializer
}

// OperatorDecl is an operator overload (`public static T operator +(...)`),
// lowered to an ordinary static method (no `__operators__` table is
// emitted).
type OperatorDecl struct {
	nodeBase
	OperatorName string // e.g. "op_Addition"
	Params       []ParamInfo
	Body         *BlockStmt
}

// TypeDecl is a class/struct/interface declaration. Nested types and the
// static constructor are carried directly so the transformer can process a
// whole type in one pass.
type TypeDecl struct {
	nodeBase
	Name           string
	TypeParamCount int
	BaseType       *TypeRef
	Interfaces     []*TypeRef
	Fields         []*FieldDecl
	Properties     []*PropertyDecl
	Events         []*EventDecl
	Methods        []*MethodDecl
	Operators      []*OperatorDecl
	Constructors   []*ConstructorDecl
	StaticCtor     *BlockStmt
	NestedTypes    []*TypeDecl
	IsStaticClass  bool
	IsInterface    bool
}

// Unit is one compiled source unit (roughly, one L-src file): a namespace's
// worth of top-level type declarations plus the using directives the oracle
// already resolved away. It is the top-level value the compiler pipeline
// feeds to the transformer.
type Unit struct {
	FileName string
	Types    []*TypeDecl
}

// Pos/Sym for Unit are not meaningful (it has no single source position);
// Unit therefore does not implement Node, and callers iterate Unit.Types
// directly.
