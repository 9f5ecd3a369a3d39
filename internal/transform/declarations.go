package transform

import (
	"strconv"
	"strings"

	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/token"
)

// transformType lowers one class/struct/interface declaration (§4.F) into
// the table-literal TypeDeclaration the printer hands to
// `System.define`/`System.namespace`.
func (t *Transformer) transformType(typ *source.TypeDecl) ast.Statement {
	return t.transformTypeNested(typ, "")
}

func (t *Transformer) transformTypeNested(typ *source.TypeDecl, outerName string) *ast.TypeDeclaration {
	pos := typ.Pos()
	typeScope := naming.NewChildScope(t.root)

	baseName := t.assignedName(typeScope, typ.Sym())
	qualified := baseName
	if outerName != "" {
		qualified = naming.QualifiedNestedName(outerName, baseName)
	}
	name := naming.ArritySuffixedName(qualified, typ.TypeParamCount)

	decl := ast.NewTypeDeclaration(pos, name)
	decl.TypeParamCount = typ.TypeParamCount
	decl.IsStaticClass = typ.IsStaticClass

	if typ.BaseType != nil {
		decl.BaseType = ast.NewIdentifier(pos, typ.BaseType.Name)
	}
	for _, iface := range typ.Interfaces {
		decl.Interfaces = append(decl.Interfaces, ast.NewIdentifier(pos, iface.Name))
	}

	for _, f := range typ.Fields {
		decl.Fields = append(decl.Fields, t.transformField(typeScope, f))
	}
	for _, p := range typ.Properties {
		if p.IsAutoProp {
			decl.Fields = append(decl.Fields, t.transformAutoProperty(typeScope, p))
			continue
		}
		decl.Methods = append(decl.Methods, t.transformPropertyAccessors(typeScope, qualified, p)...)
	}

	decl.Ctor = t.transformConstructors(typeScope, qualified, typ)
	if typ.StaticCtor != nil {
		popFn := t.st.pushFunction(&functionFrame{})
		popInfo := t.st.pushMethodInfo(qualified + ".<cctor>")
		body := t.transformBlock(typeScope, typ.StaticCtor)
		popInfo()
		popFn()
		decl.StaticCtor = ast.NewFunctionLiteral(pos, nil, false, body)
	}

	for _, m := range typ.Methods {
		decl.Methods = append(decl.Methods, t.transformMethod(typeScope, qualified, m))
	}
	for _, op := range typ.Operators {
		decl.Methods = append(decl.Methods, t.transformOperator(typeScope, qualified, op))
	}
	for _, ev := range typ.Events {
		decl.Events = append(decl.Events, t.transformEvent(typeScope, qualified, ev))
	}
	for _, nested := range typ.NestedTypes {
		decl.NestedTypes = append(decl.NestedTypes, t.transformTypeNested(nested, name))
	}

	return decl
}

// memberName resolves a member symbol's L-dst name, qualifying an explicit
// interface implementation with its interface name the way C#'s
// `IFoo.Bar() => ...` has to (L-dst tables are flat; there is no interface
// slot to hang an unqualified `Bar` from when a type implements two
// interfaces with colliding member names).
func (t *Transformer) memberName(scope *naming.Scope, sym *source.Symbol) string {
	if sym == nil {
		t.fail(token.Position{}, "internal: nil symbol for member")
	}
	name := t.assignedName(scope, sym)
	if sym.IsExplicitInterfaceImpl && sym.ExplicitInterfaceName != "" {
		prefix := strings.ReplaceAll(sym.ExplicitInterfaceName, ".", "_")
		name = prefix + "_" + name
	}
	return name
}

func (t *Transformer) transformField(scope *naming.Scope, f *source.FieldDecl) ast.FieldDecl {
	sym := f.Sym()
	name := t.memberName(scope, sym)
	var def ast.Expression
	if f.Default != nil {
		def = t.transformExpr(scope, f.Default)
	}
	return ast.FieldDecl{Name: name, IsStatic: sym != nil && sym.IsStatic, Default: def}
}

// transformAutoProperty lowers a field-like auto-property directly to a
// FieldDecl, since PropertyAdapterExpr renders it as `obj.X` rather than an
// accessor call (§4.C field-like vs accessor-backed).
func (t *Transformer) transformAutoProperty(scope *naming.Scope, p *source.PropertyDecl) ast.FieldDecl {
	sym := p.Sym()
	return ast.FieldDecl{Name: t.memberName(scope, sym), IsStatic: sym != nil && sym.IsStatic}
}

func (t *Transformer) transformPropertyAccessors(scope *naming.Scope, typeLabel string, p *source.PropertyDecl) []ast.MethodDecl {
	sym := p.Sym()
	baseName := t.memberName(scope, sym)
	isStatic := sym != nil && sym.IsStatic
	var methods []ast.MethodDecl

	if p.Getter != nil {
		pos := p.Getter.Pos()
		fnScope := naming.NewChildScope(scope)
		names, _, _ := t.buildParamList(fnScope, pos, "get_"+baseName, nil, !isStatic)
		popFn := t.st.pushFunction(&functionFrame{ReturnsValue: true})
		popInfo := t.st.pushMethodInfo(typeLabel + ".get_" + baseName)
		body := t.transformBlock(fnScope, p.Getter)
		popInfo()
		popFn()
		methods = append(methods, ast.MethodDecl{Name: "get_" + baseName, IsStatic: isStatic, Fn: ast.NewFunctionLiteral(pos, names, false, body)})
	}
	if p.Setter != nil {
		pos := p.Setter.Pos()
		fnScope := naming.NewChildScope(scope)
		setterParams := []source.ParamInfo{{Name: p.SetterParamName}}
		names, _, _ := t.buildParamList(fnScope, pos, "set_"+baseName, setterParams, !isStatic)
		popFn := t.st.pushFunction(&functionFrame{})
		popInfo := t.st.pushMethodInfo(typeLabel + ".set_" + baseName)
		body := t.transformBlock(fnScope, p.Setter)
		popInfo()
		popFn()
		methods = append(methods, ast.MethodDecl{Name: "set_" + baseName, IsStatic: isStatic, Fn: ast.NewFunctionLiteral(pos, names, false, body)})
	}
	return methods
}

func (t *Transformer) transformEvent(scope *naming.Scope, typeLabel string, e *source.EventDecl) ast.EventDecl {
	sym := e.Sym()
	name := t.memberName(scope, sym)
	if e.IsFieldLike {
		return ast.EventDecl{Name: name}
	}

	buildAccessor := func(verb string, paramName string, body *source.BlockStmt) *ast.FunctionLiteral {
		pos := body.Pos()
		fnScope := naming.NewChildScope(scope)
		names, _, _ := t.buildParamList(fnScope, pos, verb+"_"+name, []source.ParamInfo{{Name: paramName}}, true)
		popFn := t.st.pushFunction(&functionFrame{})
		popInfo := t.st.pushMethodInfo(typeLabel + "." + verb + "_" + name)
		block := t.transformBlock(fnScope, body)
		popInfo()
		popFn()
		return ast.NewFunctionLiteral(pos, names, false, block)
	}

	return ast.EventDecl{
		Name:       name,
		IsAccessor: true,
		AddFn:      buildAccessor("add", e.AddParamName, e.AddBody),
		RemoveFn:   buildAccessor("remove", e.RemoveParamName, e.RemoveBody),
	}
}

// transformConstructors lowers a type's constructor overload set (§4.F
// "Constructor selector"): a single unselected constructor becomes
// Ctor.Single, two or more become a 1-based Ctor.Overloads slice so the
// printer can emit the `__ctor__` array the ConstructorAdapter's Selector
// indexes into.
func (t *Transformer) transformConstructors(scope *naming.Scope, typeLabel string, typ *source.TypeDecl) ast.ConstructorGroup {
	if len(typ.Constructors) == 0 {
		return ast.ConstructorGroup{}
	}
	if len(typ.Constructors) == 1 && typ.Constructors[0].Selector == 0 {
		return ast.ConstructorGroup{Single: t.transformConstructor(scope, typeLabel, typ, typ.Constructors[0])}
	}

	overloads := make([]*ast.FunctionLiteral, len(typ.Constructors))
	for _, c := range typ.Constructors {
		idx := c.Selector - 1
		if idx < 0 || idx >= len(overloads) {
			t.fail(c.Pos(), "constructor selector %d out of range for %d overloads", c.Selector, len(overloads))
		}
		overloads[idx] = t.transformConstructor(scope, typeLabel, typ, c)
	}
	return ast.ConstructorGroup{Overloads: overloads}
}

func (t *Transformer) transformConstructor(scope *naming.Scope, typeLabel string, typ *source.TypeDecl, c *source.ConstructorDecl) *ast.FunctionLiteral {
	pos := c.Pos()
	fnScope := naming.NewChildScope(scope)
	label := typeLabel + ".<ctor#" + strconv.Itoa(c.Selector) + ">"
	names, isVararg, prelude := t.buildParamList(fnScope, pos, label, c.Params, true)

	popFn := t.st.pushFunction(&functionFrame{})
	popInfo := t.st.pushMethodInfo(label)

	var stmts []ast.Statement
	stmts = append(stmts, prelude...)
	if chain := t.constructorChainAdapter(fnScope, typ, c); chain != nil {
		stmts = append(stmts, chain)
	}
	body := t.transformBlock(fnScope, c.Body)
	stmts = append(stmts, body.Statements...)

	popInfo()
	popFn()
	return ast.NewFunctionLiteral(pos, names, isVararg, ast.NewBlock(pos, stmts...))
}

// constructorChainAdapter builds the ConstructorAdapter a constructor body
// is prefaced with: an explicit `: base(...)`/`: this(...)` call, or (when
// neither is written and the type has a base) the implicit call to the
// base's default constructor (§4.F, Testable Property 5). A type with no
// base and no explicit chain needs no adapter at all.
func (t *Transformer) constructorChainAdapter(scope *naming.Scope, typ *source.TypeDecl, c *source.ConstructorDecl) ast.Statement {
	pos := c.Pos()
	if c.ChainsTo != nil {
		target := ast.ChainBase
		if c.ChainsTo.Kind == source.ChainToThis {
			target = ast.ChainThis
		}
		args := make([]ast.Expression, len(c.ChainsTo.Args))
		for i, a := range c.ChainsTo.Args {
			args[i] = t.transformExpr(scope, a)
		}
		return ast.NewConstructorAdapter(pos, target, c.ChainsTo.Selector, "this", args...)
	}
	if typ.BaseType != nil {
		return ast.NewConstructorAdapter(pos, ast.ChainBase, 0, "this")
	}
	return nil
}

func (t *Transformer) transformMethod(scope *naming.Scope, typeLabel string, m *source.MethodDecl) ast.MethodDecl {
	pos := m.Pos()
	sym := m.Sym()
	name := t.memberName(scope, sym)
	isStatic := sym != nil && sym.IsStatic
	returnsValue := sym != nil && sym.Type != nil && sym.Type.Name != "System.Void"

	fnScope := naming.NewChildScope(scope)
	label := typeLabel + "." + name
	names, isVararg, prelude := t.buildParamList(fnScope, pos, label, m.Params, !isStatic)

	popFn := t.st.pushFunction(&functionFrame{ReturnsValue: returnsValue, IsIterator: m.IsIteratorMethod})
	popInfo := t.st.pushMethodInfo(label)

	var body *ast.Block
	switch {
	case m.Body == nil:
		body = ast.NewBlock(pos)
	case m.IsIteratorMethod:
		body = t.transformIteratorBody(fnScope, prelude, m.Body)
	default:
		inner := t.transformBlock(fnScope, m.Body)
		inner.Statements = append(prelude, inner.Statements...)
		body = inner
	}
	popInfo()
	popFn()

	fn := ast.NewFunctionLiteral(pos, names, isVararg, body)
	return ast.MethodDecl{Name: name, IsStatic: isStatic, Fn: fn}
}

// transformIteratorBody lowers a `yield`-bearing method body into a
// coroutine-backed enumerator (§supplement, iterator methods): the whole
// original body becomes the function run inside `coroutine.wrap`, so each
// `yield return` inside it (already lowered to `coroutine.yield` by the
// statement transformer) suspends the caller's `for ... in` loop exactly
// where the source method would have produced its next element.
func (t *Transformer) transformIteratorBody(scope *naming.Scope, prelude []ast.Statement, body *source.BlockStmt) *ast.Block {
	pos := body.Pos()
	inner := t.transformBlock(scope, body)
	inner.Statements = append(prelude, inner.Statements...)
	wrapFn := ast.NewFunctionLiteral(pos, nil, false, inner)
	wrapCall := ast.NewCallExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "coroutine"), "wrap", false), wrapFn)
	return ast.NewBlock(pos, ast.NewReturnStatement(pos, wrapCall))
}

func (t *Transformer) transformOperator(scope *naming.Scope, typeLabel string, op *source.OperatorDecl) ast.MethodDecl {
	pos := op.Pos()
	sym := op.Sym()
	name := t.memberName(scope, sym)

	fnScope := naming.NewChildScope(scope)
	label := typeLabel + "." + op.OperatorName
	names, isVararg, prelude := t.buildParamList(fnScope, pos, label, op.Params, false)

	popFn := t.st.pushFunction(&functionFrame{ReturnsValue: true})
	popInfo := t.st.pushMethodInfo(label)
	inner := t.transformBlock(fnScope, op.Body)
	inner.Statements = append(prelude, inner.Statements...)
	popInfo()
	popFn()

	fn := ast.NewFunctionLiteral(pos, names, isVararg, inner)
	return ast.MethodDecl{Name: name, IsStatic: true, Fn: fn, IsOperator: true}
}

// buildParamList assigns L-dst names for a parameter list, prepending an
// implicit "this" receiver for instance members. A trailing `params`
// parameter (§supplement "params arrays") is captured instead as a Lua
// vararg: the function itself becomes variadic and the first statement of
// its body rebinds the declared name to `System.Array({...})`, so the rest
// of the body sees an ordinary indexable array exactly as it would for any
// other array-typed parameter.
func (t *Transformer) buildParamList(scope *naming.Scope, pos token.Position, label string, params []source.ParamInfo, implicitThis bool) (names []string, isVararg bool, prelude []ast.Statement) {
	if implicitThis {
		names = append(names, "this")
	}
	for i, p := range params {
		sym := &source.Symbol{ID: "param$" + label + "$" + strconv.Itoa(i) + "$" + p.Name, Name: p.Name, Kind: source.KindParameter}
		bound := scope.Assign(sym)
		if p.IsParams && i == len(params)-1 {
			isVararg = true
			arr := ast.NewCallExpr(pos,
				ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "Array", false),
				ast.NewTableInitializer(pos, ast.TableItem{Kind: ast.TableItemSingle, Value: ast.NewVarargExpr(pos)}))
			prelude = append(prelude, ast.NewLocalVarDeclStatement(pos, []string{bound}, arr))
			continue
		}
		names = append(names, bound)
	}
	return
}
