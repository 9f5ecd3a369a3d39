package transform

import (
	"fmt"
	"strings"

	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/internal/template"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/token"
)

var binaryOps = map[source.BinaryOperator]ast.BinaryOp{
	source.BinAdd:       ast.OpAdd,
	source.BinSub:       ast.OpSub,
	source.BinMul:       ast.OpMul,
	source.BinDiv:       ast.OpDiv,
	source.BinIntDiv:    ast.OpFloorDiv,
	source.BinMod:       ast.OpMod,
	source.BinConcat:    ast.OpConcat,
	source.BinEq:        ast.OpEq,
	source.BinNotEq:     ast.OpNotEq,
	source.BinLess:      ast.OpLess,
	source.BinGreater:   ast.OpGreater,
	source.BinLessEq:    ast.OpLessEq,
	source.BinGreaterEq: ast.OpGreaterEq,
	source.BinLogAnd:    ast.OpAnd,
	source.BinLogOr:     ast.OpOr,
	source.BinBitAnd:    ast.OpBAnd,
	source.BinBitOr:     ast.OpBOr,
	source.BinBitXor:    ast.OpBXor,
	source.BinShl:       ast.OpShl,
	source.BinShr:       ast.OpShr,
}

var unaryOps = map[source.UnaryOperator]ast.UnaryOp{
	source.UnNeg:    ast.OpNeg,
	source.UnNot:    ast.OpNot,
	source.UnBitNot: ast.OpBNot,
}

// transformExpr lowers one L-src expression to its L-dst rendering (§4.D).
func (t *Transformer) transformExpr(scope *naming.Scope, e source.Expression) ast.Expression {
	pos := e.Pos()
	switch n := e.(type) {
	case *source.IdentifierExpr:
		return t.transformIdentifier(scope, n)

	case *source.LiteralExpr:
		return t.transformLiteral(n)

	case *source.BinaryExpr:
		op, ok := binaryOps[n.Op]
		if !ok {
			t.fail(pos, "unsupported binary operator %q", n.Op)
		}
		return ast.NewBinaryExpr(pos, t.transformExpr(scope, n.Left), op, t.transformExpr(scope, n.Right))

	case *source.UnaryExpr:
		op, ok := unaryOps[n.Op]
		if !ok {
			t.fail(pos, "unsupported unary operator %q", n.Op)
		}
		return ast.NewUnaryExpr(pos, op, t.transformExpr(scope, n.Operand))

	case *source.MemberExpr:
		return t.transformMember(scope, n)

	case *source.InvocationExpr:
		return t.transformInvocation(scope, n)

	case *source.ObjectCreationExpr:
		return t.transformObjectCreation(scope, n)

	case *source.DelegateCreationExpr:
		// Delegates are plain functions in L-dst: identity on the inner
		// expression (§4.D "Delegate construction").
		return t.transformExpr(scope, n.Inner)

	case *source.ConditionalAccessExpr:
		return t.transformConditionalAccess(scope, n)

	case *source.InterpolatedStringExpr:
		return t.transformInterpolatedString(scope, n)

	case *source.TypeOfExpr:
		return t.transformTypeOf(n)

	case *source.SizeOfExpr:
		return ast.NewLiteral(pos, ast.LiteralVerbatim, fmt.Sprintf("%d", n.ConstantValue))

	case *source.DefaultExpr:
		return t.transformDefault(n)

	case *source.TupleExpr:
		return t.transformTupleValue(scope, n)

	case *source.IsPatternExpr:
		return t.transformIsPattern(scope, n)

	case *source.LambdaExpr:
		return t.transformLambda(scope, n)

	case *source.NullCoalesceExpr:
		left := t.transformExpr(scope, n.Left)
		right := t.transformExpr(scope, n.Right)
		// `a ?? b` and Lua's `or` agree whenever `a` cannot be the boolean
		// `false` — true for every L-src reference type. The operand's type
		// is not checked here: a left operand that evaluates to `false`
		// yields `b`.
		return ast.NewBinaryExpr(pos, left, ast.OpOr, right)

	default:
		t.fail(pos, "unsupported expression node %T", e)
		return nil
	}
}

func (t *Transformer) transformIdentifier(scope *naming.Scope, n *source.IdentifierExpr) ast.Expression {
	sym := n.Sym()
	if sym == nil {
		return ast.NewIdentifier(n.Pos(), n.Name)
	}
	return ast.NewIdentifier(n.Pos(), t.assignedName(scope, sym))
}

func (t *Transformer) transformLiteral(n *source.LiteralExpr) ast.Expression {
	switch n.Kind {
	case source.LitString:
		return ast.NewLiteral(n.Pos(), ast.LiteralString, quoteLua(n.Text))
	case source.LitChar:
		return ast.NewLiteral(n.Pos(), ast.LiteralChar, quoteLua(n.Text))
	case source.LitNumber:
		return ast.NewLiteral(n.Pos(), ast.LiteralNumber, n.Text)
	case source.LitBool:
		return ast.NewLiteral(n.Pos(), ast.LiteralBool, n.Text)
	case source.LitNull:
		return ast.NilLiteral(n.Pos())
	default:
		t.fail(n.Pos(), "unsupported literal kind %d", n.Kind)
		return nil
	}
}

func quoteLua(text string) string {
	if strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "'") {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}

// transformMember lowers a property/field/method-group member access. A
// property-kind symbol becomes a PropertyAdapterExpr so the surrounding
// assignment/read context decides field vs accessor rendering (§4.F).
func (t *Transformer) transformMember(scope *naming.Scope, n *source.MemberExpr) ast.Expression {
	obj := t.transformExpr(scope, n.Object)
	sym := n.Sym()
	if sym != nil && sym.Kind == source.KindProperty {
		accessor := propertyIsAccessorBacked(sym)
		return ast.NewPropertyAdapterExpr(n.Pos(), obj, propertyFieldName(sym), accessor)
	}
	name := n.Name
	if sym != nil {
		name = t.assignedName(scope, sym)
	}
	return ast.NewMemberAccessExpr(n.Pos(), obj, name, false)
}

// propertyIsAccessorBacked decides field-like vs accessor-backed for a
// property symbol (§4.C). Auto-properties (IsAutoProperty, no user-written
// accessor body) render as a plain field; everything else, including every
// symbol from a referenced binary (its accessor bodies are not in this
// compilation, so field-like rendering cannot be confirmed), renders as an
// accessor pair.
func propertyIsAccessorBacked(sym *source.Symbol) bool {
	return sym.FromReferencedBinary || !sym.IsAutoProperty
}

func propertyFieldName(sym *source.Symbol) string {
	return sym.Name
}

func (t *Transformer) transformInvocation(scope *naming.Scope, n *source.InvocationExpr) ast.Expression {
	sym := n.Sym()

	if sym != nil && t.meta != nil {
		if tmpl, ok := t.meta.CodeTemplateFor(sym); ok {
			return t.expandTemplate(scope, n, sym, tmpl)
		}
	}

	args := make([]ast.Expression, len(n.Args))
	for i, a := range n.Args {
		args[i] = t.transformExpr(scope, a)
	}

	switch callee := n.Callee.(type) {
	case *source.MemberExpr:
		obj := t.transformExpr(scope, callee.Object)
		name := callee.Name
		if callee.Sym() != nil {
			name = t.assignedName(scope, callee.Sym())
		}
		if sym != nil && sym.IsExtension && sym.ContainingType != "" {
			// Extension methods are static functions of their declaring
			// type: `TypeName.Method(receiver, args...)`.
			typeRef := ast.NewIdentifier(n.Pos(), sym.ContainingType)
			return ast.NewCallExpr(n.Pos(), ast.NewMemberAccessExpr(n.Pos(), typeRef, name, false), append([]ast.Expression{obj}, args...)...)
		}
		return ast.NewCallExpr(n.Pos(), ast.NewMemberAccessExpr(n.Pos(), obj, name, true), args...)
	default:
		return ast.NewCallExpr(n.Pos(), t.transformExpr(scope, n.Callee), args...)
	}
}

func (t *Transformer) expandTemplate(scope *naming.Scope, n *source.InvocationExpr, sym *source.Symbol, tmpl string) ast.Expression {
	var this string
	var params []string
	var rest string

	callee, _ := n.Callee.(*source.MemberExpr)
	if callee != nil {
		this = renderExpr(t.transformExpr(scope, callee.Object))
	}

	fixedCount := len(sym.Params)
	hasParamsArray := fixedCount > 0 && sym.Params[fixedCount-1].IsParams
	if hasParamsArray {
		fixedCount--
	}
	for i, a := range n.Args {
		rendered := renderExpr(t.transformExpr(scope, a))
		if i < fixedCount {
			params = append(params, rendered)
		} else {
			if rest != "" {
				rest += ", "
			}
			rest += rendered
		}
	}

	var typeArgs []string
	for _, ta := range sym.TypeArgs {
		typeArgs = append(typeArgs, ta.Name)
	}

	text, err := template.Render(tmpl, template.Args{This: this, Params: params, Rest: rest, TypeArgs: typeArgs}, n.Pos(), t.file)
	if err != nil {
		t.fail(n.Pos(), "%s", err.Error())
	}
	return ast.NewLiteral(n.Pos(), ast.LiteralVerbatim, text)
}

// renderExpr stringifies an already-lowered ast.Expression for splicing
// into a code-template substitution. Code templates only ever receive
// simple operand expressions (identifiers, literals, member/index chains,
// nested calls) by construction of the front end, so a minimal renderer
// covering those shapes is sufficient; anything else is a contract
// violation the CLI's own renderer would also reject.
func renderExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return n.Text
	case *ast.MemberAccessExpr:
		sep := "."
		if n.IsColonCall {
			sep = ":"
		}
		return renderExpr(n.Object) + sep + n.Name
	case *ast.IndexExpr:
		return renderExpr(n.Object) + "[" + renderExpr(n.Index) + "]"
	case *ast.CallExpr:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = renderExpr(a)
		}
		return renderExpr(n.Callee) + "(" + strings.Join(parts, ", ") + ")"
	case *ast.ParenExpr:
		return "(" + renderExpr(n.Inner) + ")"
	default:
		return fmt.Sprintf("%v", e)
	}
}

// transformObjectCreation lowers `new T(args)` (§4.D "Object creation").
func (t *Transformer) transformObjectCreation(scope *naming.Scope, n *source.ObjectCreationExpr) ast.Expression {
	sym := n.Sym()
	args := t.objectCreationArgs(scope, n, sym)

	var call ast.Expression
	switch {
	case sym != nil && t.meta != nil:
		if tmpl, ok := t.meta.CodeTemplateFor(sym); ok {
			var params []string
			for _, a := range args {
				params = append(params, renderExpr(a))
			}
			text, err := template.Render(tmpl, template.Args{Params: params}, n.Pos(), t.file)
			if err != nil {
				t.fail(n.Pos(), "%s", err.Error())
			}
			call = ast.NewLiteral(n.Pos(), ast.LiteralVerbatim, text)
		}
	case sym != nil && sym.Type != nil && sym.Type.IsNullableValueType:
		if len(n.Args) == 1 {
			return t.transformExpr(scope, n.Args[0])
		}
	case sym != nil && sym.Type != nil && sym.Type.IsTuple:
		call = tupleCreateCall(n.Pos(), args)
	}

	if call == nil {
		typeName := t.objectCreationTypeName(n)
		callee := ast.Expression(ast.NewIdentifier(n.Pos(), typeName))
		if sym != nil && sym.ConstructorSelector > 1 {
			callee = ast.NewMemberAccessExpr(n.Pos(), ast.NewIdentifier(n.Pos(), typeName), fmt.Sprintf("__ctor__%d", sym.ConstructorSelector), false)
		}
		call = ast.NewCallExpr(n.Pos(), callee, args...)
	}

	if n.Initializer == nil {
		return call
	}
	return t.transformObjectInitializer(scope, n.Pos(), call, n.Initializer)
}

func (t *Transformer) objectCreationArgs(scope *naming.Scope, n *source.ObjectCreationExpr, sym *source.Symbol) []ast.Expression {
	args := make([]ast.Expression, len(n.Args))
	for i, a := range n.Args {
		args[i] = t.transformExpr(scope, a)
	}
	if sym == nil {
		return args
	}
	// Drop trailing arguments equal to their parameter's default — the
	// overload index is already frozen, so omitting them cannot change
	// resolution (§4.D).
	for len(args) > 0 {
		i := len(args) - 1
		if i >= len(sym.Params) || !sym.Params[i].HasDefault {
			break
		}
		if sym.Params[i].DefaultValue == nil {
			break
		}
		if !exprEqualText(n.Args[i], sym.Params[i].DefaultValue) {
			break
		}
		args = args[:i]
	}
	return args
}

// exprEqualText is a structural-equality approximation sufficient for the
// common case of a literal default; anything else is conservatively
// treated as unequal so no argument is dropped incorrectly.
func exprEqualText(a, b source.Expression) bool {
	la, aok := a.(*source.LiteralExpr)
	lb, bok := b.(*source.LiteralExpr)
	return aok && bok && la.Kind == lb.Kind && la.Text == lb.Text
}

func (t *Transformer) objectCreationTypeName(n *source.ObjectCreationExpr) string {
	if id, ok := n.Type.(*source.IdentifierExpr); ok {
		if sym := id.Sym(); sym != nil {
			return t.assignedName(t.root, sym)
		}
		return id.Name
	}
	t.fail(n.Pos(), "object creation target is not a named type")
	return ""
}

// tupleCreateCall builds `System.ValueTuple.create{e1, e2, ...}` (§6 Runtime
// ABI, §4.D "Tuple expressions").
func tupleCreateCall(pos token.Position, args []ast.Expression) ast.Expression {
	items := make([]ast.TableItem, len(args))
	for i, a := range args {
		items[i] = ast.TableItem{Kind: ast.TableItemSingle, Value: a}
	}
	callee := ast.NewMemberAccessExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "ValueTuple", false),
		"create", false)
	return ast.NewCallExpr(pos, callee, ast.NewTableInitializer(pos, items...))
}

// transformObjectInitializer lowers `new T(args) { ... }` to the
// immediately-invoked function of §4.D "Initializer expressions": a
// parameterless function whose body binds a fresh `__init` temp local to
// call's result, issues one statement per initializer item, and ends with
// `return` of that temp.
func (t *Transformer) transformObjectInitializer(scope *naming.Scope, pos token.Position, call ast.Expression, init *source.ObjectInitializerExpr) ast.Expression {
	tempScope := naming.NewChildScope(scope)
	tVar := t.newTemp(tempScope, "init")

	var stmts []ast.Statement
	tRef := ast.Expression(ast.NewIdentifier(pos, tVar))
	for _, item := range init.Items {
		switch item.Kind {
		case source.InitMemberAssign:
			value := t.transformExpr(tempScope, item.Values[0])
			lhs := ast.NewMemberAccessExpr(pos, tRef, item.Name, false)
			stmts = append(stmts, ast.NewAssignStatement(pos, []ast.Expression{lhs}, []ast.Expression{value}))
		case source.InitIndexAssign:
			index := t.transformExpr(tempScope, item.Index)
			value := t.transformExpr(tempScope, item.Values[0])
			call := ast.NewCallExpr(pos, ast.NewMemberAccessExpr(pos, tRef, "set", true), index, value)
			stmts = append(stmts, ast.NewExprStatement(pos, call))
		case source.InitCollectionAdd:
			args := make([]ast.Expression, len(item.Values))
			for i, v := range item.Values {
				args[i] = t.transformExpr(tempScope, v)
			}
			call := ast.NewCallExpr(pos, ast.NewMemberAccessExpr(pos, tRef, "Add", true), args...)
			stmts = append(stmts, ast.NewExprStatement(pos, call))
		}
	}
	bodyStmts := append([]ast.Statement{ast.NewLocalVarDeclStatement(pos, []string{tVar}, call)}, stmts...)
	bodyStmts = append(bodyStmts, ast.NewReturnStatement(pos, tRef))
	body := ast.NewBlock(pos, bodyStmts...)

	fn := ast.NewFunctionLiteral(pos, nil, false, body)
	return ast.NewCallExpr(pos, ast.NewParenExpr(pos, fn))
}
