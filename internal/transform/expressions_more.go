package transform

import (
	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
)

// transformConditionalAccess lowers one `a?.b` chain (§4.D "Conditional
// access"). n is the chain's last link; its Receiver walks back through
// sibling links to the Root one. The whole chain is rendered as an
// immediately-invoked function returning the root temp — always correct
// Lua whether or not the result is discarded, so the statement transformer
// does not special-case a discarded chain (documented simplification,
// DESIGN.md).
func (t *Transformer) transformConditionalAccess(scope *naming.Scope, n *source.ConditionalAccessExpr) ast.Expression {
	pos := n.Pos()

	var links []*source.ConditionalAccessExpr
	cur := n
	for {
		links = append([]*source.ConditionalAccessExpr{cur}, links...)
		if cur.Root {
			break
		}
		parent, ok := cur.Receiver.(*source.ConditionalAccessExpr)
		if !ok {
			t.fail(pos, "conditional-access chain link is not rooted")
		}
		cur = parent
	}

	root := links[0]
	tempScope := naming.NewChildScope(scope)
	tVar := t.newTemp(tempScope, "cond")
	_, pop := t.st.pushCondTemp(tVar)
	defer pop()

	receiver := t.transformExpr(scope, root.Receiver)
	stmts := []ast.Statement{ast.NewLocalVarDeclStatement(pos, []string{tVar}, receiver)}

	for _, link := range links {
		tRef := ast.Expression(ast.NewIdentifier(pos, tVar))
		var next ast.Expression
		if link.InvokeArgs != nil {
			args := make([]ast.Expression, len(link.InvokeArgs))
			for i, a := range link.InvokeArgs {
				args[i] = t.transformExpr(tempScope, a)
			}
			next = ast.NewCallExpr(pos, ast.NewMemberAccessExpr(pos, tRef, link.Member, true), args...)
		} else {
			next = ast.NewMemberAccessExpr(pos, tRef, link.Member, false)
		}
		assign := ast.NewAssignStatement(pos, []ast.Expression{ast.NewIdentifier(pos, tVar)}, []ast.Expression{next})
		guard := ast.NewIfStatement(pos,
			ast.NewBinaryExpr(pos, ast.NewIdentifier(pos, tVar), ast.OpNotEq, ast.NilLiteral(pos)),
			ast.NewBlock(pos, assign))
		stmts = append(stmts, guard)
	}
	stmts = append(stmts, ast.NewReturnStatement(pos, ast.NewIdentifier(pos, tVar)))

	fn := ast.NewFunctionLiteral(pos, nil, false, ast.NewBlock(pos, stmts...))
	return ast.NewCallExpr(pos, ast.NewParenExpr(pos, fn))
}

// transformInterpolatedString lowers `$"...{e}..."` to `(fmt):format(args)`
// (§4.D "String interpolation").
func (t *Transformer) transformInterpolatedString(scope *naming.Scope, n *source.InterpolatedStringExpr) ast.Expression {
	pos := n.Pos()
	fmtLit := ast.NewLiteral(pos, ast.LiteralString, quoteLua(n.Format))
	args := make([]ast.Expression, len(n.Args))
	for i, a := range n.Args {
		args[i] = t.transformExpr(scope, a)
	}
	callee := ast.NewMemberAccessExpr(pos, ast.NewParenExpr(pos, fmtLit), "format", true)
	return ast.NewCallExpr(pos, callee, args...)
}

// transformTypeOf lowers `typeof(T)` (§4.D). For an enum type it also
// queues a side export so the unit's generated file declares that enum's
// name table even if nothing else in the unit references it directly.
func (t *Transformer) transformTypeOf(n *source.TypeOfExpr) ast.Expression {
	pos := n.Pos()
	if n.Type != nil && n.Type.IsEnum {
		t.queueEnumExport(n.Type.Name)
	}
	name := "nil"
	if n.Type != nil {
		name = n.Type.Name
	}
	return ast.NewCallExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "typeof", true),
		ast.NewIdentifier(pos, name))
}

func (t *Transformer) queueEnumExport(name string) {
	for _, existing := range t.pendingEnumExports {
		if existing == name {
			return
		}
	}
	t.pendingEnumExports = append(t.pendingEnumExports, name)
}

// transformDefault lowers `default(T)`/`default` (§4.D). The oracle's
// constant evaluator pre-computes ConstantText whenever one exists;
// otherwise a type-specific zero value is synthesized from the handful of
// built-in shapes the runtime ABI defines zero values for.
func (t *Transformer) transformDefault(n *source.DefaultExpr) ast.Expression {
	pos := n.Pos()
	if n.ConstantText != "" {
		return ast.NewLiteral(pos, ast.LiteralVerbatim, n.ConstantText)
	}
	if n.Type == nil {
		return ast.NilLiteral(pos)
	}
	switch n.Type.Name {
	case "System.Int32", "System.Int64", "System.Single", "System.Double", "System.Byte", "System.SByte", "System.Int16", "System.UInt16", "System.UInt32", "System.UInt64":
		return ast.NewLiteral(pos, ast.LiteralNumber, "0")
	case "System.Boolean":
		return ast.NewLiteral(pos, ast.LiteralBool, "false")
	case "System.Char":
		return ast.NewLiteral(pos, ast.LiteralVerbatim, "0")
	default:
		return ast.NilLiteral(pos)
	}
}

// transformTupleValue lowers a tuple used as a value (§4.D "Tuple
// expressions" — RHS case; the LHS/assignment-target case is handled by
// the statement transformer's TupleAssignStmt lowering).
func (t *Transformer) transformTupleValue(scope *naming.Scope, n *source.TupleExpr) ast.Expression {
	args := make([]ast.Expression, len(n.Elements))
	for i, e := range n.Elements {
		args[i] = t.transformExpr(scope, e)
	}
	return tupleCreateCall(n.Pos(), args)
}

// transformIsPattern lowers `subject is T t` (§4.D "`is`-pattern"). When
// subject's static type is already known to be a subtype of T, the check
// constant-folds to `true`. Binding the declared pattern variable into the
// surrounding scope is the responsibility of the statement transformer's
// `if` lowering (it recognizes an IsPatternExpr condition and prepends the
// `local t = subject` to the `then` block); used outside that context the
// pattern contributes only the boolean test.
func (t *Transformer) transformIsPattern(scope *naming.Scope, n *source.IsPatternExpr) ast.Expression {
	pos := n.Pos()
	if id, ok := n.Subject.(*source.IdentifierExpr); ok {
		if sym := id.Sym(); sym != nil && sym.Type != nil && n.Type != nil && sym.Type.IsSubtypeOf(n.Type.Name) {
			return ast.NewLiteral(pos, ast.LiteralBool, "true")
		}
	}
	subject := t.transformExpr(scope, n.Subject)
	typeName := ""
	if n.Type != nil {
		typeName = n.Type.Name
	}
	return ast.NewCallExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "is", false),
		subject, ast.NewIdentifier(pos, typeName))
}

// transformLambda lowers an anonymous function/lambda expression to an
// ast.FunctionLiteral.
func (t *Transformer) transformLambda(scope *naming.Scope, n *source.LambdaExpr) ast.Expression {
	pos := n.Pos()
	lambdaScope := naming.NewChildScope(scope)
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		sym := &source.Symbol{ID: "lambda-param$" + p.Name, Name: p.Name, Kind: source.KindParameter}
		names[i] = lambdaScope.Assign(sym)
	}

	pop := t.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	body := t.transformFunctionBody(lambdaScope, n.Body)
	return ast.NewFunctionLiteral(pos, names, false, body)
}

// transformFunctionBody lowers a method/lambda body, accepting either a
// full block or (for an expression-bodied lambda) a single statement that
// the front end has already wrapped as an ExprStmt/ReturnStmt.
func (t *Transformer) transformFunctionBody(scope *naming.Scope, body source.Statement) *ast.Block {
	pos := body.Pos()
	switch b := body.(type) {
	case *source.BlockStmt:
		return t.transformBlock(scope, b)
	case *source.ExprStmt:
		value := t.transformExpr(scope, b.Expr)
		return ast.NewBlock(pos, ast.NewReturnStatement(pos, value))
	default:
		stmt := t.transformStmt(scope, body)
		return ast.NewBlock(pos, stmt)
	}
}
