package transform

import (
	"strconv"

	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/token"
)

// transformBlock lowers a block, opening a child naming scope so locals
// declared inside it never leak their assigned names outward.
func (t *Transformer) transformBlock(scope *naming.Scope, b *source.BlockStmt) *ast.Block {
	inner := naming.NewChildScope(scope)
	pop := t.st.pushBlock(&blockFrame{})
	defer pop()

	stmts := make([]ast.Statement, 0, len(b.Statements))
	for _, s := range b.Statements {
		stmts = append(stmts, t.transformStmt(inner, s))
	}
	return ast.NewBlock(b.Pos(), stmts...)
}

// transformStmt lowers one L-src statement (§4.E).
func (t *Transformer) transformStmt(scope *naming.Scope, s source.Statement) ast.Statement {
	pos := s.Pos()
	switch n := s.(type) {
	case *source.ExprStmt:
		return ast.NewExprStatement(pos, t.transformExpr(scope, n.Expr))

	case *source.VarDeclStmt:
		return t.transformVarDecl(scope, n)

	case *source.TupleAssignStmt:
		return t.transformTupleAssign(scope, n)

	case *source.BlockStmt:
		body := t.transformBlock(scope, n)
		return ast.NewDoStatement(pos, body)

	case *source.IfStmt:
		return t.transformIf(scope, n)

	case *source.WhileStmt:
		return t.transformWhile(scope, n)

	case *source.DoWhileStmt:
		return t.transformDoWhile(scope, n)

	case *source.ForStmt:
		return t.transformFor(scope, n)

	case *source.ForEachStmt:
		return t.transformForEach(scope, n)

	case *source.SwitchStmt:
		return t.transformSwitch(scope, n)

	case *source.BreakStmt:
		return ast.NewBreakStatement(pos)

	case *source.ContinueStmt:
		loop := t.st.innermostLoop()
		if loop == nil || loop.ContinueFlag == "" {
			t.fail(pos, "continue statement outside a loop with a continue flag")
		}
		return ast.NewContinueAdapter(pos, loop.ContinueFlag)

	case *source.ReturnStmt:
		return t.transformReturn(scope, n)

	case *source.ThrowStmt:
		return t.transformThrow(scope, n)

	case *source.TryStmt:
		return t.transformTry(scope, n)

	case *source.UsingStmt:
		return t.transformUsing(scope, n)

	case *source.LockStmt:
		return t.transformKeywordBlock(scope, "lock", n.Body, pos)

	case *source.UnsafeStmt:
		return t.transformKeywordBlock(scope, n.Keyword, n.Body, pos)

	case *source.LocalFunctionStmt:
		return t.transformLocalFunction(scope, n)

	case *source.YieldReturnStmt:
		t.requireIteratorContext(pos)
		value := t.transformExpr(scope, n.Value)
		call := ast.NewCallExpr(pos,
			ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "coroutine"), "yield", false), value)
		return ast.NewExprStatement(pos, call)

	case *source.YieldBreakStmt:
		t.requireIteratorContext(pos)
		return ast.NewReturnStatement(pos)

	default:
		t.fail(pos, "unsupported statement node %T", s)
		return nil
	}
}

// transformReturn lowers `return [expr];`. Inside an open try/catch/
// finally/using body it rewraps the value(s) with the `true,`
// handled-flag the TryAdapter/UsingAdapter return-propagation contract
// expects, so `local ok, v = System.try(...)` destructures the flag
// rather than the protected return's own first value (§4.E, Testable
// Property 4).
func (t *Transformer) transformReturn(scope *naming.Scope, n *source.ReturnStmt) ast.Statement {
	pos := n.Pos()
	if !t.st.inProtectedBlock() {
		if n.Value == nil {
			return ast.NewReturnStatement(pos)
		}
		return ast.NewReturnStatement(pos, t.transformExpr(scope, n.Value))
	}

	handled := ast.NewLiteral(pos, ast.LiteralBool, "true")
	if n.Value == nil {
		return ast.NewReturnStatement(pos, handled)
	}
	return ast.NewReturnStatement(pos, handled, t.transformExpr(scope, n.Value))
}

// requireIteratorContext aborts if a yield statement reaches a function
// frame that was not pushed with IsIterator set (§supplement, iterator
// methods) — it can only be the front end feeding this package a method
// whose IsIteratorMethod flag is wrong, since the declaration transformer
// sets IsIterator from exactly that flag.
func (t *Transformer) requireIteratorContext(pos token.Position) {
	fn := t.st.currentFunction()
	if fn == nil || !fn.IsIterator {
		t.fail(pos, "yield is only supported inside a method lowered by the iterator declaration transformer")
	}
}

func (t *Transformer) transformVarDecl(scope *naming.Scope, n *source.VarDeclStmt) ast.Statement {
	pos := n.Pos()
	names := make([]string, len(n.Names))
	for i, name := range n.Names {
		sym := &source.Symbol{ID: "local$" + name + "$" + strconv.Itoa(i), Name: name, Kind: source.KindLocal}
		names[i] = scope.Assign(sym)
	}
	values := make([]ast.Expression, len(n.Init))
	for i, v := range n.Init {
		values[i] = t.transformExpr(scope, v)
	}
	return ast.NewLocalVarDeclStatement(pos, names, values...)
}

// transformTupleAssign lowers `(a, b) = (x, y);` to a multi-assignment
// (§4.D "Tuple expressions", LHS case).
func (t *Transformer) transformTupleAssign(scope *naming.Scope, n *source.TupleAssignStmt) ast.Statement {
	pos := n.Pos()
	lhs := make([]ast.Expression, len(n.Targets))
	for i, target := range n.Targets {
		lhs[i] = t.transformExpr(scope, target)
	}
	rhs := make([]ast.Expression, len(n.Values))
	for i, v := range n.Values {
		rhs[i] = t.transformExpr(scope, v)
	}
	return ast.NewAssignStatement(pos, lhs, rhs)
}

// transformIf lowers an `if`/`else if`/`else` chain, recognizing an
// IsPatternExpr condition and prepending its declared binding to the
// matching `then` block (§4.D "is-pattern" binding propagation).
func (t *Transformer) transformIf(scope *naming.Scope, n *source.IfStmt) ast.Statement {
	pos := n.Pos()
	if len(n.Clauses) == 0 {
		t.fail(pos, "if statement with no clauses")
	}

	first := n.Clauses[0]
	cond := t.transformExpr(scope, first.Cond)
	then := t.transformBlockWithPatternBinding(scope, first.Cond, first.Body)
	result := ast.NewIfStatement(pos, cond, then)

	for _, clause := range n.Clauses[1:] {
		result.ElseIfs = append(result.ElseIfs, ast.ElseIfClause{
			Cond: t.transformExpr(scope, clause.Cond),
			Body: t.transformBlockWithPatternBinding(scope, clause.Cond, clause.Body),
		})
	}
	if n.Else != nil {
		result.Else = t.transformBlock(scope, n.Else)
	}
	return result
}

// transformBlockWithPatternBinding transforms body in a child scope that
// has the is-pattern's declared variable pre-assigned to the subject, when
// cond is itself an IsPatternExpr with a binding; a pattern nested inside a
// larger condition gets no binding.
func (t *Transformer) transformBlockWithPatternBinding(scope *naming.Scope, cond source.Expression, body *source.BlockStmt) *ast.Block {
	pattern, ok := cond.(*source.IsPatternExpr)
	if !ok || pattern.Binding == "" {
		return t.transformBlock(scope, body)
	}

	inner := naming.NewChildScope(scope)
	sym := &source.Symbol{ID: "pattern$" + pattern.Binding, Name: pattern.Binding, Kind: source.KindLocal}
	name := inner.Assign(sym)
	subject := t.transformExpr(inner, pattern.Subject)
	binding := ast.NewLocalVarDeclStatement(body.Pos(), []string{name}, subject)

	pop := t.st.pushBlock(&blockFrame{})
	defer pop()
	stmts := []ast.Statement{binding}
	for _, s := range body.Statements {
		stmts = append(stmts, t.transformStmt(inner, s))
	}
	return ast.NewBlock(body.Pos(), stmts...)
}

func (t *Transformer) transformWhile(scope *naming.Scope, n *source.WhileStmt) ast.Statement {
	pos := n.Pos()
	cond := t.transformExpr(scope, n.Cond)
	body := t.transformLoopBody(scope, n.Body)
	return ast.NewWhileStatement(pos, cond, body)
}

// transformDoWhile lowers `do { ... } while (cond);` to `repeat ... until
// not (cond)` — L-dst's repeat/until already has do-while's run-body-first
// semantics.
func (t *Transformer) transformDoWhile(scope *naming.Scope, n *source.DoWhileStmt) ast.Statement {
	pos := n.Pos()
	body := t.transformLoopBody(scope, n.Body)
	cond := t.transformExpr(scope, n.Cond)
	return ast.NewRepeatUntilStatement(pos, body, ast.NewUnaryExpr(pos, ast.OpNot, ast.NewParenExpr(pos, cond)))
}

// transformFor lowers a C-style `for` to a `while`, since L-dst's numeric
// `for` only accepts a single counter with a constant-shaped step and the
// general C-style form may mutate multiple variables or have an arbitrary
// condition.
func (t *Transformer) transformFor(scope *naming.Scope, n *source.ForStmt) ast.Statement {
	pos := n.Pos()
	outer := naming.NewChildScope(scope)

	var initStmts []ast.Statement
	for _, s := range n.Init {
		initStmts = append(initStmts, t.transformStmt(outer, s))
	}

	cond := ast.Expression(ast.NewLiteral(pos, ast.LiteralBool, "true"))
	if n.Cond != nil {
		cond = t.transformExpr(outer, n.Cond)
	}

	loop := &blockFrame{IsLoop: true}
	pop := t.st.pushBlock(loop)
	bodyInner := naming.NewChildScope(outer)
	var bodyStmts []ast.Statement
	for _, s := range n.Body.Statements {
		bodyStmts = append(bodyStmts, t.transformStmt(bodyInner, s))
	}
	for _, s := range n.Post {
		bodyStmts = append(bodyStmts, t.transformStmt(bodyInner, s))
	}
	pop()

	whileStmt := ast.NewWhileStatement(pos, cond, ast.NewBlock(n.Body.Pos(), bodyStmts...))
	return ast.NewDoStatement(pos, ast.NewBlock(pos, append(initStmts, whileStmt)...))
}

// transformForEach lowers `foreach` (§4.E). A range-like source the oracle
// has proven integral uses a numeric for; everything else uses
// `for _, x in System.each(collection) do ... end`.
func (t *Transformer) transformForEach(scope *naming.Scope, n *source.ForEachStmt) ast.Statement {
	pos := n.Pos()
	inner := naming.NewChildScope(scope)
	sym := &source.Symbol{ID: "foreach$" + n.VarName, Name: n.VarName, Kind: source.KindLocal}
	varName := inner.Assign(sym)

	if n.IsRangeLike {
		start := t.transformExpr(scope, n.RangeStart)
		stop := t.transformExpr(scope, n.RangeEnd)
		body := t.transformLoopBody(inner, n.Body)
		return ast.NewNumericForStatement(pos, varName, start, stop, body)
	}

	collection := t.transformExpr(scope, n.Collection)
	eachCall := ast.NewCallExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "each", false),
		collection)
	body := t.transformLoopBody(inner, n.Body)
	return ast.NewGenericForStatement(pos, []string{"_", varName}, []ast.Expression{eachCall}, body)
}

// transformLoopBody transforms a loop body under a loop blockFrame, so
// `break`/`continue` inside it resolve correctly, assigning a continue
// flag variable lazily only if the body actually contains a `continue`
// (detected by a pre-scan) to avoid an unused local in the common case.
func (t *Transformer) transformLoopBody(scope *naming.Scope, body *source.BlockStmt) *ast.Block {
	inner := naming.NewChildScope(scope)
	frame := &blockFrame{IsLoop: true}
	if containsContinue(body) {
		frame.ContinueFlag = t.newTemp(inner, "continue")
	}
	pop := t.st.pushBlock(frame)
	defer pop()

	stmts := make([]ast.Statement, 0, len(body.Statements)+1)
	if frame.ContinueFlag != "" {
		stmts = append(stmts, ast.NewLocalVarDeclStatement(body.Pos(), []string{frame.ContinueFlag}, ast.NewLiteral(body.Pos(), ast.LiteralBool, "false")))
	}
	for _, s := range body.Statements {
		stmts = append(stmts, t.transformStmt(inner, s))
	}
	if frame.ContinueFlag == "" {
		return ast.NewBlock(body.Pos(), stmts...)
	}
	// The body runs inside `repeat ... until true`: the ContinueAdapter's
	// `break` leaves only that block with the flag set, a plain `break`
	// leaves it with the flag still false, and the guard after it then ends
	// the loop itself.
	pos := body.Pos()
	flag := ast.NewIdentifier(pos, frame.ContinueFlag)
	bodyStmts := stmts[1:]
	if _, returns := stmts[len(stmts)-1].(*ast.ReturnStatement); !returns {
		bodyStmts = append(bodyStmts, ast.NewAssignStatement(pos, []ast.Expression{flag}, []ast.Expression{ast.NewLiteral(pos, ast.LiteralBool, "true")}))
	}
	repeat := ast.NewRepeatUntilStatement(pos, ast.NewBlock(pos, bodyStmts...), ast.NewLiteral(pos, ast.LiteralBool, "true"))
	guard := ast.NewIfStatement(pos, ast.NewUnaryExpr(pos, ast.OpNot, flag), ast.NewBlock(pos, ast.NewBreakStatement(pos)))
	return ast.NewBlock(pos, stmts[0], repeat, guard)
}

func containsContinue(body *source.BlockStmt) bool {
	found := false
	var walk func(s source.Statement)
	walk = func(s source.Statement) {
		if found {
			return
		}
		switch n := s.(type) {
		case *source.ContinueStmt:
			found = true
		case *source.BlockStmt:
			for _, c := range n.Statements {
				walk(c)
			}
		case *source.IfStmt:
			for _, c := range n.Clauses {
				for _, cs := range c.Body.Statements {
					walk(cs)
				}
			}
			if n.Else != nil {
				for _, cs := range n.Else.Statements {
					walk(cs)
				}
			}
		case *source.SwitchStmt:
			for _, c := range n.Cases {
				for _, cs := range c.Body.Statements {
					walk(cs)
				}
			}
		}
	}
	for _, s := range body.Statements {
		walk(s)
	}
	return found
}

// transformKeywordBlock lowers `lock`/`unsafe`/`fixed` to a comment plus a
// plain `do ... end` (§4.E).
func (t *Transformer) transformKeywordBlock(scope *naming.Scope, keyword string, body *source.BlockStmt, pos token.Position) ast.Statement {
	inner := t.transformBlock(scope, body)
	comment := ast.NewShortCommentStatement(pos, keyword)
	inner.Statements = append([]ast.Statement{comment}, inner.Statements...)
	return ast.NewDoStatement(pos, inner)
}

func (t *Transformer) transformThrow(scope *naming.Scope, n *source.ThrowStmt) ast.Statement {
	pos := n.Pos()
	if n.Value == nil {
		// Bare `throw;` rethrows `e`: the printer always names the catch
		// function's parameter `e` (catchFunctionLiteral), whether or not
		// the clause also binds a named `local x = e`.
		return ast.NewExprStatement(pos, ast.NewCallExpr(pos,
			ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "throw", true),
			ast.NewIdentifier(pos, "e")))
	}
	value := t.transformExpr(scope, n.Value)
	return ast.NewExprStatement(pos, ast.NewCallExpr(pos,
		ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "System"), "throw", true), value))
}

func (t *Transformer) transformLocalFunction(scope *naming.Scope, n *source.LocalFunctionStmt) ast.Statement {
	pos := n.Pos()
	sym := &source.Symbol{ID: "localfn$" + n.Name, Name: n.Name, Kind: source.KindMethod, IsMethod: true}
	name := scope.Assign(sym)

	fnScope := naming.NewChildScope(scope)
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		psym := &source.Symbol{ID: "localfn-param$" + n.Name + "$" + p.Name, Name: p.Name, Kind: source.KindParameter}
		params[i] = fnScope.Assign(psym)
	}

	popFn := t.st.pushFunction(&functionFrame{})
	popInfo := t.st.pushMethodInfo(n.Name)
	body := t.transformBlock(fnScope, n.Body)
	popInfo()
	popFn()

	fn := ast.NewFunctionLiteral(pos, params, false, body)
	return ast.NewLocalFunctionDecl(pos, name, fn)
}
