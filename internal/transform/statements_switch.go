package transform

import (
	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
)

// transformSwitch lowers `switch`/`case`/`goto case` into an if/elseif/else
// dispatch over the selector (§4.E "switch with goto case"). Every case
// gets a flag variable and the whole dispatch sits behind one label;
// `goto case X` clears the selector temp and the current case's flag, sets
// X's flag and jumps back to that label, so the next pass through the
// dispatch enters X's body (only a `case null` ahead of X also matches the
// cleared selector).
func (t *Transformer) transformSwitch(scope *naming.Scope, n *source.SwitchStmt) ast.Statement {
	pos := n.Pos()
	inner := naming.NewChildScope(scope)

	selectorVar := t.newTemp(inner, "switchSelector")
	dispatchLabel := t.newTemp(inner, "switchDispatch")

	switchScope := &blockFrame{IsSwitch: true, SwitchLabel: dispatchLabel}
	pop := t.st.pushBlock(switchScope)
	defer pop()

	flags := make([]string, len(n.Cases))
	for i := range n.Cases {
		flags[i] = t.newTemp(inner, "caseFlag")
	}

	var preStmts []ast.Statement
	preStmts = append(preStmts, ast.NewLocalVarDeclStatement(pos, []string{selectorVar}, t.transformExpr(scope, n.Selector)))
	for _, f := range flags {
		preStmts = append(preStmts, ast.NewLocalVarDeclStatement(pos, []string{f}, ast.NewLiteral(pos, ast.LiteralBool, "false")))
	}
	preStmts = append(preStmts, ast.NewLabeledStatement(pos, dispatchLabel))

	var ifStmt *ast.IfStatement
	var defaultBody *ast.Block
	for i, c := range n.Cases {
		body := t.transformBlock(inner, c.Body)
		if c.FallsThroughTo != nil {
			targetFlag := t.gotoCaseTargetFlag(n, flags, c.FallsThroughTo)
			reset := ast.NewAssignStatement(pos,
				[]ast.Expression{ast.NewIdentifier(pos, selectorVar), ast.NewIdentifier(pos, flags[i])},
				[]ast.Expression{ast.NilLiteral(pos), ast.NewLiteral(pos, ast.LiteralBool, "false")})
			body.Statements = append(body.Statements, reset, ast.NewGotoCaseAdapter(pos, targetFlag, dispatchLabel))
		}
		if c.IsDefault {
			defaultBody = body
			continue
		}
		cond := ast.Expression(ast.NewIdentifier(pos, flags[i]))
		for _, v := range c.Values {
			valExpr := t.transformExpr(scope, v)
			eq := ast.NewBinaryExpr(pos, ast.NewIdentifier(pos, selectorVar), ast.OpEq, valExpr)
			cond = ast.NewBinaryExpr(pos, eq, ast.OpOr, cond)
		}
		if ifStmt == nil {
			ifStmt = ast.NewIfStatement(pos, cond, body)
		} else {
			ifStmt.ElseIfs = append(ifStmt.ElseIfs, ast.ElseIfClause{Cond: cond, Body: body})
		}
	}
	if ifStmt == nil {
		// A switch with only a default case: the dispatch degenerates to
		// the default body running unconditionally.
		return ast.NewDoStatement(pos, ast.NewBlock(pos, append(preStmts, defaultBody.Statements...)...))
	}
	ifStmt.Else = defaultBody

	return ast.NewDoStatement(pos, ast.NewBlock(pos, append(preStmts, ifStmt)...))
}

// gotoCaseTargetFlag finds the flag variable for the case whose Values
// contains an expression matching target's constant text, falling back to
// the default case's flag when target names no explicit case (C#'s
// `goto case default`, front-end-normalized to a nil Values match).
func (t *Transformer) gotoCaseTargetFlag(n *source.SwitchStmt, flags []string, target source.Expression) string {
	targetLit, ok := target.(*source.LiteralExpr)
	for i, c := range n.Cases {
		if c.IsDefault && !ok {
			return flags[i]
		}
		for _, v := range c.Values {
			if lit, lok := v.(*source.LiteralExpr); lok && ok && lit.Text == targetLit.Text {
				return flags[i]
			}
		}
	}
	t.fail(n.Pos(), "goto case target does not match any case in the enclosing switch")
	return ""
}
