package printer

import (
	"fmt"
	"strings"

	"github.com/netlua/netlua/pkg/ast"
)

func (w *writer) statements(stmts []ast.Statement) {
	for _, s := range stmts {
		w.statement(s)
	}
}

func (w *writer) block(b *ast.Block) {
	w.indent++
	if b != nil {
		w.statements(b.Statements)
	}
	w.indent--
}

func (w *writer) statement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExprStatement:
		w.blankRun = false
		w.line(w.expr(n.Expr))

	case *ast.AssignStatement:
		w.blankRun = false
		lhs := w.exprList(n.LHS)
		rhs := w.exprList(n.RHS)
		w.line(lhs + w.sp() + "=" + w.sp() + rhs)

	case *ast.LocalVarDeclStatement:
		w.blankRun = false
		names := strings.Join(n.Names, w.commaSep())
		if len(n.Values) == 0 {
			w.line("local " + names)
			return
		}
		w.line("local " + names + w.sp() + "=" + w.sp() + w.exprList(n.Values))

	case *ast.IfStatement:
		w.blankRun = false
		w.line("if " + w.expr(n.Cond) + " then")
		w.block(n.Then)
		for _, ei := range n.ElseIfs {
			w.line("elseif " + w.expr(ei.Cond) + " then")
			w.block(ei.Body)
		}
		if n.Else != nil {
			w.line("else")
			w.block(n.Else)
		}
		w.line("end")

	case *ast.WhileStatement:
		w.blankRun = false
		w.line("while " + w.expr(n.Cond) + " do")
		w.block(n.Body)
		w.line("end")

	case *ast.RepeatUntilStatement:
		w.blankRun = false
		w.line("repeat")
		w.block(n.Body)
		w.line("until " + w.expr(n.Cond))

	case *ast.NumericForStatement:
		w.blankRun = false
		header := "for " + n.Var + w.sp() + "=" + w.sp() + w.expr(n.Start) + w.commaSep() + w.expr(n.Stop)
		if n.Step != nil {
			header += w.commaSep() + w.expr(n.Step)
		}
		w.line(header + " do")
		w.block(n.Body)
		w.line("end")

	case *ast.GenericForStatement:
		w.blankRun = false
		vars := strings.Join(n.Vars, w.commaSep())
		w.line("for " + vars + " in " + w.exprList(n.Exprs) + " do")
		w.block(n.Body)
		w.line("end")

	case *ast.DoStatement:
		w.blankRun = false
		w.line("do")
		w.block(n.Body)
		w.line("end")

	case *ast.BreakStatement:
		w.blankRun = false
		w.line("break")

	case *ast.GotoStatement:
		w.blankRun = false
		w.line("goto " + w.label(n.Label))

	case *ast.LabeledStatement:
		w.blankRun = false
		w.line("::" + w.label(n.Label) + "::")

	case *ast.ReturnStatement:
		w.blankRun = false
		if len(n.Values) == 0 {
			w.line("return")
			return
		}
		w.line("return " + w.exprList(n.Values))

	case *ast.BlankLinesStatement:
		if w.blankRun {
			return
		}
		w.blankRun = true
		for i := 0; i < n.Count; i++ {
			w.sb.WriteString("\n")
		}

	case *ast.ShortCommentStatement:
		w.blankRun = false
		w.line("-- " + n.Text)

	case *ast.LongCommentStatement:
		w.blankRun = false
		w.line("--[[ " + n.Text + " ]]")

	case *ast.DocumentStatement:
		w.blankRun = false
		for _, line := range n.Lines {
			w.line("--- " + line)
		}

	case *ast.TryAdapter:
		w.blankRun = false
		w.tryAdapter(n)

	case *ast.UsingAdapter:
		w.blankRun = false
		w.usingAdapter(n)

	case *ast.ConstructorAdapter:
		w.blankRun = false
		w.constructorAdapter(n)

	case *ast.ContinueAdapter:
		w.blankRun = false
		w.line(n.FlagVar + w.sp() + "=" + w.sp() + "true")
		w.line("break")

	case *ast.GotoCaseAdapter:
		w.blankRun = false
		w.line(n.FlagVar + w.sp() + "=" + w.sp() + "true")
		w.line("goto " + w.label(n.DispatchLabel))

	case *ast.TypeDeclaration:
		w.blankRun = false
		w.typeDeclaration(n)

	case *ast.LocalFunctionDecl:
		w.blankRun = false
		w.localFunctionDecl(n)

	default:
		panic(fmt.Sprintf("printer: unhandled statement type %T", s))
	}
}

// label applies the Classic-dialect label sanitization (4.B dialect note).
func (w *writer) label(name string) string {
	if w.opts.Dialect == Classic {
		return "lbl_" + name
	}
	return name
}
