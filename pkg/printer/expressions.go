package printer

import (
	"fmt"
	"strings"

	"github.com/netlua/netlua/pkg/ast"
)

func (w *writer) exprList(exprs []ast.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = w.expr(e)
	}
	return strings.Join(parts, w.commaSep())
}

func (w *writer) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name

	case *ast.Literal:
		return n.Text

	case *ast.BinaryExpr:
		return w.binaryExpr(n)

	case *ast.UnaryExpr:
		return w.unaryExpr(n)

	case *ast.MemberAccessExpr:
		sep := "."
		if n.IsColonCall {
			sep = ":"
		}
		return w.expr(n.Object) + sep + n.Name

	case *ast.IndexExpr:
		return w.expr(n.Object) + "[" + w.expr(n.Index) + "]"

	case *ast.CallExpr:
		return w.expr(n.Callee) + "(" + w.exprList(n.Args) + ")"

	case *ast.FunctionLiteral:
		return w.functionLiteral(n)

	case *ast.ParenExpr:
		return "(" + w.expr(n.Inner) + ")"

	case *ast.TableInitializer:
		return w.tableInitializer(n)

	case *ast.SequenceListExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = w.expr(el)
		}
		return strings.Join(parts, w.commaSep())

	case *ast.PropertyAdapterExpr:
		return w.expr(n.AsGetExpression())

	case *ast.ArrayTypeAdapterExpr:
		return w.arrayTypeAdapter(n)

	case *ast.VarargExpr:
		return "..."

	default:
		panic(fmt.Sprintf("printer: unhandled expression type %T", e))
	}
}

// classicBinaryHelpers maps floor-division and bitwise operators to their
// Classic-dialect runtime helper names (4.B): Classic lowers `a // b` and
// the bitwise operators to `System.*(a, b)` calls instead of operator
// tokens, since that dialect's Lua revision has neither.
var classicBinaryHelpers = map[ast.BinaryOp]string{
	ast.OpFloorDiv: "System.idiv",
	ast.OpBAnd:     "System.band",
	ast.OpBOr:      "System.bor",
	ast.OpBXor:     "System.bxor",
	ast.OpShl:      "System.shl",
	ast.OpShr:      "System.shr",
}

func (w *writer) binaryExpr(n *ast.BinaryExpr) string {
	if w.opts.Dialect == Classic {
		if helper, ok := classicBinaryHelpers[n.Op]; ok {
			return helper + "(" + w.expr(n.Left) + w.commaSep() + w.expr(n.Right) + ")"
		}
	}
	return w.expr(n.Left) + w.sp() + string(n.Op) + w.sp() + w.expr(n.Right)
}

func (w *writer) unaryExpr(n *ast.UnaryExpr) string {
	if n.Op == ast.OpBNot && w.opts.Dialect == Classic {
		return "System.bnot(" + w.expr(n.Operand) + ")"
	}
	if n.Op == ast.OpNot {
		return "not " + w.expr(n.Operand)
	}
	return string(n.Op) + w.expr(n.Operand)
}

func (w *writer) functionLiteral(n *ast.FunctionLiteral) string {
	params := strings.Join(n.Params, w.commaSep())
	if n.IsVararg {
		if params != "" {
			params += w.commaSep()
		}
		params += "..."
	}
	var sb strings.Builder
	sb.WriteString("function(" + params + ")\n")
	sub := &writer{opts: w.opts, indent: w.indent + 1}
	sub.statements(n.Body.Statements)
	sb.WriteString(sub.String())
	sb.WriteString(strings.Repeat(" ", w.indent*w.opts.IndentWidth))
	sb.WriteString("end")
	return sb.String()
}

func (w *writer) tableInitializer(n *ast.TableInitializer) string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		switch item.Kind {
		case ast.TableItemSingle:
			parts[i] = w.expr(item.Value)
		case ast.TableItemKeyValue:
			parts[i] = "[" + w.expr(item.Key) + "]" + w.sp() + "=" + w.sp() + w.expr(item.Value)
		case ast.TableItemStringKey:
			parts[i] = item.Name + w.sp() + "=" + w.sp() + w.expr(item.Value)
		}
	}
	return "{" + strings.Join(parts, w.commaSep()) + "}"
}

func (w *writer) arrayTypeAdapter(n *ast.ArrayTypeAdapterExpr) string {
	if n.Rank <= 1 {
		return "System.Array(" + w.expr(n.ElementType) + ")"
	}
	parts := make([]string, len(n.Sizes))
	for i, s := range n.Sizes {
		parts[i] = w.expr(s)
	}
	sizes := ""
	if len(parts) > 0 {
		sizes = w.commaSep() + strings.Join(parts, w.commaSep())
	}
	return "System.MultiArray(" + w.expr(n.ElementType) + sizes + ")"
}
