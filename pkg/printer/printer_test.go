package printer_test

import (
	"testing"

	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/printer"
	"github.com/netlua/netlua/pkg/token"
)

var pos = token.Position{Line: 1, Column: 1}

func TestPrintLocalVarDecl(t *testing.T) {
	file := ast.NewFile(pos, ast.NewLocalVarDeclStatement(pos, []string{"x"},
		ast.NewLiteral(pos, ast.LiteralNumber, "42")))

	got := printer.Print(file)
	want := "local x = 42\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintCompactDropsSpacing(t *testing.T) {
	file := ast.NewFile(pos, ast.NewLocalVarDeclStatement(pos, []string{"x"},
		ast.NewLiteral(pos, ast.LiteralNumber, "42")))

	got := printer.CompactPrinter().Print(file)
	want := "local x=42\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintIfElseIfElse(t *testing.T) {
	cond := ast.NewIdentifier(pos, "a")
	then := ast.NewBlock(pos, ast.NewReturnStatement(pos, ast.NewLiteral(pos, ast.LiteralNumber, "1")))
	elseBlock := ast.NewBlock(pos, ast.NewReturnStatement(pos, ast.NewLiteral(pos, ast.LiteralNumber, "3")))

	stmt := ast.NewIfStatement(pos, cond, then)
	stmt.ElseIfs = []ast.ElseIfClause{{
		Cond: ast.NewIdentifier(pos, "b"),
		Body: ast.NewBlock(pos, ast.NewReturnStatement(pos, ast.NewLiteral(pos, ast.LiteralNumber, "2"))),
	}}
	stmt.Else = elseBlock

	got := printer.Print(ast.NewFile(pos, stmt))
	want := "if a then\n  return 1\nelseif b then\n  return 2\nelse\n  return 3\nend\n"
	if got != want {
		t.Fatalf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintConditionalAccessChain(t *testing.T) {
	// local t = a; if t ~= nil then t = t.b end; local x = t or 0
	t0 := ast.NewIdentifier(pos, "t")
	a := ast.NewIdentifier(pos, "a")
	file := ast.NewFile(pos,
		ast.NewLocalVarDeclStatement(pos, []string{"t"}, a),
		ast.NewIfStatement(pos, ast.NewBinaryExpr(pos, t0, ast.OpNotEq, ast.NilLiteral(pos)),
			ast.NewBlock(pos, ast.NewAssignStatement(pos,
				[]ast.Expression{t0},
				[]ast.Expression{ast.NewMemberAccessExpr(pos, t0, "b", false)}))),
		ast.NewLocalVarDeclStatement(pos, []string{"x"},
			ast.NewBinaryExpr(pos, t0, ast.OpOr, ast.NewLiteral(pos, ast.LiteralNumber, "0"))),
	)

	got := printer.Print(file)
	want := "local t = a\n" +
		"if t ~= nil then\n" +
		"  t = t.b\n" +
		"end\n" +
		"local x = t or 0\n"
	if got != want {
		t.Fatalf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintTupleAssignment(t *testing.T) {
	// (a, b) = (1, 2);  ->  a, b = 1, 2
	file := ast.NewFile(pos, ast.NewAssignStatement(pos,
		[]ast.Expression{ast.NewIdentifier(pos, "a"), ast.NewIdentifier(pos, "b")},
		[]ast.Expression{ast.NewLiteral(pos, ast.LiteralNumber, "1"), ast.NewLiteral(pos, ast.LiteralNumber, "2")},
	))

	got := printer.Print(file)
	want := "a, b = 1, 2\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintStringInterpolation(t *testing.T) {
	// $"hi {name}"  ->  ("hi {0}"):format(name)
	fmtStr := ast.NewParenExpr(pos, ast.NewLiteral(pos, ast.LiteralString, `"hi {0}"`))
	call := ast.NewCallExpr(pos, ast.NewMemberAccessExpr(pos, fmtStr, "format", true), ast.NewIdentifier(pos, "name"))
	file := ast.NewFile(pos, ast.NewLocalVarDeclStatement(pos, []string{"s"}, call))

	got := printer.Print(file)
	want := `local s = ("hi {0}"):format(name)` + "\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintClassicDialectFloorDivAndBitwise(t *testing.T) {
	a, b := ast.NewIdentifier(pos, "a"), ast.NewIdentifier(pos, "b")
	file := ast.NewFile(pos,
		ast.NewLocalVarDeclStatement(pos, []string{"q"}, ast.NewBinaryExpr(pos, a, ast.OpFloorDiv, b)),
		ast.NewLocalVarDeclStatement(pos, []string{"m"}, ast.NewBinaryExpr(pos, a, ast.OpBAnd, b)),
	)

	opts := printer.DefaultOptions()
	opts.Dialect = printer.Classic
	got := printer.New(opts).Print(file)
	want := "local q = System.idiv(a, b)\nlocal m = System.band(a, b)\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintDeterministic(t *testing.T) {
	file := ast.NewFile(pos, ast.NewLocalVarDeclStatement(pos, []string{"x"}, ast.NewLiteral(pos, ast.LiteralNumber, "1")))
	first := printer.Print(file)
	second := printer.Print(file)
	if first != second {
		t.Fatalf("Print is not deterministic: %q vs %q", first, second)
	}
}

func TestPrintBlankLinesCoalesce(t *testing.T) {
	file := ast.NewFile(pos,
		ast.NewExprStatement(pos, ast.NewIdentifier(pos, "a")),
		ast.NewBlankLinesStatement(pos, 1),
		ast.NewBlankLinesStatement(pos, 1),
		ast.NewExprStatement(pos, ast.NewIdentifier(pos, "b")),
	)
	got := printer.Print(file)
	want := "a\n\nb\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}
