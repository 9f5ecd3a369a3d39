package transform

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/printer"
)

// TestTransformForEachContinue exercises `foreach (var x in xs) { if (...)
// continue; f(x); }`: the non-range-like collection path lowers to
// `for _, x in System.each(xs) do ... end`, and a `continue` inside it
// lowers to the flag-set-then-break ContinueAdapter (§4.E).
func TestTransformForEachContinue(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")

	n := &source.ForEachStmt{
		VarName:    "x",
		Collection: &source.IdentifierExpr{Name: "xs"},
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ContinueStmt{},
			&source.ExprStmt{Expr: callIdent("f")},
		}},
	}

	stmt := tr.transformForEach(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))

	if !strings.Contains(got, "for _, x in System.each(xs) do") {
		t.Errorf("expected System.each foreach lowering; got:\n%s", got)
	}
	if !strings.Contains(got, "= false") {
		t.Errorf("expected a continue flag initialized to false; got:\n%s", got)
	}
	if !strings.Contains(got, "= true") || !strings.Contains(got, "break") {
		t.Errorf("expected the continue adapter's flag-set-then-break; got:\n%s", got)
	}
}

// TestTransformForEachRangeLike covers the oracle-proven-integral-range
// path: it must use a numeric for instead of System.each.
func TestTransformForEachRangeLike(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")

	n := &source.ForEachStmt{
		VarName:     "i",
		IsRangeLike: true,
		RangeStart:  lit("0"),
		RangeEnd:    lit("10"),
		Body:        &source.BlockStmt{},
	}

	stmt := tr.transformForEach(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	if !strings.Contains(got, "for i = 0, 10 do") {
		t.Errorf("expected a numeric for for a range-like foreach; got:\n%s", got)
	}
}

// TestTransformTupleAssign covers `(a, b) = (1, 2);` (§8 scenario): it must
// lower to a single multi-assignment statement, not two sequential ones,
// so swap-like tuple assignments evaluate their RHS before any LHS write.
func TestTransformTupleAssign(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")

	n := &source.TupleAssignStmt{
		Targets: []source.Expression{&source.IdentifierExpr{Name: "a"}, &source.IdentifierExpr{Name: "b"}},
		Values:  []source.Expression{lit("1"), lit("2")},
	}

	stmt := tr.transformStmt(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	want := "a, b = 1, 2\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

// TestTransformLocalFunctionReturnIsUnaffectedByEnclosingProtection mirrors
// the lambda case for a local function statement: its own functionFrame
// resets protectedDepth even when declared inside a try body.
func TestTransformLocalFunctionReturnIsUnaffectedByEnclosingProtection(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	localFn := &source.LocalFunctionStmt{
		Name: "helper",
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ReturnStmt{Value: lit("7")},
		}},
	}
	n := &source.TryStmt{Body: &source.BlockStmt{Statements: []source.Statement{localFn}}}

	stmt := tr.transformTry(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	if !strings.Contains(got, "return 7") || strings.Contains(got, "return true, 7") {
		t.Errorf("a local function's own return must not inherit the enclosing try's protection; got:\n%s", got)
	}
}
