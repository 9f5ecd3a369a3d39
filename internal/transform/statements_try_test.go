package transform

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/printer"
	"github.com/netlua/netlua/pkg/token"
)

var pos = token.Position{Line: 1, Column: 1}

func callIdent(name string) *source.InvocationExpr {
	return &source.InvocationExpr{Callee: &source.IdentifierExpr{Name: name}}
}

func lit(text string) *source.LiteralExpr {
	return &source.LiteralExpr{Kind: source.LitNumber, Text: text}
}

// TestTransformTryReturnIsWrappedWithHandledFlag exercises §8's worked
// scenario: try { return f(); } catch(IOException e) { return 0; }. Both
// protected returns must carry the `true,` handled-flag the
// System.try/ok,v propagation contract expects (Testable Property 4).
func TestTransformTryReturnIsWrappedWithHandledFlag(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	n := &source.TryStmt{
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ReturnStmt{Value: callIdent("f")},
		}},
		Catches: []source.CatchClause{{
			Type:    &source.TypeRef{Name: "IOException"},
			Binding: "e",
			Body: &source.BlockStmt{Statements: []source.Statement{
				&source.ReturnStmt{Value: lit("0")},
			}},
		}},
	}

	stmt := tr.transformTry(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))

	for _, want := range []string{"return true, f()", "return true, 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q; got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "return f()") || strings.Contains(got, "return 0\n") {
		t.Errorf("protected return was not rewrapped; got:\n%s", got)
	}
}

// TestTransformTryVoidReturnWrapsBareReturn covers a void-returning method:
// a bare `return;` inside the protected block becomes `return true`.
func TestTransformTryVoidReturnWrapsBareReturn(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: false})
	defer pop()

	n := &source.TryStmt{
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ReturnStmt{},
		}},
	}

	stmt := tr.transformTry(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	if !strings.Contains(got, "return true\n") {
		t.Errorf("expected a bare protected return to become %q; got:\n%s", "return true", got)
	}
}

// TestTransformUsingReturnIsWrapped covers the same contract for `using`.
func TestTransformUsingReturnIsWrapped(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	n := &source.UsingStmt{
		Resources: []source.UsingResource{{Name: "r", Init: &source.IdentifierExpr{Name: "stream"}}},
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ReturnStmt{Value: lit("1")},
		}},
	}

	stmt := tr.transformUsing(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	if !strings.Contains(got, "return true, 1") {
		t.Errorf("using-protected return was not rewrapped; got:\n%s", got)
	}
}

// TestTransformReturnOutsideProtectedBlockIsUnwrapped guards against the
// fix over-applying: a return in the method body surrounding the try, not
// inside it, must render unwrapped.
func TestTransformReturnOutsideProtectedBlockIsUnwrapped(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	stmt := tr.transformStmt(naming.NewScope(), &source.ReturnStmt{Value: lit("5")})
	got := printer.Print(ast.NewFile(pos, stmt))
	if strings.Contains(got, "true") {
		t.Errorf("an unprotected return must not carry the handled-flag; got:\n%s", got)
	}
	if !strings.Contains(got, "return 5") {
		t.Fatalf("got:\n%s", got)
	}
}

// TestTransformNestedLambdaReturnInsideTryDoesNotInheritProtection checks
// that protectedDepth lives on the enclosing functionFrame: a return inside
// a lambda declared within a try body targets the lambda, not the try, and
// must not be wrapped.
func TestTransformNestedLambdaReturnInsideTryDoesNotInheritProtection(t *testing.T) {
	tr := New(nil, nil, "t.cs", "")
	pop := tr.st.pushFunction(&functionFrame{ReturnsValue: true})
	defer pop()

	lambda := &source.LambdaExpr{Body: &source.ReturnStmt{Value: lit("9")}}
	n := &source.TryStmt{
		Body: &source.BlockStmt{Statements: []source.Statement{
			&source.ExprStmt{Expr: lambda},
		}},
	}

	stmt := tr.transformTry(naming.NewScope(), n)
	got := printer.Print(ast.NewFile(pos, stmt))
	if !strings.Contains(got, "return 9") || strings.Contains(got, "return true, 9") {
		t.Errorf("lambda return must not inherit the enclosing try's protection; got:\n%s", got)
	}
}
