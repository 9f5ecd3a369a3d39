package printer_test

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/printer"
)

func TestPrintTryCatchFinallyWithReturn(t *testing.T) {
	// try { return f(); } catch(IOException e) { return 0; } finally { g(); }
	// The transformer rewraps each protected return with the `true,`
	// handled-flag (§4.E, Testable Property 4); this test builds the AST
	// the way the transformer does, then checks the printer's rendering.
	tryBlock := ast.NewBlock(pos, ast.NewReturnStatement(pos,
		ast.NewLiteral(pos, ast.LiteralBool, "true"),
		ast.NewCallExpr(pos, ast.NewIdentifier(pos, "f"))))
	catchBlock := ast.NewBlock(pos, ast.NewReturnStatement(pos,
		ast.NewLiteral(pos, ast.LiteralBool, "true"),
		ast.NewLiteral(pos, ast.LiteralNumber, "0")))
	finallyBlock := ast.NewBlock(pos, ast.NewExprStatement(pos, ast.NewCallExpr(pos, ast.NewIdentifier(pos, "g"))))

	adapter := ast.NewTryAdapter(pos, tryBlock)
	adapter.Catches = []ast.CatchClause{{
		ExceptionType: ast.NewIdentifier(pos, "IOException"),
		Binding:       "e",
		Body:          catchBlock,
	}}
	adapter.Finally = finallyBlock
	adapter.HasProtectedReturn = true

	got := printer.Print(ast.NewFile(pos, adapter))

	for _, want := range []string{
		"local ok, v = System.try(function()",
		"return true, f()",
		"function(e)",
		"if System.is(e, IOException) then",
		"local e = e",
		"return true, 0",
		"else",
		"return true, e",
		"function()",
		"g()",
		"if ok then return v end",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q; got:\n%s", want, got)
		}
	}
}

func TestPrintTryBareCatch(t *testing.T) {
	tryBlock := ast.NewBlock(pos, ast.NewExprStatement(pos, ast.NewCallExpr(pos, ast.NewIdentifier(pos, "f"))))
	catchBlock := ast.NewBlock(pos, ast.NewExprStatement(pos, ast.NewCallExpr(pos, ast.NewIdentifier(pos, "h"))))
	adapter := ast.NewTryAdapter(pos, tryBlock)
	adapter.Catches = []ast.CatchClause{{Body: catchBlock}}

	got := printer.Print(ast.NewFile(pos, adapter))
	if strings.Contains(got, "System.is") {
		t.Errorf("a bare catch should not test System.is, got:\n%s", got)
	}
	if !strings.Contains(got, "h()") {
		t.Errorf("bare catch body missing, got:\n%s", got)
	}
}

func TestPrintUsingSingleResource(t *testing.T) {
	body := ast.NewBlock(pos, ast.NewExprStatement(pos,
		ast.NewCallExpr(pos, ast.NewMemberAccessExpr(pos, ast.NewIdentifier(pos, "r"), "Write", true))))
	adapter := ast.NewUsingAdapter(pos, body, ast.UsingResource{Name: "r", Init: ast.NewIdentifier(pos, "stream")})

	got := printer.Print(ast.NewFile(pos, adapter))
	if !strings.Contains(got, "System.using(stream, function(r)") {
		t.Fatalf("unexpected using rendering:\n%s", got)
	}
}

func TestPrintUsingMultipleResources(t *testing.T) {
	body := ast.NewBlock(pos, ast.NewExprStatement(pos, ast.NewIdentifier(pos, "x")))
	adapter := ast.NewUsingAdapter(pos, body,
		ast.UsingResource{Name: "a", Init: ast.NewIdentifier(pos, "x1")},
		ast.UsingResource{Name: "b", Init: ast.NewIdentifier(pos, "x2")},
	)

	got := printer.Print(ast.NewFile(pos, adapter))
	if !strings.Contains(got, "System.usingX(function(a, b)") || !strings.Contains(got, ", x1, x2)") {
		t.Fatalf("unexpected usingX rendering:\n%s", got)
	}
}

func TestPrintConstructorChain(t *testing.T) {
	// class A : B { public A(int x) : base(x) { } public A() : this(0) { } }
	baseChain := ast.NewConstructorAdapter(pos, ast.ChainBase, 0, "this", ast.NewIdentifier(pos, "x"))
	thisChain := ast.NewConstructorAdapter(pos, ast.ChainThis, 1, "this", ast.NewLiteral(pos, ast.LiteralNumber, "0"))

	got := printer.Print(ast.NewFile(pos, baseChain, thisChain))
	want := "Base.__ctor__(this, x)\n__ctor__[1](this, 0)\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintContinueAdapter(t *testing.T) {
	got := printer.Print(ast.NewFile(pos, ast.NewContinueAdapter(pos, "__continue__")))
	want := "__continue__ = true\nbreak\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintGotoCaseAdapter(t *testing.T) {
	got := printer.Print(ast.NewFile(pos, ast.NewGotoCaseAdapter(pos, "flagX", "Ldispatch")))
	want := "flagX = true\ngoto Ldispatch\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}
