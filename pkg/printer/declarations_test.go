package printer_test

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/printer"
)

func TestPrintTypeDeclarationWithOverloadedCtor(t *testing.T) {
	decl := ast.NewTypeDeclaration(pos, "Animal")
	decl.BaseType = ast.NewIdentifier(pos, "Base")
	ctor1 := ast.NewFunctionLiteral(pos, []string{"this"}, false, ast.NewBlock(pos))
	ctor2 := ast.NewFunctionLiteral(pos, []string{"this", "name"}, false, ast.NewBlock(pos))
	decl.Ctor = ast.ConstructorGroup{Overloads: []*ast.FunctionLiteral{ctor1, ctor2}}
	decl.Fields = []ast.FieldDecl{{Name: "Name"}}
	decl.Methods = []ast.MethodDecl{{Name: "Speak", Fn: ast.NewFunctionLiteral(pos, []string{"this"}, false, ast.NewBlock(pos))}}

	got := printer.Print(ast.NewFile(pos, decl))

	for _, want := range []string{
		`System.define("Animal", function()`,
		"__base__ = Base,",
		"Name = nil,",
		"__ctor__ = {function(this)",
		"Speak = function(this)",
		"end)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q; got:\n%s", want, got)
		}
	}
}

func TestPrintLocalFunctionDecl(t *testing.T) {
	fn := ast.NewFunctionLiteral(pos, []string{"n"}, false,
		ast.NewBlock(pos, ast.NewReturnStatement(pos, ast.NewIdentifier(pos, "n"))))
	decl := ast.NewLocalFunctionDecl(pos, "identity", fn)

	got := printer.Print(ast.NewFile(pos, decl))
	want := "local function identity(n)\n  return n\nend\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintMutuallyRecursiveLocalFunctions(t *testing.T) {
	fn := ast.NewFunctionLiteral(pos, nil, false, ast.NewBlock(pos))
	decl := ast.NewLocalFunctionDecl(pos, "isEven", fn)
	decl.Group = []string{"isEven", "isOdd"}

	got := printer.Print(ast.NewFile(pos, decl))
	want := "local isEven, isOdd\nisEven = function()\nend\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}
