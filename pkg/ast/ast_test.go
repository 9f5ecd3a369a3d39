package ast_test

import (
	"testing"

	"github.com/netlua/netlua/pkg/ast"
	"github.com/netlua/netlua/pkg/token"
)

func TestFilePos(t *testing.T) {
	pos := token.Position{Line: 3, Column: 1}
	f := ast.NewFile(pos, ast.NewExprStatement(pos, ast.NewIdentifier(pos, "x")))
	if f.Pos() != pos {
		t.Fatalf("Pos() = %v, want %v", f.Pos(), pos)
	}
}

func TestPropertyAdapterFieldLike(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	obj := ast.NewIdentifier(pos, "t")
	p := ast.NewPropertyAdapterExpr(pos, obj, "Name", false)

	get, ok := p.AsGetExpression().(*ast.MemberAccessExpr)
	if !ok || get.IsColonCall {
		t.Fatalf("field-like get should be a dotted member access, got %#v", p.AsGetExpression())
	}

	set, ok := p.AsSetStatement(ast.NewLiteral(pos, ast.LiteralString, `"x"`)).(*ast.AssignStatement)
	if !ok || len(set.LHS) != 1 {
		t.Fatalf("field-like set should be a plain assignment, got %#v", p.AsSetStatement(nil))
	}
}

func TestPropertyAdapterAccessorBacked(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	obj := ast.NewIdentifier(pos, "t")
	p := ast.NewPropertyAdapterExpr(pos, obj, "Name", true)

	get, ok := p.AsGetExpression().(*ast.CallExpr)
	if !ok {
		t.Fatalf("accessor get should be a call expression, got %#v", p.AsGetExpression())
	}
	member, ok := get.Callee.(*ast.MemberAccessExpr)
	if !ok || !member.IsColonCall || member.Name != "get_Name" {
		t.Fatalf("accessor get should call get_Name via colon, got %#v", get.Callee)
	}

	set, ok := p.AsSetStatement(ast.NewLiteral(pos, ast.LiteralString, `"x"`)).(*ast.ExprStatement)
	if !ok {
		t.Fatalf("accessor set should be an expression statement, got %#v", p.AsSetStatement(nil))
	}
	call, ok := set.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("accessor set should wrap a call, got %#v", set.Expr)
	}
	if member, ok := call.Callee.(*ast.MemberAccessExpr); !ok || member.Name != "set_Name" {
		t.Fatalf("accessor set should call set_Name, got %#v", call.Callee)
	}
}

func TestWalkVisitsChildren(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	bin := ast.NewBinaryExpr(pos, ast.NewIdentifier(pos, "a"), ast.OpAdd, ast.NewIdentifier(pos, "b"))
	file := ast.NewFile(pos, ast.NewExprStatement(pos, bin))

	var names []string
	var v ast.Visitor
	v = visitFunc(func(n ast.Node) ast.Visitor {
		if id, ok := n.(*ast.Identifier); ok {
			names = append(names, id.Name)
		}
		return v
	})
	ast.Walk(v, file)

	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Walk collected %v, want [a b]", names)
	}
}

type visitFunc func(ast.Node) ast.Visitor

func (f visitFunc) Visit(n ast.Node) ast.Visitor { return f(n) }
