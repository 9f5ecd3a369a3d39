package template

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/pkg/token"
)

var pos = token.Position{Line: 1, Column: 1}

func TestRenderThisAndPositional(t *testing.T) {
	got, err := Render("{this}:Insert({0}, {1})", Args{This: "list", Params: []string{"0", "x"}}, pos, "a.cs")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "list:Insert(0, x)"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderRestPlaceholder(t *testing.T) {
	got, err := Render("{this}:Format({0}, {*})", Args{This: "s", Params: []string{`"%d"`}, Rest: "a, b, c"}, pos, "a.cs")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `s:Format("%d", a, b, c)`; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderTypeArgPlaceholder(t *testing.T) {
	got, err := Render("System.cast({T0}, {0})", Args{Params: []string{"v"}, TypeArgs: []string{"Integer"}}, pos, "a.cs")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "System.cast(Integer, v)"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderDropsUnusedArgs(t *testing.T) {
	got, err := Render("{this}:Clear()", Args{This: "list", Params: []string{"unused"}}, pos, "a.cs")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "list:Clear()"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderMismatchedArityIsCompilationError(t *testing.T) {
	_, err := Render("{this}:At({2})", Args{This: "a", Params: []string{"0"}}, pos, "a.cs")
	if err == nil {
		t.Fatal("expected error for out-of-range placeholder")
	}
	if !strings.Contains(err.Error(), "{2}") {
		t.Errorf("error %q does not name the offending placeholder", err.Error())
	}
}

func TestRenderUnterminatedPlaceholder(t *testing.T) {
	_, err := Render("{this", Args{This: "a"}, pos, "a.cs")
	if err == nil {
		t.Fatal("expected error for unterminated placeholder")
	}
}
