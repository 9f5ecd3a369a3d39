package printer

import (
	"strings"

	"github.com/netlua/netlua/pkg/ast"
)

// typeDeclaration renders a TypeDeclaration as the table literal the
// runtime's System.namespace/System.class helpers expect (4.F): a
// `System.define("Name", function() return { ... } end)` call whose table
// has one entry per member category, fields first, then ctor, then methods,
// then events, with nested types recursing before the closing call.
func (w *writer) typeDeclaration(n *ast.TypeDeclaration) {
	// The type-parameter arity suffix is applied by the naming service
	// (4.C.4), not here — n.Name already carries it by the time it reaches
	// the printer.
	w.line("System.define(" + quoteLuaString(n.Name) + w.commaSep() + "function()")
	w.indent++
	w.line("return {")
	w.indent++

	if n.BaseType != nil {
		w.line("__base__" + w.sp() + "=" + w.sp() + w.expr(n.BaseType) + ",")
	}
	if len(n.Interfaces) > 0 {
		parts := make([]string, len(n.Interfaces))
		for i, iface := range n.Interfaces {
			parts[i] = w.expr(iface)
		}
		w.line("__interfaces__" + w.sp() + "=" + w.sp() + "{" + strings.Join(parts, w.commaSep()) + "},")
	}

	for _, f := range n.Fields {
		def := "nil"
		if f.Default != nil {
			def = w.expr(f.Default)
		}
		w.line(f.Name + w.sp() + "=" + w.sp() + def + ",")
	}

	w.ctorGroup(n.Ctor)
	if n.StaticCtor != nil {
		w.line("__init__" + w.sp() + "=" + w.sp() + w.expr(n.StaticCtor) + ",")
	}

	for _, m := range n.Methods {
		w.line(m.Name + w.sp() + "=" + w.sp() + w.expr(m.Fn) + ",")
	}

	for _, ev := range n.Events {
		if !ev.IsAccessor {
			w.line(ev.Name + w.sp() + "=" + w.sp() + "nil,")
			continue
		}
		w.line("add_" + ev.Name + w.sp() + "=" + w.sp() + w.expr(ev.AddFn) + ",")
		w.line("remove_" + ev.Name + w.sp() + "=" + w.sp() + w.expr(ev.RemoveFn) + ",")
	}

	for _, nested := range n.NestedTypes {
		w.statement(nested)
	}

	w.indent--
	w.line("}")
	w.indent--
	w.line("end)")
}

func (w *writer) ctorGroup(g ast.ConstructorGroup) {
	switch {
	case g.Single != nil:
		w.line("__ctor__" + w.sp() + "=" + w.sp() + w.expr(g.Single) + ",")
	case len(g.Overloads) > 0:
		parts := make([]string, len(g.Overloads))
		for i, fn := range g.Overloads {
			parts[i] = w.expr(fn)
		}
		w.line("__ctor__" + w.sp() + "=" + w.sp() + "{" + strings.Join(parts, w.commaSep()) + "},")
	}
}

func (w *writer) localFunctionDecl(n *ast.LocalFunctionDecl) {
	if len(n.Group) > 0 {
		w.line("local " + strings.Join(n.Group, w.commaSep()))
		w.line(n.Name + w.sp() + "=" + w.sp() + w.expr(n.Fn))
		return
	}
	w.line("local function " + n.Name + w.functionLiteralTail(n.Fn))
}

// functionLiteralTail renders a FunctionLiteral's parameter list and body
// without the leading `function` keyword, for `local function name(...)`.
func (w *writer) functionLiteralTail(fn *ast.FunctionLiteral) string {
	full := w.expr(fn)
	return strings.TrimPrefix(full, "function")
}
