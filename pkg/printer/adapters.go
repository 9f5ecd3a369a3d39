package printer

import (
	"strings"

	"github.com/netlua/netlua/pkg/ast"
)

// tryAdapter renders try/catch/finally as System.try(tryFn, catchFn,
// finallyFn) plus, when the protected block can return, the
// `local ok, v = ...; if ok then return v end` return-propagation wrapper
// (4.E, Testable Property 4).
func (w *writer) tryAdapter(n *ast.TryAdapter) {
	tryFn := w.blockFunctionLiteral(nil, n.Try)
	catchFn := w.catchFunctionLiteral(n.Catches)
	args := tryFn + w.commaSep() + catchFn
	if n.Finally != nil {
		args += w.commaSep() + w.blockFunctionLiteral(nil, n.Finally)
	}
	call := "System.try(" + args + ")"

	if !n.HasProtectedReturn {
		w.line(call)
		return
	}
	if n.VoidReturn {
		w.line("local ok = " + call)
		w.line("if ok then return end")
		return
	}
	w.line("local ok, v = " + call)
	w.line("if ok then return v end")
}

// catchFunctionLiteral compiles the catch-clause disjunction into the
// single `function(e) ... end` the runtime contract expects: each typed
// clause becomes `if System.is(e, T) [and filter] then ... end`/`elseif`; a
// bare catch (ExceptionType == nil) is always last and terminates the chain
// unconditionally; and when no bare catch is present, an implicit rethrow
// arm (`else return true, e`) is appended so every caught exception that
// matches no clause propagates (4.E).
// Precondition (mirrors L-src's own rule that a general catch must be
// last): catches contains at most one ExceptionType == nil clause, and if
// present it is the final element. The transformer never builds
// TryAdapter.Catches any other way.
func (w *writer) catchFunctionLiteral(catches []ast.CatchClause) string {
	var sb strings.Builder
	sb.WriteString("function(e)\n")
	sub := &writer{opts: w.opts, indent: w.indent + 1}

	switch {
	case len(catches) == 0:
		// try/finally with no catch clause: rethrow unconditionally so the
		// finally block still runs via the runtime's try contract.
		sub.line("return true, e")
	case len(catches) == 1 && catches[0].ExceptionType == nil:
		// A single bare catch needs no conditional at all.
		sub.catchBody(catches[0])
	default:
		typedCount := 0
		for _, c := range catches {
			if c.ExceptionType == nil {
				sub.line("else")
				sub.indent++
				sub.catchBody(c)
				sub.indent--
				continue
			}
			prefix := "if "
			if typedCount > 0 {
				prefix = "elseif "
			}
			typedCount++
			cond := "System.is(e, " + sub.expr(c.ExceptionType) + ")"
			if c.Filter != nil {
				cond += " and " + sub.expr(c.Filter)
			}
			sub.line(prefix + cond + " then")
			sub.indent++
			sub.catchBody(c)
			sub.indent--
		}
		if catches[len(catches)-1].ExceptionType != nil {
			sub.line("else")
			sub.indent++
			sub.line("return true, e")
			sub.indent--
		}
		sub.line("end")
	}

	sb.WriteString(sub.String())
	sb.WriteString(strings.Repeat(" ", w.indent*w.opts.IndentWidth))
	sb.WriteString("end")
	return sb.String()
}

func (w *writer) catchBody(c ast.CatchClause) {
	if c.Binding != "" {
		w.line("local " + c.Binding + " = e")
	}
	w.statements(c.Body.Statements)
}

// blockFunctionLiteral wraps body in a non-variadic function literal with
// the given parameters (none for try/finally, the resource names for
// using).
func (w *writer) blockFunctionLiteral(params []string, body *ast.Block) string {
	return w.expr(ast.NewFunctionLiteral(body.Pos(), params, false, body))
}

// usingAdapter renders `using` (4.E): one resource expands to
// `System.using(r, function(r) ... end)`; several to
// `System.usingX(function(a, b, ...) ... end, a, b, ...)`. Both
// participate in the same return-propagation contract as try.
func (w *writer) usingAdapter(n *ast.UsingAdapter) {
	var call string
	if len(n.Resources) == 1 {
		r := n.Resources[0]
		fn := w.blockFunctionLiteral([]string{r.Name}, n.Body)
		call = "System.using(" + w.expr(r.Init) + w.commaSep() + fn + ")"
	} else {
		names := make([]string, len(n.Resources))
		inits := make([]string, len(n.Resources))
		for i, r := range n.Resources {
			names[i] = r.Name
			inits[i] = w.expr(r.Init)
		}
		fn := w.blockFunctionLiteral(names, n.Body)
		call = "System.usingX(" + fn + w.commaSep() + strings.Join(inits, w.commaSep()) + ")"
	}

	if !n.HasProtectedReturn {
		w.line(call)
		return
	}
	if n.VoidReturn {
		w.line("local ok = " + call)
		w.line("if ok then return end")
		return
	}
	w.line("local ok, v = " + call)
	w.line("if ok then return v end")
}

// constructorAdapter renders the base/this-chaining prefix every emitted
// constructor body starts with (4.F).
func (w *writer) constructorAdapter(n *ast.ConstructorAdapter) {
	if n.Target == ast.ChainNone {
		return
	}

	var name string
	switch n.Target {
	case ast.ChainThis:
		name = "__ctor__"
	default: // ChainBase
		name = "Base.__ctor__"
	}
	if n.Selector > 0 {
		name += "[" + itoa(n.Selector) + "]"
	}

	args := append([]ast.Expression{ast.NewIdentifier(n.Pos(), n.ThisParam)}, n.Args...)
	w.line(name + "(" + w.exprList(args) + ")")
}
