package transform

import (
	"github.com/netlua/netlua/internal/naming"
	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/ast"
)

// transformTry lowers try/catch/finally to a TryAdapter (§4.E). The
// printer owns turning the adapter into the `System.try(...)` call and its
// `if ok then return v end` wrapper; the transformer's job is only to
// decide HasProtectedReturn/VoidReturn and lower each part.
func (t *Transformer) transformTry(scope *naming.Scope, n *source.TryStmt) ast.Statement {
	pos := n.Pos()

	adapter := ast.NewTryAdapter(pos, nil)
	adapter.HasProtectedReturn = containsReturn(n.Body)
	for _, c := range n.Catches {
		adapter.HasProtectedReturn = adapter.HasProtectedReturn || containsReturn(c.Body)
	}
	if n.Finally != nil {
		adapter.HasProtectedReturn = adapter.HasProtectedReturn || containsReturn(n.Finally)
	}
	if fn := t.st.currentFunction(); fn != nil {
		adapter.VoidReturn = !fn.ReturnsValue
	}

	popTry := t.st.pushProtected()
	adapter.Try = t.transformBlock(scope, n.Body)
	popTry()

	for _, c := range n.Catches {
		adapter.Catches = append(adapter.Catches, t.transformCatchClause(scope, c))
	}
	if n.Finally != nil {
		popFinally := t.st.pushProtected()
		adapter.Finally = t.transformBlock(scope, n.Finally)
		popFinally()
	}
	return adapter
}

func (t *Transformer) transformCatchClause(scope *naming.Scope, c source.CatchClause) ast.CatchClause {
	catchScope := naming.NewChildScope(scope)
	binding := c.Binding
	if binding != "" {
		sym := &source.Symbol{ID: "catch$" + binding, Name: binding, Kind: source.KindLocal}
		binding = catchScope.Assign(sym)
	}

	var exceptionType ast.Expression
	if c.Type != nil {
		exceptionType = ast.NewIdentifier(c.Body.Pos(), c.Type.Name)
	}
	var filter ast.Expression
	if c.Filter != nil {
		filter = t.transformExpr(catchScope, c.Filter)
	}
	pop := t.st.pushProtected()
	body := t.transformBlock(catchScope, c.Body)
	pop()

	return ast.CatchClause{ExceptionType: exceptionType, Binding: binding, Filter: filter, Body: body}
}

// transformUsing lowers `using` to a UsingAdapter (§4.E), sharing the same
// return-propagation contract as try.
func (t *Transformer) transformUsing(scope *naming.Scope, n *source.UsingStmt) ast.Statement {
	pos := n.Pos()
	usingScope := naming.NewChildScope(scope)

	resources := make([]ast.UsingResource, len(n.Resources))
	for i, r := range n.Resources {
		sym := &source.Symbol{ID: "using$" + r.Name, Name: r.Name, Kind: source.KindLocal}
		name := usingScope.Assign(sym)
		resources[i] = ast.UsingResource{Name: name, Init: t.transformExpr(scope, r.Init)}
	}

	pop := t.st.pushProtected()
	body := t.transformBlock(usingScope, n.Body)
	pop()
	adapter := ast.NewUsingAdapter(pos, body, resources...)
	adapter.HasProtectedReturn = containsReturn(n.Body)
	if fn := t.st.currentFunction(); fn != nil {
		adapter.VoidReturn = !fn.ReturnsValue
	}
	return adapter
}

func containsReturn(body *source.BlockStmt) bool {
	found := false
	var walk func(s source.Statement)
	walk = func(s source.Statement) {
		if found {
			return
		}
		switch n := s.(type) {
		case *source.ReturnStmt:
			found = true
		case *source.BlockStmt:
			for _, c := range n.Statements {
				walk(c)
			}
		case *source.IfStmt:
			for _, c := range n.Clauses {
				for _, cs := range c.Body.Statements {
					walk(cs)
				}
			}
			if n.Else != nil {
				for _, cs := range n.Else.Statements {
					walk(cs)
				}
			}
		case *source.WhileStmt:
			walk(n.Body)
		case *source.ForStmt:
			walk(n.Body)
		case *source.ForEachStmt:
			walk(n.Body)
		case *source.TryStmt:
			walk(n.Body)
			for _, c := range n.Catches {
				walk(c.Body)
			}
			if n.Finally != nil {
				walk(n.Finally)
			}
		case *source.UsingStmt:
			walk(n.Body)
		case *source.SwitchStmt:
			for _, c := range n.Cases {
				walk(c.Body)
			}
		}
	}
	for _, s := range body.Statements {
		walk(s)
	}
	return found
}
