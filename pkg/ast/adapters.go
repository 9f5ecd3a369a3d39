// Adapter nodes model L-src concepts that have no L-dst counterpart:
// try/catch/finally, using, constructor chaining, continue, and
// goto-case switch fall-through. Each owns any temporaries it introduces
// (§4.A) and each must expand to a well-formed L-dst statement sequence
// under the renderer alone, with no later rewrite pass (invariant 3).
package ast

import "github.com/netlua/netlua/pkg/token"

func (*TryAdapter) statementNode()      {}
func (*UsingAdapter) statementNode()    {}
func (*ConstructorAdapter) statementNode() {}
func (*ContinueAdapter) statementNode() {}
func (*GotoCaseAdapter) statementNode() {}

// CatchClause is one `catch (T e) when (filter) { ... }` arm, already
// lowered to the L-dst shape the TryAdapter needs: a type test, an
// optional declared binding, an optional filter expression, and a body.
type CatchClause struct {
	// ExceptionType is nil for a bare `catch` (the unconditional arm).
	ExceptionType Expression
	// Binding is the L-dst local name bound to the caught exception, or ""
	// if the clause declares no catch variable.
	Binding string
	// Filter is the `when (...)` expression, or nil.
	Filter Expression
	Body   *Block
}

// TryAdapter models try/catch/finally (4.E). It expands to:
//
//	local ok, v = System.try(function() ... tryFn ... end,
//	                          function(e) ... catchFn ... end,
//	                          function() ... finallyFn ... end)
//	if ok then return v end
//
// The trailing `if ok then return v end` is only emitted when
// HasProtectedReturn is set — i.e. the protected block textually contains a
// reachable `return` (Testable Property 4).
type TryAdapter struct {
	base
	Try                *Block
	Catches            []CatchClause
	Finally            *Block // nil when there is no finally clause
	HasProtectedReturn bool
	// VoidReturn marks that the surrounding method returns no value, so the
	// propagated `v` is elided from the wrapping `if ok then return end`.
	VoidReturn bool
}

func NewTryAdapter(pos token.Position, try *Block) *TryAdapter {
	return &TryAdapter{base: base{pos}, Try: try}
}

// UsingAdapter models `using` (4.E). A single resource expands to
// `System.using(r, function(r) ... end)`; two or more resources expand to
// `System.usingX(function(a, b, ...) ... end, a, b, ...)`.
type UsingAdapter struct {
	base
	// Resources pairs each resource's bound name with its initializing
	// expression, in source order.
	Resources          []UsingResource
	Body               *Block
	HasProtectedReturn bool
	VoidReturn         bool
}

// UsingResource is one `using (T name = expr)` resource declaration.
type UsingResource struct {
	Name string
	Init Expression
}

func NewUsingAdapter(pos token.Position, body *Block, resources ...UsingResource) *UsingAdapter {
	return &UsingAdapter{base: base{pos}, Resources: resources, Body: body}
}

// ConstructorAdapter models the body-prefix every emitted constructor needs:
// either an explicit base/this-chained call, or the implicit call to the
// direct base's default constructor (4.F, Testable Property 5).
type ConstructorAdapter struct {
	base
	// Target is ChainBase or ChainThis; the implicit base call is ChainBase
	// with no Args. ChainNone renders nothing.
	Target ChainTarget
	// Selector is the 1-based overload index being invoked, or 0 when the
	// target type has exactly one constructor (no __ctor__ array).
	Selector int
	Args     []Expression
	// ThisParam is the name bound to the constructing instance, threaded
	// as the first positional argument of the call this adapter renders.
	ThisParam string
}

// ChainTarget distinguishes base-class vs same-class constructor chaining.
type ChainTarget int

const (
	ChainNone ChainTarget = iota
	ChainBase
	ChainThis
)

func NewConstructorAdapter(pos token.Position, target ChainTarget, selector int, thisParam string, args ...Expression) *ConstructorAdapter {
	return &ConstructorAdapter{base: base{pos}, Target: target, Selector: selector, ThisParam: thisParam, Args: args}
}

// ContinueAdapter models `continue` inside a loop (4.E). It expands, at the
// `continue` site, to:
//
//	__continue__ = true
//	break
//
// and the enclosing loop body is wrapped so its epilogue re-dispatches on
// `__continue__`. FlagVar lets nested loops use distinct flag names.
type ContinueAdapter struct {
	base
	FlagVar string
}

func NewContinueAdapter(pos token.Position, flagVar string) *ContinueAdapter {
	return &ContinueAdapter{base{pos}, flagVar}
}

// GotoCaseAdapter models `goto case X;` inside a switch lowered to
// if/elseif/else (4.E). It sets the target case's flag variable and jumps
// back to the dispatch label so evaluation re-enters at the new case.
type GotoCaseAdapter struct {
	base
	FlagVar       string
	DispatchLabel string
}

func NewGotoCaseAdapter(pos token.Position, flagVar, dispatchLabel string) *GotoCaseAdapter {
	return &GotoCaseAdapter{base{pos}, flagVar, dispatchLabel}
}
