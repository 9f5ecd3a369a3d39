package transform

import (
	"github.com/netlua/netlua/internal/errors"
)

// functionFrame tracks the enclosing function/method/lambda while
// transforming its body: whether it returns a value (so try/using
// return-propagation knows whether to thread a value through), and
// whether it is currently inside an iterator method being rewritten into
// a coroutine-backed enumerator (§supplement, yield lowering).
type functionFrame struct {
	ReturnsValue bool
	IsIterator   bool
	// YieldVar is not set by the transformer: iterator bodies run inside
	// `coroutine.wrap`, which keeps no separate enumerator state table.
	YieldVar string
	// protectedDepth counts the try/catch/finally/using bodies currently
	// open in this function. A `return` lowered while it is > 0 is inside
	// one of those protected closures and must be rewrapped with the
	// `true,` handled-flag the TryAdapter/UsingAdapter return-propagation
	// contract expects (§4.E, Testable Property 4). It lives on the
	// function frame rather than a separate stack so it resets to zero
	// for every nested lambda/local function/method, whose own returns
	// target that inner function, not the enclosing protected block.
	protectedDepth int
}

// blockFrame tracks the loop/switch context a break or continue resolves
// against, so `continue` inside a `switch` nested in a `for` still targets
// the for, and `goto case` always resolves to the innermost switch.
type blockFrame struct {
	IsLoop       bool
	IsSwitch     bool
	ContinueFlag string // set when this loop needs the continue-adapter flag variable
	SwitchLabel  string // dispatch label for this switch's goto-case adapter
}

// condTempFrame tracks one open `?.` chain: the hidden local bound to the
// receiver so every link after the first reads the temp instead of
// re-evaluating a side-effecting receiver expression (§4.D "Conditional
// access").
type condTempFrame struct {
	TempVar string
}

// methodInfoFrame is pushed once per method/constructor entered, purely
// for error-reporting context: it becomes a errors.Frame if the
// transformer has to abort mid-method.
type methodInfoFrame struct {
	Member string
}

// stacks bundles the four state machines the transformer threads through
// a recursive descent (§4.E "State machines"). Every push has a matching
// pop on the normal return path. Some callers `defer` the pop and others
// call it directly after the nested work, so after a panic-based abort
// (see fail and TransformUnit) the directly-popped frames are still on
// the stacks; fail snapshots the method-info stack before it panics.
type stacks struct {
	functions  []*functionFrame
	blocks     []*blockFrame
	condTemps  []*condTempFrame
	methodInfo []*methodInfoFrame
}

func newStacks() *stacks {
	return &stacks{}
}

func (s *stacks) pushFunction(f *functionFrame) func() {
	s.functions = append(s.functions, f)
	return func() { s.functions = s.functions[:len(s.functions)-1] }
}

func (s *stacks) currentFunction() *functionFrame {
	if len(s.functions) == 0 {
		return nil
	}
	return s.functions[len(s.functions)-1]
}

func (s *stacks) pushBlock(b *blockFrame) func() {
	s.blocks = append(s.blocks, b)
	return func() { s.blocks = s.blocks[:len(s.blocks)-1] }
}

// innermostLoop returns the nearest enclosing loop frame, for `break`/
// `continue` and the numeric-for/foreach lowering; nil if none is open.
func (s *stacks) innermostLoop() *blockFrame {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if s.blocks[i].IsLoop {
			return s.blocks[i]
		}
	}
	return nil
}

// innermostSwitch returns the nearest enclosing switch frame, for
// `goto case`; nil if none is open.
func (s *stacks) innermostSwitch() *blockFrame {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if s.blocks[i].IsSwitch {
			return s.blocks[i]
		}
	}
	return nil
}

// pushCondTemp opens a new conditional-access chain using a
// caller-assigned temp variable name (the transformer assigns it through
// the naming service before calling this, so the name is already
// collision-free in the enclosing scope).
func (s *stacks) pushCondTemp(tempVar string) (*condTempFrame, func()) {
	frame := &condTempFrame{TempVar: tempVar}
	s.condTemps = append(s.condTemps, frame)
	return frame, func() { s.condTemps = s.condTemps[:len(s.condTemps)-1] }
}

func (s *stacks) currentCondTemp() *condTempFrame {
	if len(s.condTemps) == 0 {
		return nil
	}
	return s.condTemps[len(s.condTemps)-1]
}

// pushProtected marks the current function as having one more open
// protected (try/catch/finally/using) body; the matching pop decrements
// it. No-op (with a no-op pop) when there is no enclosing function frame,
// which cannot happen in practice since every transformed body runs
// inside a pushed functionFrame (§4.E), but the guard keeps this helper
// safe to call unconditionally.
func (s *stacks) pushProtected() func() {
	fn := s.currentFunction()
	if fn == nil {
		return func() {}
	}
	fn.protectedDepth++
	return func() { fn.protectedDepth-- }
}

// inProtectedBlock reports whether a `return` lowered right now is inside
// an open try/catch/finally/using body of the current function.
func (s *stacks) inProtectedBlock() bool {
	fn := s.currentFunction()
	return fn != nil && fn.protectedDepth > 0
}

func (s *stacks) pushMethodInfo(member string) func() {
	s.methodInfo = append(s.methodInfo, &methodInfoFrame{Member: member})
	return func() { s.methodInfo = s.methodInfo[:len(s.methodInfo)-1] }
}

// trace snapshots the method-info stack into an errors.TransformTrace for
// attachment to a CompilerError, innermost-last to match errors.Frame
// ordering.
func (s *stacks) trace() errors.TransformTrace {
	t := make(errors.TransformTrace, 0, len(s.methodInfo))
	for _, f := range s.methodInfo {
		t = append(t, errors.NewFrame(f.Member, nil))
	}
	return t
}
