package errors

import (
	"fmt"
	"strings"

	"github.com/netlua/netlua/pkg/token"
)

// Frame is one entry in a TransformTrace: the member the transformer was
// lowering when a CompilerError was raised. The transform package's
// method-info stack (§4.D-F) holds one entry per method/constructor it has
// entered and not yet left, and is snapshotted into Frames just before an
// abort, so a trace reflects the member nesting live at the moment of
// failure.
type Frame struct {
	Position *token.Position
	Member   string // e.g. "Animal.Speak" or "Animal.<ctor#2>"
}

// String renders "Member [line: N, column: M]", or just Member when no
// position is available.
func (f Frame) String() string {
	if f.Position == nil {
		return f.Member
	}
	return fmt.Sprintf("%s [line: %d, column: %d]", f.Member, f.Position.Line, f.Position.Column)
}

// TransformTrace is the member-nesting stack live when a CompilerError was
// raised, oldest frame first (bottom of stack).
type TransformTrace []Frame

// String prints the trace innermost-frame-first, one per line.
func (t TransformTrace) String() string {
	if len(t) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(t) - 1; i >= 0; i-- {
		sb.WriteString(t[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Top returns the innermost frame, or nil if the trace is empty.
func (t TransformTrace) Top() *Frame {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// NewFrame creates a Frame for the member currently being transformed.
func NewFrame(member string, pos *token.Position) Frame {
	return Frame{Member: member, Position: pos}
}

// NewTransformTrace creates an empty trace.
func NewTransformTrace() TransformTrace {
	return make(TransformTrace, 0)
}

// WithTrace attaches a TransformTrace to a CompilerError, appending it to
// the message so the CLI's plain-text output (§6) shows which member was
// being lowered without needing a separate output channel.
func (e *CompilerError) WithTrace(trace TransformTrace) *CompilerError {
	if len(trace) == 0 {
		return e
	}
	e.Message = e.Message + "\n  in " + strings.Join(frameStrings(trace), "\n  in ")
	return e
}

func frameStrings(t TransformTrace) []string {
	out := make([]string, 0, len(t))
	for i := len(t) - 1; i >= 0; i-- {
		out = append(out, t[i].String())
	}
	return out
}
