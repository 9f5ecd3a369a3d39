package errors

import (
	"strings"
	"testing"

	"github.com/netlua/netlua/pkg/token"
)

func TestFrameString(t *testing.T) {
	tests := []struct {
		name     string
		frame    Frame
		expected string
	}{
		{
			name:     "with position",
			frame:    Frame{Member: "Animal.Speak", Position: &token.Position{Line: 10, Column: 5}},
			expected: "Animal.Speak [line: 10, column: 5]",
		},
		{
			name:     "without position",
			frame:    Frame{Member: "Animal.Speak"},
			expected: "Animal.Speak",
		},
		{
			name:     "constructor overload",
			frame:    Frame{Member: "Animal.<ctor#2>", Position: &token.Position{Line: 42, Column: 15}},
			expected: "Animal.<ctor#2> [line: 42, column: 15]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTransformTraceString(t *testing.T) {
	trace := TransformTrace{
		NewFrame("Program.Main", &token.Position{Line: 1, Column: 1}),
		NewFrame("Animal.Speak", &token.Position{Line: 10, Column: 5}),
	}

	want := "Animal.Speak [line: 10, column: 5]\nProgram.Main [line: 1, column: 1]"
	if got := trace.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTransformTraceTop(t *testing.T) {
	var empty TransformTrace
	if empty.Top() != nil {
		t.Errorf("Top() on empty trace = %v, want nil", empty.Top())
	}

	trace := TransformTrace{NewFrame("A", nil), NewFrame("B", nil)}
	if got := trace.Top(); got == nil || got.Member != "B" {
		t.Errorf("Top() = %v, want frame B", got)
	}
}

func TestCompilerErrorWithTrace(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 3, Column: 2}, "unsupported construct", "", "a.cs")
	trace := TransformTrace{NewFrame("Animal.Speak", nil)}

	err = err.WithTrace(trace)
	if !strings.Contains(err.Message, "in Animal.Speak") {
		t.Errorf("Message %q does not include trace frame", err.Message)
	}
}
