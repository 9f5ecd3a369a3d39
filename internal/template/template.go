// Package template implements the code-template engine (§4.G): textual
// substitution of per-method override templates loaded from the XML meta
// file (§6), used by the expression transformer (invocations and object
// creations) in place of its default lowering whenever a method has one.
package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/netlua/netlua/internal/errors"
	"github.com/netlua/netlua/pkg/token"
)

// Args is the substitution context for one call site: the receiver text
// (bound to `{this}`), the positional argument texts (bound to `{0}`..
// `{n}`), the already-rendered trailing-arguments text for a `params`
// parameter (bound to `{*}`), and the resolved type-argument texts for a
// generic method (bound to `{T0}`..`{Tk}`).
type Args struct {
	This     string
	Params   []string
	Rest     string // "" when the call has no params-array tail
	TypeArgs []string
}

// placeholder matches `{this}`, `{*}`, `{0}`, `{12}`, `{T0}`, `{T3}`.
const (
	phThis = "{this}"
	phRest = "{*}"
)

// Render substitutes template against args. Every `{this}`, `{*}`, `{N}`,
// and `{TN}` placeholder present in template is replaced; placeholders
// with no corresponding argument raise a compilation error naming the
// offending template and position (§4.G "mismatched arity"). Placeholders
// that template never references are simply dropped from the
// substitution pass — an unused argument is not an error (§4.G).
func Render(templateText string, args Args, pos token.Position, file string) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(templateText) {
		open := strings.IndexByte(templateText[i:], '{')
		if open < 0 {
			sb.WriteString(templateText[i:])
			break
		}
		open += i
		sb.WriteString(templateText[i:open])

		closeIdx := strings.IndexByte(templateText[open:], '}')
		if closeIdx < 0 {
			return "", errors.NewCompilerError(pos, fmt.Sprintf("unterminated placeholder in template %q", templateText), "", file)
		}
		closeIdx += open

		name := templateText[open : closeIdx+1]
		text, err := resolvePlaceholder(name, args, pos, file, templateText)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
		i = closeIdx + 1
	}
	return sb.String(), nil
}

func resolvePlaceholder(name string, args Args, pos token.Position, file, templateText string) (string, error) {
	switch {
	case name == phThis:
		return args.This, nil
	case name == phRest:
		return args.Rest, nil
	case len(name) >= 4 && name[1] == 'T':
		idx, err := strconv.Atoi(name[2 : len(name)-1])
		if err != nil {
			return "", errors.NewCompilerError(pos, fmt.Sprintf("malformed type-argument placeholder %q in template %q", name, templateText), "", file)
		}
		if idx < 0 || idx >= len(args.TypeArgs) {
			return "", errors.NewCompilerError(pos, fmt.Sprintf("template %q references %s but only %d type argument(s) supplied", templateText, name, len(args.TypeArgs)), "", file)
		}
		return args.TypeArgs[idx], nil
	default:
		idx, err := strconv.Atoi(name[1 : len(name)-1])
		if err != nil {
			return "", errors.NewCompilerError(pos, fmt.Sprintf("unrecognized placeholder %q in template %q", name, templateText), "", file)
		}
		if idx < 0 || idx >= len(args.Params) {
			return "", errors.NewCompilerError(pos, fmt.Sprintf("template %q references {%d} but only %d argument(s) supplied", templateText, idx, len(args.Params)), "", file)
		}
		return args.Params[idx], nil
	}
}
