// Package naming implements the Symbol & Naming Service (§4.C): it assigns
// a collision-free L-dst identifier to every user symbol, in per-scope
// tables that are written once per symbol and never revised afterward
// (§5 "naming service's assigned-name table (monotonic, write-once)").
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"

	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/token"
)

const base63Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"

// Scope assigns names for one lexical scope (a method body, a block, a
// type's member set). Scopes nest; a child scope's Assign also checks its
// parent chain for collisions, since an inner local must not shadow an
// outer one it could still be confused with at the point of emission.
type Scope struct {
	parent   *Scope
	assigned map[string]string // source symbol id -> assigned L-dst name
	used     map[string]bool   // L-dst names already taken in this scope
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{assigned: map[string]string{}, used: map[string]bool{}}
}

// NewChildScope creates a scope nested inside parent.
func NewChildScope(parent *Scope) *Scope {
	return &Scope{parent: parent, assigned: map[string]string{}, used: map[string]bool{}}
}

// NameFor returns the already-assigned L-dst name for sym within s or any
// enclosing scope, if one exists.
func (s *Scope) NameFor(sym *source.Symbol) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if name, ok := cur.assigned[sym.ID]; ok {
			return name, true
		}
	}
	return "", false
}

// isTaken reports whether name is already assigned somewhere visible from s.
func (s *Scope) isTaken(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.used[name] {
			return true
		}
	}
	return false
}

// Assign computes and records the L-dst name for sym in scope s, applying
// the four rules of §4.C in order: non-ASCII encoding, reserved-word/
// collision disambiguation, metatable/runtime-adapter guaranteed
// disambiguation, and (for TypeDeclaration-producing symbols handled by
// the caller) the generic arity suffix. Calling Assign twice for the same
// symbol returns the name assigned the first time — the table is
// write-once (§5).
func (s *Scope) Assign(sym *source.Symbol) string {
	if name, ok := s.NameFor(sym); ok {
		return name
	}

	candidate := encodeIdentifier(sym.Name)
	candidate = s.disambiguate(sym, candidate)

	s.assigned[sym.ID] = candidate
	s.used[candidate] = true
	return candidate
}

// disambiguate applies rules 2 and 3: reserved-word/compiler-reserved/
// sibling-collision avoidance, and guaranteed renaming for names that would
// collide with a Lua metamethod or a runtime adapter slot.
func (s *Scope) disambiguate(sym *source.Symbol, candidate string) string {
	needsRename := token.IsReserved(candidate) ||
		token.IsCompilerReserved(candidate) ||
		s.isTaken(candidate)

	if sym.IsMethod && (token.IsMetatableMethod(candidate) || token.IsRuntimeAdapterName(candidate)) {
		needsRename = true
	}

	if !needsRename {
		return candidate
	}

	for _, variant := range disambiguationSequence(candidate) {
		if !token.IsReserved(variant) && !token.IsCompilerReserved(variant) && !s.isTaken(variant) {
			return variant
		}
	}
	panic("naming: exhausted disambiguation sequence for " + candidate)
}

// disambiguationSequence yields the `N`, `N_`, `_N`, `N1`, `N2`, …
// candidates of §4.C rule 2, in order, bounded to a generous cap —
// a real scope never has thousands of same-named siblings.
func disambiguationSequence(name string) []string {
	seq := make([]string, 0, 4+64)
	seq = append(seq, name+"_", "_"+name)
	for i := 1; i <= 64; i++ {
		seq = append(seq, name+strconv.Itoa(i))
	}
	return seq
}

// encodeIdentifier applies §4.C rule 1: if name contains any character
// outside ASCII [A-Za-z0-9_], its code points are NFC-normalized and then
// encoded in the base-63 alphabet, with a leading "_" prepended if the
// result would otherwise start with a digit. ASCII-clean names pass through
// unchanged.
func encodeIdentifier(name string) string {
	if isASCIIIdentifier(name) {
		return name
	}

	normalized := norm.NFC.String(name)
	var sb strings.Builder
	sb.WriteString("u")
	for _, r := range normalized {
		if r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
		sb.WriteString(encodeBase63(uint32(r)))
	}
	encoded := sb.String()
	if len(encoded) > 0 && encoded[0] >= '0' && encoded[0] <= '9' {
		encoded = "_" + encoded
	}
	return encoded
}

func encodeBase63(v uint32) string {
	if v == 0 {
		return string(base63Alphabet[0])
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{base63Alphabet[v%63]}, digits...)
		v /= 63
	}
	return string(digits)
}

// asciiTable covers the 0x00-0x7F ASCII range; unicode has no predefined
// table for it (unicode.ASCII_Hex_Digit is a different, narrower property).
var asciiTable = &unicode.RangeTable{
	R16:         []unicode.Range16{{Lo: 0x00, Hi: 0x7f, Stride: 1}},
	LatinOffset: 1,
}

// asciiRange is the ASCII-range filter used to reject any identifier that
// needs base-63 encoding; built once since runes.In's Set is stateless.
var asciiRange = runes.In(asciiTable)

func isASCIIIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !asciiRange.Contains(r) {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}

// QualifiedNestedName renders the §4.C.4 nested-type name: "Outer.Inner".
func QualifiedNestedName(outer, inner string) string {
	return outer + "." + inner
}

// ArritySuffixedName renders the §4.C.4 generic arity suffix, distinguishing
// e.g. `List` (non-generic) from `List_1` (List<T>) and `Dictionary_2`
// (Dictionary<K,V>), so closed and open generics never collide.
func ArritySuffixedName(name string, typeParamCount int) string {
	if typeParamCount == 0 {
		return name
	}
	return name + "_" + strconv.Itoa(typeParamCount)
}
