package oracle

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/netlua/netlua/internal/source"
	"github.com/netlua/netlua/pkg/token"
)

// JSONStore is a reference SymbolInfo/Position implementation backed by a
// single JSON document, one object per node id:
//
//	{"n42": {"symbol": {...}, "type": {...}, "convertedType": {...},
//	         "constant": "1", "pos": {"line": 3, "column": 5}}}
//
// Front ends that already serialize their resolved tree as JSON (rather
// than handing the transformer live Go values) can hand a JSONStore
// straight to the compiler pipeline.
type JSONStore struct {
	doc string
}

// NewJSONStore wraps a raw JSON document.
func NewJSONStore(doc string) *JSONStore {
	return &JSONStore{doc: doc}
}

// Set returns a copy of the store with path set to value, using sjson so
// fixtures can be built incrementally without hand-assembling JSON text.
func (s *JSONStore) Set(path string, value any) (*JSONStore, error) {
	next, err := sjson.Set(s.doc, path, value)
	if err != nil {
		return nil, fmt.Errorf("oracle: set %s: %w", path, err)
	}
	return &JSONStore{doc: next}, nil
}

func (s *JSONStore) node(nodeID string) gjson.Result {
	return gjson.Get(s.doc, gjson.Escape(nodeID))
}

// SymbolOf implements SymbolInfo.
func (s *JSONStore) SymbolOf(nodeID string) *source.Symbol {
	n := s.node(nodeID).Get("symbol")
	if !n.Exists() {
		return nil
	}
	return symbolFromJSON(n)
}

// TypeOf implements SymbolInfo.
func (s *JSONStore) TypeOf(nodeID string) *source.TypeRef {
	n := s.node(nodeID).Get("type")
	if !n.Exists() {
		return nil
	}
	return typeRefFromJSON(n)
}

// ConvertedTypeOf implements SymbolInfo.
func (s *JSONStore) ConvertedTypeOf(nodeID string) *source.TypeRef {
	n := s.node(nodeID).Get("convertedType")
	if !n.Exists() {
		return nil
	}
	return typeRefFromJSON(n)
}

// ConstantValueOf implements SymbolInfo.
func (s *JSONStore) ConstantValueOf(nodeID string) (string, bool) {
	n := s.node(nodeID).Get("constant")
	if !n.Exists() {
		return "", false
	}
	return n.String(), true
}

// PositionOf implements Position.
func (s *JSONStore) PositionOf(nodeID string) token.Position {
	n := s.node(nodeID).Get("pos")
	return token.Position{
		Line:   int(n.Get("line").Int()),
		Column: int(n.Get("column").Int()),
		Offset: int(n.Get("offset").Int()),
	}
}

func typeRefFromJSON(n gjson.Result) *source.TypeRef {
	t := &source.TypeRef{
		Name:                n.Get("name").String(),
		IsNullableValueType: n.Get("nullable").Bool(),
		IsTuple:             n.Get("tuple").Bool(),
		IsArray:             n.Get("array").Bool(),
		ArrayRank:           int(n.Get("rank").Int()),
		IsEnum:              n.Get("enum").Bool(),
	}
	n.Get("typeArgs").ForEach(func(_, v gjson.Result) bool {
		t.TypeArgs = append(t.TypeArgs, typeRefFromJSON(v))
		return true
	})
	n.Get("tupleElements").ForEach(func(_, v gjson.Result) bool {
		t.TupleElements = append(t.TupleElements, typeRefFromJSON(v))
		return true
	})
	n.Get("subtypeOf").ForEach(func(_, v gjson.Result) bool {
		t = t.WithSubtypeOf(v.String())
		return true
	})
	if elem := n.Get("arrayElement"); elem.Exists() {
		t.ArrayElement = typeRefFromJSON(elem)
	}
	return t
}

func symbolFromJSON(n gjson.Result) *source.Symbol {
	sym := &source.Symbol{
		ID:                      n.Get("id").String(),
		Name:                    n.Get("name").String(),
		Kind:                    source.SymbolKind(n.Get("kind").Int()),
		ContainingType:          n.Get("containingType").String(),
		Accessibility:           source.Accessibility(n.Get("accessibility").Int()),
		IsStatic:                n.Get("isStatic").Bool(),
		FromReferencedBinary:    n.Get("fromReferencedBinary").Bool(),
		IsMethod:                n.Get("isMethod").Bool(),
		IsExtension:             n.Get("isExtension").Bool(),
		IsConstructor:           n.Get("isConstructor").Bool(),
		IsOperator:              n.Get("isOperator").Bool(),
		OperatorName:            n.Get("operatorName").String(),
		IsExplicitInterfaceImpl: n.Get("isExplicitInterfaceImpl").Bool(),
		ExplicitInterfaceName:   n.Get("explicitInterfaceName").String(),
		IsMain:                  n.Get("isMain").Bool(),
		IsAutoProperty:          n.Get("isAutoProperty").Bool(),
		ConstructorSelector:     int(n.Get("constructorSelector").Int()),
	}
	if t := n.Get("type"); t.Exists() {
		sym.Type = typeRefFromJSON(t)
	}
	n.Get("overrideChain").ForEach(func(_, v gjson.Result) bool {
		sym.OverrideChain = append(sym.OverrideChain, v.String())
		return true
	})
	n.Get("typeArgs").ForEach(func(_, v gjson.Result) bool {
		sym.TypeArgs = append(sym.TypeArgs, typeRefFromJSON(v))
		return true
	})
	n.Get("params").ForEach(func(_, v gjson.Result) bool {
		p := source.ParamInfo{
			Name:       v.Get("name").String(),
			IsRef:      v.Get("isRef").Bool(),
			IsOut:      v.Get("isOut").Bool(),
			IsParams:   v.Get("isParams").Bool(),
			HasDefault: v.Get("hasDefault").Bool(),
		}
		if pt := v.Get("type"); pt.Exists() {
			p.Type = typeRefFromJSON(pt)
		}
		sym.Params = append(sym.Params, p)
		return true
	})
	return sym
}
