package oracle

import (
	"testing"

	"github.com/netlua/netlua/internal/source"
)

func TestJSONStoreSymbolAndType(t *testing.T) {
	store := NewJSONStore(`{}`)
	store, err := store.Set("n1.symbol.name", "Speak")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store, err = store.Set("n1.symbol.isMethod", true)
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store, err = store.Set("n1.type.name", "System.String")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sym := store.SymbolOf("n1")
	if sym == nil || sym.Name != "Speak" || !sym.IsMethod {
		t.Fatalf("SymbolOf() = %+v, want Name=Speak IsMethod=true", sym)
	}

	typ := store.TypeOf("n1")
	if typ == nil || typ.Name != "System.String" {
		t.Fatalf("TypeOf() = %+v, want Name=System.String", typ)
	}
}

func TestJSONStoreMissingNode(t *testing.T) {
	store := NewJSONStore(`{}`)
	if sym := store.SymbolOf("missing"); sym != nil {
		t.Errorf("SymbolOf() = %+v, want nil", sym)
	}
	if _, ok := store.ConstantValueOf("missing"); ok {
		t.Errorf("ConstantValueOf() ok = true, want false")
	}
}

func TestJSONStoreConstantValue(t *testing.T) {
	store := NewJSONStore(`{}`)
	store, err := store.Set("n2.constant", "42")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok := store.ConstantValueOf("n2")
	if !ok || v != "42" {
		t.Fatalf("ConstantValueOf() = (%q, %v), want (42, true)", v, ok)
	}
}

func TestXMLMetadataCodeTemplateFor(t *testing.T) {
	doc := []byte(`<Metadata>
  <Class name="System.Collections.Generic.List">
    <Method name="Add" template="{this}[#{this} + 1] = {0}" />
  </Class>
</Metadata>`)

	meta, err := LoadXMLMetadata(doc)
	if err != nil {
		t.Fatalf("LoadXMLMetadata() error = %v", err)
	}

	sym := &source.Symbol{ContainingType: "System.Collections.Generic.List", Name: "Add"}
	tmpl, ok := meta.CodeTemplateFor(sym)
	if !ok {
		t.Fatal("CodeTemplateFor() ok = false, want true")
	}
	if want := "{this}[#{this} + 1] = {0}"; tmpl != want {
		t.Fatalf("CodeTemplateFor() = %q, want %q", tmpl, want)
	}
}

func TestXMLMetadataMissingReturnsFalse(t *testing.T) {
	meta, err := LoadXMLMetadata([]byte(`<Metadata></Metadata>`))
	if err != nil {
		t.Fatalf("LoadXMLMetadata() error = %v", err)
	}
	sym := &source.Symbol{ContainingType: "Foo", Name: "Bar"}
	if _, ok := meta.CodeTemplateFor(sym); ok {
		t.Error("CodeTemplateFor() ok = true, want false")
	}
}
