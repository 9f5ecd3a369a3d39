package oracle

import (
	"encoding/xml"
	"fmt"

	"github.com/netlua/netlua/internal/source"
)

// xmlMetaFile is the on-disk shape of the `-m meta-files` XML documents
// (§6 "XML meta file. Per-method override templates."). No third-party
// XML library appears anywhere in the retrieval pack (grep confirms the
// one hit outside the standard library is a hand-rolled canonicalizer,
// not a parser), so this, and only this, leaf uses encoding/xml.
//
//	<Metadata>
//	  <Class name="System.Collections.Generic.List`1">
//	    <Method name="Add" template="{this}[#{this}.n + 1] = {0}" />
//	  </Class>
//	</Metadata>
type xmlMetaFile struct {
	XMLName xml.Name     `xml:"Metadata"`
	Classes []xmlClass   `xml:"Class"`
}

type xmlClass struct {
	Name    string      `xml:"name,attr"`
	Methods []xmlMethod `xml:"Method"`
}

type xmlMethod struct {
	Name     string `xml:"name,attr"`
	Template string `xml:"template,attr"`
	// Signature disambiguates overloads sharing a name; empty matches any
	// overload of that name.
	Signature string `xml:"signature,attr"`
}

// XMLMetadata is a Metadata implementation backed by one or more parsed
// meta files, merged in load order (a later file's entry for the same
// class+method overrides an earlier one).
type XMLMetadata struct {
	templates map[string]string // "Class.Method#signature" -> template
}

// LoadXMLMetadata parses each meta file's contents, in order, and merges
// their entries into the returned store.
func LoadXMLMetadata(docs ...[]byte) (*XMLMetadata, error) {
	m := &XMLMetadata{templates: map[string]string{}}
	for _, doc := range docs {
		var file xmlMetaFile
		if err := xml.Unmarshal(doc, &file); err != nil {
			return nil, fmt.Errorf("oracle: parse meta file: %w", err)
		}
		for _, class := range file.Classes {
			for _, method := range class.Methods {
				m.templates[metaKey(class.Name, method.Name, method.Signature)] = method.Template
				if method.Signature != "" {
					// Also index under the bare name so a caller that
					// doesn't disambiguate overloads still finds a match
					// when only one signature was registered.
					if _, exists := m.templates[metaKey(class.Name, method.Name, "")]; !exists {
						m.templates[metaKey(class.Name, method.Name, "")] = method.Template
					}
				}
			}
		}
	}
	return m, nil
}

func metaKey(class, method, signature string) string {
	if signature == "" {
		return class + "." + method
	}
	return class + "." + method + "#" + signature
}

// CodeTemplateFor implements Metadata.
func (m *XMLMetadata) CodeTemplateFor(sym *source.Symbol) (string, bool) {
	if sym == nil {
		return "", false
	}
	if t, ok := m.templates[metaKey(sym.ContainingType, sym.Name, signatureOf(sym))]; ok {
		return t, ok
	}
	t, ok := m.templates[metaKey(sym.ContainingType, sym.Name, "")]
	return t, ok
}

func signatureOf(sym *source.Symbol) string {
	sig := ""
	for i, p := range sym.Params {
		if i > 0 {
			sig += ","
		}
		if p.Type != nil {
			sig += p.Type.Name
		}
	}
	return sig
}
