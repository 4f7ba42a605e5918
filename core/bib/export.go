package bib

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// String renders every element in order as BibTeX source. When each
// element renders itself correctly the result is itself parsable.
func (b *Bibliography) String() string {
	if len(b.elements) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.elements))
	for _, el := range b.elements {
		parts = append(parts, el.String())
	}
	return strings.Join(parts, "\n") + "\n"
}

// ToHash renders each entry as a flat string map, in insertion order.
// Non-entry variants contribute nothing.
func (b *Bibliography) ToHash() []map[string]string {
	var out []map[string]string
	for _, el := range b.elements {
		if h, ok := el.(HashRenderer); ok {
			out = append(out, h.RenderHash())
		}
	}
	return out
}

// ToJSON serializes the hash rendering as indented JSON.
func (b *Bibliography) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b.ToHash(), "", "  ")
}

// ToYAML serializes the hash rendering as YAML.
func (b *Bibliography) ToYAML() ([]byte, error) {
	return yaml.Marshal(b.ToHash())
}

// EscapeFieldText applies esc to every literal token of every entry
// field, leaving symbols untouched so resolution still works on the
// escaped values. Intended for escapers like encoding.EscapeLaTeX
// before the rendered text is handed to a LaTeX document.
func (b *Bibliography) EscapeFieldText(esc func(string) string) {
	for _, e := range b.Entries() {
		for i := range e.Fields {
			e.Fields[i].Value = e.Fields[i].Value.MapLiterals(esc)
		}
	}
}

// ToXML renders the bibliography as an XML document: a UTF-8
// declaration, a root element named bibliography, and one child per
// entry in insertion order.
func (b *Bibliography) ToXML() []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n<bibliography>\n")
	for _, el := range b.elements {
		if x, ok := el.(XMLRenderer); ok {
			sb.WriteString(x.RenderXML())
			sb.WriteString("\n")
		}
	}
	sb.WriteString("</bibliography>\n")
	return []byte(sb.String())
}
