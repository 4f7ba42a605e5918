package bib

import (
	"strings"

	"github.com/a-fent/bibtex/core/encoding"
)

// Field is one named field of an entry. Fields keep their declaration
// order; lookup goes through Entry.Field.
type Field struct {
	Name  string
	Value Value
}

// Entry is a bibliographic record keyed by a citation key, with a type
// (article, book, ...) and named fields.
type Entry struct {
	attached
	Key    string
	Type   string
	Fields []Field
}

// NewEntry creates an entry with the given type and key.
func NewEntry(entryType, key string) *Entry {
	return &Entry{Key: key, Type: strings.ToLower(entryType)}
}

// Set adds or replaces a field, preserving the position of an existing
// field with the same name.
func (e *Entry) Set(name string, value Value) *Entry {
	name = strings.ToLower(name)
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			e.Fields[i].Value = value
			return e
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: value})
	return e
}

// SetText adds or replaces a field with a single literal value.
func (e *Entry) SetText(name, text string) *Entry {
	return e.Set(name, NewValue(Literal(text)))
}

// Field returns the value of the named field and whether it exists.
func (e *Entry) Field(name string) (Value, bool) {
	name = strings.ToLower(name)
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// requiredFields maps standard BibTeX entry types to their required
// fields. Inner slices are alternatives: one of them must be present.
var requiredFields = map[string][][]string{
	"article":       {{"author"}, {"title"}, {"journal"}, {"year"}},
	"book":          {{"author", "editor"}, {"title"}, {"publisher"}, {"year"}},
	"booklet":       {{"title"}},
	"conference":    {{"author"}, {"title"}, {"booktitle"}, {"year"}},
	"inbook":        {{"author", "editor"}, {"title"}, {"chapter", "pages"}, {"publisher"}, {"year"}},
	"incollection":  {{"author"}, {"title"}, {"booktitle"}, {"publisher"}, {"year"}},
	"inproceedings": {{"author"}, {"title"}, {"booktitle"}, {"year"}},
	"manual":        {{"title"}},
	"mastersthesis": {{"author"}, {"title"}, {"school"}, {"year"}},
	"misc":          {},
	"phdthesis":     {{"author"}, {"title"}, {"school"}, {"year"}},
	"proceedings":   {{"title"}, {"year"}},
	"techreport":    {{"author"}, {"title"}, {"institution"}, {"year"}},
	"unpublished":   {{"author"}, {"title"}, {"note"}},
}

// Valid reports whether the entry carries every field its type
// requires. Unknown types have no requirements and are always valid.
func (e *Entry) Valid() bool {
	required, known := requiredFields[e.Type]
	if !known {
		return true
	}
	for _, alternatives := range required {
		satisfied := false
		for _, name := range alternatives {
			if _, ok := e.Field(name); ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// OnAttach registers the entry in the key index. The last registration
// for a key wins; duplicate keys are not rejected structurally.
func (e *Entry) OnAttach(b *Bibliography) Element {
	e.bib = b
	b.registerEntry(e)
	return e
}

// OnDetach removes the entry from the key index and clears the back
// reference.
func (e *Entry) OnDetach(b *Bibliography) Element {
	b.deregisterEntry(e)
	e.bib = nil
	return e
}

// ReplaceStrings substitutes macro references in every field value.
func (e *Entry) ReplaceStrings(reg SymbolRegistry) {
	for i := range e.Fields {
		e.Fields[i].Value = e.Fields[i].Value.Replace(reg)
	}
}

// JoinStrings flattens every resolved field value.
func (e *Entry) JoinStrings() {
	for i := range e.Fields {
		e.Fields[i].Value = e.Fields[i].Value.Join()
	}
}

// String renders the entry as BibTeX source.
func (e *Entry) String() string {
	var sb strings.Builder
	sb.WriteString("@")
	sb.WriteString(e.Type)
	sb.WriteString("{")
	sb.WriteString(e.Key)
	for _, f := range e.Fields {
		sb.WriteString(",\n  ")
		sb.WriteString(f.Name)
		sb.WriteString(" = ")
		sb.WriteString(f.Value.String())
	}
	sb.WriteString("\n}")
	return sb.String()
}

// RenderHash renders the entry as a flat string map with bibtex_key and
// bibtex_type carrying the key and type alongside the fields.
func (e *Entry) RenderHash() map[string]string {
	h := make(map[string]string, len(e.Fields)+2)
	h["bibtex_key"] = e.Key
	h["bibtex_type"] = e.Type
	for _, f := range e.Fields {
		h[f.Name] = f.Value.Text()
	}
	return h
}

// RenderXML renders the entry as an <entry> fragment with one child
// element per field. Field names are sanitized into XML names.
func (e *Entry) RenderXML() string {
	var sb strings.Builder
	sb.WriteString(`  <entry key="`)
	sb.WriteString(encoding.EscapeXMLAttr(e.Key))
	sb.WriteString(`" type="`)
	sb.WriteString(encoding.EscapeXMLAttr(e.Type))
	sb.WriteString("\">\n")
	for _, f := range e.Fields {
		name := xmlName(f.Name)
		sb.WriteString("    <")
		sb.WriteString(name)
		sb.WriteString(">")
		sb.WriteString(encoding.EscapeXML(f.Value.Text()))
		sb.WriteString("</")
		sb.WriteString(name)
		sb.WriteString(">\n")
	}
	sb.WriteString("  </entry>")
	return sb.String()
}

// xmlName sanitizes a field name into a valid XML element name.
func xmlName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9', r == '-', r == '.':
			if i == 0 {
				sb.WriteString("_")
			}
			sb.WriteRune(r)
		default:
			sb.WriteString("_")
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
