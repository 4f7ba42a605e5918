package bib

import "fmt"

// Element is a node of a bibliography document. The variant set is
// closed: *Entry, *Macro, *Preamble, *Comment and *MetaComment.
//
// OnAttach and OnDetach are lifecycle hooks invoked by the container.
// A hook may adapt the element and must return the element to store;
// index registration happens inside OnAttach so each variant decides
// how (and whether) it indexes itself.
type Element interface {
	fmt.Stringer

	// OnAttach registers the element with b and returns the element
	// that the container should store.
	OnAttach(b *Bibliography) Element

	// OnDetach deregisters the element from b, clears the back
	// reference and returns the element.
	OnDetach(b *Bibliography) Element

	// Bibliography returns the containing bibliography, or nil when
	// the element is detached. The association is non-owning.
	Bibliography() *Bibliography
}

// Replaceable is the capability of substituting macro references in
// place. Entries, macros and preambles have it; comments do not.
type Replaceable interface {
	ReplaceStrings(reg SymbolRegistry)
}

// Joinable is the capability of flattening a resolved value into a
// single literal.
type Joinable interface {
	JoinStrings()
}

// HashRenderer is the capability of rendering to a flat string map.
// Only entries have it; ToHash skips everything else.
type HashRenderer interface {
	RenderHash() map[string]string
}

// XMLRenderer is the capability of rendering to an XML fragment.
type XMLRenderer interface {
	RenderXML() string
}

// Kind identifies the concrete variant of an Element. Filters match
// kinds exactly, never polymorphically.
type Kind int

const (
	KindEntry Kind = iota
	KindMacro
	KindPreamble
	KindComment
	KindMetaComment
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindMacro:
		return "macro"
	case KindPreamble:
		return "preamble"
	case KindComment:
		return "comment"
	case KindMetaComment:
		return "meta_comment"
	default:
		return "unknown"
	}
}

// KindOf returns the exact variant of e.
func KindOf(e Element) Kind {
	switch e.(type) {
	case *Entry:
		return KindEntry
	case *Macro:
		return KindMacro
	case *Preamble:
		return KindPreamble
	case *Comment:
		return KindComment
	case *MetaComment:
		return KindMetaComment
	default:
		return Kind(-1)
	}
}

// attached holds the non-owning back-reference from an element to its
// bibliography. Embedded by every variant.
type attached struct {
	bib *Bibliography
}

// Bibliography returns the containing bibliography, or nil.
func (a *attached) Bibliography() *Bibliography {
	return a.bib
}

// Macro is a named reusable text fragment (a BibTeX @string constant)
// referenced from other elements' values.
type Macro struct {
	attached
	Name  string
	Value Value
}

// NewMacro creates a macro definition with a literal value.
func NewMacro(name, text string) *Macro {
	return &Macro{Name: name, Value: NewValue(Literal(text))}
}

// OnAttach registers the macro under its name. A later definition of
// the same name wins.
func (m *Macro) OnAttach(b *Bibliography) Element {
	m.bib = b
	b.registerMacro(m)
	return m
}

// OnDetach removes the macro from the constants index.
func (m *Macro) OnDetach(b *Bibliography) Element {
	b.deregisterMacro(m)
	m.bib = nil
	return m
}

// ReplaceStrings substitutes macro references inside the definition,
// so later definitions can build on earlier ones.
func (m *Macro) ReplaceStrings(reg SymbolRegistry) {
	m.Value = m.Value.Replace(reg)
}

// JoinStrings flattens the resolved definition.
func (m *Macro) JoinStrings() {
	m.Value = m.Value.Join()
}

// String renders the macro as an @string declaration.
func (m *Macro) String() string {
	return "@string{ " + m.Name + " = " + m.Value.String() + " }"
}

// Preamble is raw fore-matter carried through to the generated
// bibliography unresolved.
type Preamble struct {
	attached
	Value Value
}

// NewPreamble creates a preamble with a literal value.
func NewPreamble(text string) *Preamble {
	return &Preamble{Value: NewValue(Literal(text))}
}

// OnAttach sets the back-reference; preambles are not indexed.
func (p *Preamble) OnAttach(b *Bibliography) Element {
	p.bib = b
	return p
}

// OnDetach clears the back-reference.
func (p *Preamble) OnDetach(b *Bibliography) Element {
	p.bib = nil
	return p
}

// ReplaceStrings substitutes macro references in the preamble value.
func (p *Preamble) ReplaceStrings(reg SymbolRegistry) {
	p.Value = p.Value.Replace(reg)
}

// JoinStrings flattens the resolved preamble value.
func (p *Preamble) JoinStrings() {
	p.Value = p.Value.Join()
}

// String renders the preamble as an @preamble declaration.
func (p *Preamble) String() string {
	return "@preamble{ " + p.Value.String() + " }"
}

// Comment is the content of an @comment declaration, retained for
// round-trip fidelity. It takes no part in resolution or validity.
type Comment struct {
	attached
	Text string
}

// NewComment creates a comment element.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// OnAttach sets the back-reference; comments are not indexed.
func (c *Comment) OnAttach(b *Bibliography) Element {
	c.bib = b
	return c
}

// OnDetach clears the back-reference.
func (c *Comment) OnDetach(b *Bibliography) Element {
	c.bib = nil
	return c
}

// String renders the comment as an @comment declaration.
func (c *Comment) String() string {
	return "@comment{" + c.Text + "}"
}

// MetaComment is free text found between declarations.
type MetaComment struct {
	attached
	Text string
}

// NewMetaComment creates a meta comment element.
func NewMetaComment(text string) *MetaComment {
	return &MetaComment{Text: text}
}

// OnAttach sets the back-reference; meta comments are not indexed.
func (m *MetaComment) OnAttach(b *Bibliography) Element {
	m.bib = b
	return m
}

// OnDetach clears the back-reference.
func (m *MetaComment) OnDetach(b *Bibliography) Element {
	m.bib = nil
	return m
}

// String returns the text verbatim.
func (m *MetaComment) String() string {
	return m.Text
}
