package bib

import (
	"reflect"
	"strings"

	"github.com/a-fent/bibtex/core/errors"
	"github.com/a-fent/bibtex/internal/fileutil"
)

// ParseFragment is a retained piece of source text the parser could not
// turn into an element. Fragments are opaque to the container and never
// re-attempted.
type ParseFragment struct {
	Text string // the unparsable source text
	Line int    // 1-based line of the fragment start
	Err  error  // what the parser objected to
}

// Bibliography is an ordered collection of bibliography elements with
// derived lookup indexes for entries and macros. Element order is
// semantically significant: macro resolution and textual rendering
// both depend on it.
//
// A Bibliography is not internally synchronized; callers needing
// concurrent access must serialize it externally.
type Bibliography struct {
	// Path is the last file location this bibliography was opened
	// from or saved to.
	Path string

	elements []Element
	entries  map[string]*Entry
	macros   map[string]*Macro
	errs     []ParseFragment
}

// New creates an empty bibliography. Populate it with Add or Append.
func New() *Bibliography {
	return &Bibliography{
		entries: make(map[string]*Entry),
		macros:  make(map[string]*Macro),
	}
}

// normalizeKey normalizes a citation key for index lookup. Keys keep
// their case; BibTeX keys are case-sensitive.
func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}

// index registration, called from element OnAttach/OnDetach hooks

func (b *Bibliography) registerEntry(e *Entry) {
	b.entries[normalizeKey(e.Key)] = e
}

func (b *Bibliography) deregisterEntry(e *Entry) {
	key := normalizeKey(e.Key)
	if b.entries[key] == e {
		delete(b.entries, key)
	}
}

func (b *Bibliography) registerMacro(m *Macro) {
	b.macros[m.Name] = m
}

func (b *Bibliography) deregisterMacro(m *Macro) {
	if b.macros[m.Name] == m {
		delete(b.macros, m.Name)
	}
}

// Append adds a single element, invoking its attach hook. The hook's
// return value is what gets stored. Appending nil or an element still
// attached to another bibliography is an argument error and mutates
// nothing.
func (b *Bibliography) Append(e Element) (Element, error) {
	if e == nil {
		return nil, errors.NewArgument("append", "element is nil")
	}
	if v := reflect.ValueOf(e); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, errors.NewArgument("append", "element is nil")
	}
	if owner := e.Bibliography(); owner != nil && owner != b {
		return nil, errors.NewArgument("append", "element belongs to another bibliography")
	}
	stored := e.OnAttach(b)
	b.elements = append(b.elements, stored)
	return stored, nil
}

// Add appends each element in order, stopping at the first failure.
func (b *Bibliography) Add(elems ...Element) error {
	for _, e := range elems {
		if _, err := b.Append(e); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the first element equal to e, invoking its detach
// hook. Equality is identity first, structural as a fallback. Returns
// the removed element, or nil when absent.
func (b *Bibliography) Delete(e Element) Element {
	idx := b.indexOf(e)
	if idx < 0 {
		return nil
	}
	removed := b.elements[idx].OnDetach(b)
	b.elements = append(b.elements[:idx], b.elements[idx+1:]...)
	return removed
}

func (b *Bibliography) indexOf(e Element) int {
	for i, el := range b.elements {
		if el == e {
			return i
		}
	}
	for i, el := range b.elements {
		if reflect.DeepEqual(el, e) {
			return i
		}
	}
	return -1
}

// DeleteAll detaches every element and empties the collection. The
// indexes empty as a consequence of the detach hooks.
func (b *Bibliography) DeleteAll() {
	for _, el := range b.elements {
		el.OnDetach(b)
	}
	b.elements = nil
	// Hooks guarantee empty indexes for well-behaved elements; clear
	// directly so a misbehaving hook cannot leave stale state.
	b.entries = make(map[string]*Entry)
	b.macros = make(map[string]*Macro)
}

// Elements returns the ordered element slice. The slice is shared;
// mutating it is the caller's responsibility.
func (b *Bibliography) Elements() []Element {
	return b.elements
}

// Len returns the number of elements.
func (b *Bibliography) Len() int {
	return len(b.elements)
}

// Empty reports whether the bibliography holds no elements.
func (b *Bibliography) Empty() bool {
	return len(b.elements) == 0
}

// Entry returns the entry registered under the normalized key, or nil.
func (b *Bibliography) Entry(key string) *Entry {
	return b.entries[normalizeKey(key)]
}

// Macro returns the macro registered under the given name, or nil.
func (b *Bibliography) Macro(name string) *Macro {
	return b.macros[name]
}

// ResolveSymbol implements SymbolRegistry over the constants index,
// returning the macro's current (possibly already substituted) value.
func (b *Bibliography) ResolveSymbol(name string) (Value, bool) {
	m, ok := b.macros[name]
	if !ok {
		return nil, false
	}
	return m.Value, true
}

// findEntry scans the entry index linearly for a matching normalized
// key. Index-free fallback; Entry is the O(1) path.
func (b *Bibliography) findEntry(key string) *Entry {
	key = normalizeKey(key)
	for _, e := range b.entries {
		if normalizeKey(e.Key) == key {
			return e
		}
	}
	return nil
}

// findByType returns, in original order, every element whose variant is
// exactly one of the given kinds.
func (b *Bibliography) findByType(kinds ...Kind) []Element {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []Element
	for _, el := range b.elements {
		if want[KindOf(el)] {
			out = append(out, el)
		}
	}
	return out
}

// Entries returns all entries in insertion order.
func (b *Bibliography) Entries() []*Entry {
	var out []*Entry
	for _, el := range b.findByType(KindEntry) {
		out = append(out, el.(*Entry))
	}
	return out
}

// Macros returns all macro definitions in insertion order.
func (b *Bibliography) Macros() []*Macro {
	var out []*Macro
	for _, el := range b.findByType(KindMacro) {
		out = append(out, el.(*Macro))
	}
	return out
}

// Preambles returns all preambles in insertion order.
func (b *Bibliography) Preambles() []*Preamble {
	var out []*Preamble
	for _, el := range b.findByType(KindPreamble) {
		out = append(out, el.(*Preamble))
	}
	return out
}

// Comments returns all comments in insertion order.
func (b *Bibliography) Comments() []*Comment {
	var out []*Comment
	for _, el := range b.findByType(KindComment) {
		out = append(out, el.(*Comment))
	}
	return out
}

// MetaComments returns all meta comments in insertion order.
func (b *Bibliography) MetaComments() []*MetaComment {
	var out []*MetaComment
	for _, el := range b.findByType(KindMetaComment) {
		out = append(out, el.(*MetaComment))
	}
	return out
}

// RetainError appends a parse fragment to the error list.
func (b *Bibliography) RetainError(f ParseFragment) {
	b.errs = append(b.errs, f)
}

// ParseErrors returns the retained unparsable fragments.
func (b *Bibliography) ParseErrors() []ParseFragment {
	return b.errs
}

// HasErrors reports whether any parse fragments were retained.
func (b *Bibliography) HasErrors() bool {
	return len(b.errs) > 0
}

// Valid reports whether no parse errors were retained and every entry
// is individually valid. Non-entry variants are ignored.
func (b *Bibliography) Valid() bool {
	if b.HasErrors() {
		return false
	}
	for _, e := range b.Entries() {
		if !e.Valid() {
			return false
		}
	}
	return true
}

// SaveTo writes the textual rendering to path, overwriting it, and
// records path as the bibliography's location. I/O errors propagate
// unmodified.
func (b *Bibliography) SaveTo(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(b.String())); err != nil {
		return err
	}
	b.Path = path
	return nil
}

// Save writes the bibliography back to its last known location.
func (b *Bibliography) Save() error {
	if b.Path == "" {
		return errors.NewArgument("save", "bibliography has no path; use SaveTo")
	}
	return b.SaveTo(b.Path)
}
