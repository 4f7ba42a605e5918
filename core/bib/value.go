package bib

import (
	"strings"
)

// Token is one fragment of a field value: either a Literal string or a
// Symbol referencing a named macro. The set is closed; the resolver
// dispatches on the concrete type.
type Token interface {
	isToken()
}

// Literal is a plain text fragment.
type Literal string

func (Literal) isToken() {}

// Symbol is a reference to a macro by name.
type Symbol string

func (Symbol) isToken() {}

// Value is an ordered sequence of tokens forming one field's content.
// Before resolution it may mix literals and symbols; Replace substitutes
// symbols and Join flattens adjacent literals.
type Value []Token

// NewValue builds a Value from the given tokens.
func NewValue(tokens ...Token) Value {
	return Value(tokens)
}

// Text returns the plain text content: literals verbatim, unresolved
// symbols as their bare names.
func (v Value) Text() string {
	var sb strings.Builder
	for _, tok := range v {
		switch t := tok.(type) {
		case Literal:
			sb.WriteString(string(t))
		case Symbol:
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// IsAtom reports whether the value is a single literal token.
func (v Value) IsAtom() bool {
	if len(v) != 1 {
		return false
	}
	_, ok := v[0].(Literal)
	return ok
}

// HasSymbols reports whether any token is an unresolved macro reference.
func (v Value) HasSymbols() bool {
	for _, tok := range v {
		if _, ok := tok.(Symbol); ok {
			return true
		}
	}
	return false
}

// SymbolRegistry resolves macro names to their current values.
// *Bibliography implements it over the constants index.
type SymbolRegistry interface {
	ResolveSymbol(name string) (Value, bool)
}

// Replace substitutes every Symbol token whose name the registry knows
// with a copy of the macro's current value, in place. Symbols the
// registry cannot resolve are left untouched. Replacement is a single
// pass and not reversible.
func (v Value) Replace(reg SymbolRegistry) Value {
	out := make(Value, 0, len(v))
	for _, tok := range v {
		sym, ok := tok.(Symbol)
		if !ok {
			out = append(out, tok)
			continue
		}
		resolved, found := reg.ResolveSymbol(string(sym))
		if !found {
			out = append(out, tok)
			continue
		}
		out = append(out, resolved...)
	}
	return out
}

// MapLiterals returns a copy of the value with f applied to every
// literal token. Symbol tokens pass through untouched, so a mapped
// value still resolves.
func (v Value) MapLiterals(f func(string) string) Value {
	out := make(Value, len(v))
	for i, tok := range v {
		if lit, ok := tok.(Literal); ok {
			out[i] = Literal(f(string(lit)))
		} else {
			out[i] = tok
		}
	}
	return out
}

// Join collapses runs of adjacent literal tokens into single literals.
// A fully resolved value becomes one literal; unresolved symbols stay
// as separate tokens.
func (v Value) Join() Value {
	if len(v) < 2 {
		return v
	}
	out := make(Value, 0, len(v))
	var run strings.Builder
	active := false
	flush := func() {
		if active {
			out = append(out, Literal(run.String()))
			run.Reset()
			active = false
		}
	}
	for _, tok := range v {
		switch t := tok.(type) {
		case Literal:
			run.WriteString(string(t))
			active = true
		default:
			flush()
			out = append(out, tok)
		}
	}
	flush()
	return out
}

// String renders the value as BibTeX source. A single literal renders
// braced (bare if numeric); concatenations render quoted literals and
// bare symbol names joined with #.
func (v Value) String() string {
	if len(v) == 0 {
		return "{}"
	}
	if v.IsAtom() {
		text := string(v[0].(Literal))
		if isNumeric(text) {
			return text
		}
		return "{" + text + "}"
	}
	parts := make([]string, 0, len(v))
	for _, tok := range v {
		switch t := tok.(type) {
		case Literal:
			// A literal containing a quote must render braced or the
			// output would not re-parse.
			if strings.Contains(string(t), `"`) {
				parts = append(parts, "{"+string(t)+"}")
			} else {
				parts = append(parts, `"`+string(t)+`"`)
			}
		case Symbol:
			parts = append(parts, string(t))
		}
	}
	return strings.Join(parts, " # ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
