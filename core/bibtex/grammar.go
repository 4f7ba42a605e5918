package bibtex

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/a-fent/bibtex/core/bib"
)

// declLexer tokenizes a single @-declaration. The stateful rules keep
// structural braces (entry body) apart from content braces (grouped
// field values), which nest via Push/Pop.
var declLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "At", Pattern: `@`, Action: lexer.Push("Decl")},
	},
	"Decl": {
		{Name: "BodyOpen", Pattern: `[{(]`, Action: lexer.Push("Body")},
		{Name: "Ident", Pattern: `[^\s"#%'(),={}@]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	},
	"Body": {
		{Name: "BodyClose", Pattern: `[})]`, Action: lexer.Pop()},
		{Name: "ValueOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "Quoted", Pattern: `"[^"]*"`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Concat", Pattern: `#`},
		{Name: "Ident", Pattern: `[^\s"#%'(),={}@]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	},
	"Braced": {
		{Name: "ValueOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "ValueClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Text", Pattern: `[^{}]+`},
	},
})

// Grammar ASTs. One root per declaration shape; the scanner has
// already identified the kind, so each shape parses unambiguously.

// entryAST matches @type{key, name = value, ...}. The key may be
// absent (@misc{, ...}); the parser assigns a generated key then.
type entryAST struct {
	Type   string      `parser:"At @Ident BodyOpen"`
	Key    string      `parser:"@Ident?"`
	Fields []*fieldAST `parser:"( Comma @@ )* Comma? BodyClose"`
}

// stringAST matches @string{name = value}.
type stringAST struct {
	Name  string   `parser:"At Ident BodyOpen @Ident Equals"`
	Value *exprAST `parser:"@@ Comma? BodyClose"`
}

// preambleAST matches @preamble{ value }.
type preambleAST struct {
	Value *exprAST `parser:"At Ident BodyOpen @@ BodyClose"`
}

type fieldAST struct {
	Name  string   `parser:"@Ident Equals"`
	Value *exprAST `parser:"@@"`
}

// exprAST is a #-concatenation of value parts.
type exprAST struct {
	Parts []*partAST `parser:"@@ ( Concat @@ )*"`
}

// partAST is one concatenation operand: a quoted string, a braced
// group, or a bare symbol. Numeric symbols become literals during
// conversion.
type partAST struct {
	Quoted *string    `parser:"  @Quoted"`
	Braced *bracedAST `parser:"| @@"`
	Symbol *string    `parser:"| @Ident"`
}

// bracedAST is a {...} group; nested groups are preserved verbatim.
type bracedAST struct {
	Chunks []*chunkAST `parser:"ValueOpen @@* ValueClose"`
}

type chunkAST struct {
	Text   *string    `parser:"  @Text"`
	Nested *bracedAST `parser:"| @@"`
}

var (
	entryParser = participle.MustBuild[entryAST](
		participle.Lexer(declLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	stringParser = participle.MustBuild[stringAST](
		participle.Lexer(declLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	preambleParser = participle.MustBuild[preambleAST](
		participle.Lexer(declLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// value converts a parsed expression into a bib.Value.
func (e *exprAST) value() bib.Value {
	if e == nil {
		return bib.NewValue()
	}
	tokens := make([]bib.Token, 0, len(e.Parts))
	for _, p := range e.Parts {
		switch {
		case p.Quoted != nil:
			tokens = append(tokens, bib.Literal(strings.Trim(*p.Quoted, `"`)))
		case p.Braced != nil:
			tokens = append(tokens, bib.Literal(p.Braced.flatten(false)))
		case p.Symbol != nil:
			// Bare numbers (year = 2009) are literals, not macro names.
			if isNumber(*p.Symbol) {
				tokens = append(tokens, bib.Literal(*p.Symbol))
			} else {
				tokens = append(tokens, bib.Symbol(*p.Symbol))
			}
		}
	}
	return bib.NewValue(tokens...)
}

// flatten renders a braced group back to text. The outermost braces
// are dropped; nested group braces are preserved.
func (b *bracedAST) flatten(keepBraces bool) string {
	var sb strings.Builder
	if keepBraces {
		sb.WriteString("{")
	}
	for _, c := range b.Chunks {
		if c.Text != nil {
			sb.WriteString(*c.Text)
		} else if c.Nested != nil {
			sb.WriteString(c.Nested.flatten(true))
		}
	}
	if keepBraces {
		sb.WriteString("}")
	}
	return sb.String()
}

// isNumber reports whether s consists only of digits.
func isNumber(s string) bool {
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
