// Package bibtex parses BibTeX source text into a bib.Bibliography.
//
// Parsing is fragment-oriented: the scanner isolates each
// @-declaration, so a malformed declaration is retained as a parse
// error without aborting the rest of the file. The bibliography is
// populated purely through Add/Append, which keeps the parser
// interchangeable with any other producer honoring that contract.
package bibtex

import (
	"strings"

	"github.com/google/uuid"

	"github.com/a-fent/bibtex/core/bib"
	"github.com/a-fent/bibtex/core/errors"
	"github.com/a-fent/bibtex/internal/fileutil"
	"github.com/a-fent/bibtex/internal/logging"
)

// Options controls parser behavior.
type Options struct {
	// IncludeMeta retains free text between declarations as
	// MetaComment elements. Off by default: most callers only care
	// about declarations.
	IncludeMeta bool
}

// Parse parses BibTeX source text. Malformed declarations never fail
// the parse; they are retained in the bibliography's error list with
// their line numbers.
func Parse(text string, opts Options) *bib.Bibliography {
	b := bib.New()
	for _, frag := range scan(text) {
		if !frag.decl {
			if opts.IncludeMeta && strings.TrimSpace(frag.text) != "" {
				// Add cannot fail for a freshly constructed element.
				_ = b.Add(bib.NewMetaComment(strings.TrimSpace(frag.text)))
			}
			continue
		}
		if frag.bad {
			b.RetainError(bib.ParseFragment{
				Text: frag.text,
				Line: frag.line,
				Err:  errors.NewParse("BibTeX", "", "malformed declaration"),
			})
			continue
		}
		if el, err := parseDecl(frag); err != nil {
			b.RetainError(bib.ParseFragment{
				Text: frag.text,
				Line: frag.line,
				Err:  err,
			})
		} else if el != nil {
			_ = b.Add(el)
		}
	}
	return b
}

// parseDecl parses one well-delimited declaration fragment.
func parseDecl(frag fragment) (bib.Element, error) {
	switch frag.kind {
	case "comment":
		return bib.NewComment(frag.body), nil
	case "string":
		ast, err := stringParser.ParseString("", frag.text)
		if err != nil {
			return nil, err
		}
		return &bib.Macro{Name: ast.Name, Value: ast.Value.value()}, nil
	case "preamble":
		ast, err := preambleParser.ParseString("", frag.text)
		if err != nil {
			return nil, err
		}
		return &bib.Preamble{Value: ast.Value.value()}, nil
	default:
		ast, err := entryParser.ParseString("", frag.text)
		if err != nil {
			return nil, err
		}
		key := strings.TrimSpace(ast.Key)
		if key == "" {
			// Keyless entries stay addressable under a generated key.
			key = "unknown-" + uuid.NewString()[:8]
		}
		e := bib.NewEntry(ast.Type, key)
		for _, f := range ast.Fields {
			e.Set(f.Name, f.Value.value())
		}
		return e, nil
	}
}

// Open reads a BibTeX file (with transparent .gz/.xz decompression),
// parses it and records the path on the returned bibliography. I/O
// errors propagate to the caller; parse-level problems do not fail the
// call but populate the bibliography's error list.
func Open(path string, opts Options) (*bib.Bibliography, error) {
	data, err := fileutil.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	logging.FileRead(path, len(data))

	b := Parse(string(data), opts)
	b.Path = path
	logging.ParseResult(path, b.Len(), len(b.ParseErrors()))
	return b, nil
}
