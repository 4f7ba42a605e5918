package bibtex

import "strings"

// fragment is one slice of source text produced by the scanner: either
// a single @-declaration (brace-balanced) or the free text between
// declarations.
type fragment struct {
	text string
	line int    // 1-based line of the fragment start
	decl bool   // true for @-declarations
	kind string // lowercased declaration name, e.g. "string", "article"
	body string // inner text between the body delimiters (decl only)
	bad  bool   // scanner-level damage: missing body or unbalanced braces
}

// scan splits source text into declaration and meta-content fragments.
// Declarations start at a top-level @ and extend to the matching close
// delimiter; brace counting keeps nested groups inside one fragment.
// Damaged declarations are returned with bad set so the parser can
// retain them without aborting the rest of the file.
func scan(text string) []fragment {
	var frags []fragment
	line := 1
	metaStart := 0
	metaLine := 1

	flushMeta := func(end int) {
		if end > metaStart {
			frags = append(frags, fragment{
				text: text[metaStart:end],
				line: metaLine,
			})
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\n' {
			line++
			i++
			continue
		}
		if c != '@' {
			i++
			continue
		}

		flushMeta(i)
		start := i
		startLine := line

		// declaration name
		j := i + 1
		for j < len(text) && isNameChar(text[j]) {
			j++
		}
		kind := strings.ToLower(text[i+1 : j])

		// skip whitespace before the body delimiter
		k := j
		for k < len(text) && (text[k] == ' ' || text[k] == '\t' || text[k] == '\r' || text[k] == '\n') {
			if text[k] == '\n' {
				line++
			}
			k++
		}

		if k >= len(text) || (text[k] != '{' && text[k] != '(') || kind == "" {
			// No body: swallow up to the next @ (or EOF) as one bad fragment.
			end := k
			for end < len(text) && text[end] != '@' {
				if text[end] == '\n' {
					line++
				}
				end++
			}
			frags = append(frags, fragment{
				text: text[start:end],
				line: startLine,
				decl: true,
				kind: kind,
				bad:  true,
			})
			i = end
			metaStart = end
			metaLine = line
			continue
		}

		opener := text[k]
		bodyStart := k + 1
		depth := 0
		parens := 0
		end := -1
		for p := k; p < len(text); p++ {
			switch text[p] {
			case '\n':
				line++
			case '{':
				depth++
			case '}':
				depth--
				if opener == '{' && depth == 0 {
					end = p
				}
			case '(':
				parens++
			case ')':
				parens--
				if opener == '(' && depth == 0 && parens == 0 {
					end = p
				}
			}
			if end >= 0 {
				break
			}
		}

		if end < 0 {
			// Unterminated body: everything to EOF is one bad fragment.
			frags = append(frags, fragment{
				text: text[start:],
				line: startLine,
				decl: true,
				kind: kind,
				bad:  true,
			})
			i = len(text)
			metaStart = len(text)
			continue
		}

		frags = append(frags, fragment{
			text: text[start : end+1],
			line: startLine,
			decl: true,
			kind: kind,
			body: text[bodyStart:end],
		})
		i = end + 1
		metaStart = end + 1
		metaLine = line
	}
	flushMeta(len(text))
	return frags
}

// isNameChar reports whether c can appear in a declaration name.
func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
