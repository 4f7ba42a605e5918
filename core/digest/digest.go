// Package digest computes content fingerprints for bibliography
// entries. Two entries with the same type and the same field content
// share a digest regardless of their citation keys, which makes the
// digest a duplicate detector across merged bibliographies.
package digest

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/a-fent/bibtex/core/bib"
)

// EntryDigest returns the BLAKE3 hex digest of an entry's content.
// The citation key is excluded; field order does not matter.
func EntryDigest(e *bib.Entry) string {
	lines := make([]string, 0, len(e.Fields)+1)
	lines = append(lines, "type\x00"+e.Type)
	for _, f := range e.Fields {
		lines = append(lines, f.Name+"\x00"+f.Value.Text())
	}
	sort.Strings(lines[1:])

	sum := blake3.Sum256([]byte(strings.Join(lines, "\x01")))
	return hex.EncodeToString(sum[:])
}

// Hash computes the BLAKE3 hex digest of arbitrary data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Duplicates groups entries sharing a content digest, preserving
// insertion order within and across groups. Groups with a single
// member are omitted.
func Duplicates(b *bib.Bibliography) [][]*bib.Entry {
	order := make([]string, 0)
	groups := make(map[string][]*bib.Entry)
	for _, e := range b.Entries() {
		d := EntryDigest(e)
		if _, seen := groups[d]; !seen {
			order = append(order, d)
		}
		groups[d] = append(groups[d], e)
	}

	var out [][]*bib.Entry
	for _, d := range order {
		if len(groups[d]) > 1 {
			out = append(out, groups[d])
		}
	}
	return out
}
