package bib

// defaultResolveKinds is the include set used when a resolution pass is
// given no explicit kinds: macro definitions, preambles and entries.
var defaultResolveKinds = []Kind{KindMacro, KindPreamble, KindEntry}

// ReplaceStrings substitutes macro references with the current value of
// the referenced macro, for every element whose exact variant is in the
// include set and which has the Replaceable capability. Elements
// lacking the capability are skipped silently.
//
// The pass walks elements in insertion order exactly once, with no
// fixpoint: a macro defined after its use site resolves to whatever its
// value was when the using element was visited. Chains work only when
// each definition precedes its use. Mutation is in place and not
// reversible.
func (b *Bibliography) ReplaceStrings(kinds ...Kind) {
	if len(kinds) == 0 {
		kinds = defaultResolveKinds
	}
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	for _, el := range b.elements {
		if !want[KindOf(el)] {
			continue
		}
		if r, ok := el.(Replaceable); ok {
			r.ReplaceStrings(b)
		}
	}
}

// JoinStrings flattens resolved values into single literals for every
// element whose exact variant is in the include set and which has the
// Joinable capability. Run it after ReplaceStrings to be meaningful;
// running it first leaves references unflattened, which is allowed and
// not an error.
func (b *Bibliography) JoinStrings(kinds ...Kind) {
	if len(kinds) == 0 {
		kinds = defaultResolveKinds
	}
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	for _, el := range b.elements {
		if !want[KindOf(el)] {
			continue
		}
		if j, ok := el.(Joinable); ok {
			j.JoinStrings()
		}
	}
}
