package digest

import (
	"testing"

	"github.com/a-fent/bibtex/core/bib"
)

func entry(key, title string) *bib.Entry {
	return bib.NewEntry("article", key).
		SetText("author", "A").
		SetText("title", title).
		SetText("journal", "J").
		SetText("year", "2001")
}

func TestEntryDigestIgnoresKey(t *testing.T) {
	a := entry("first", "Same Title")
	b := entry("second", "Same Title")
	if EntryDigest(a) != EntryDigest(b) {
		t.Error("entries differing only in key should share a digest")
	}
}

func TestEntryDigestIgnoresFieldOrder(t *testing.T) {
	a := bib.NewEntry("misc", "k1").SetText("x", "1").SetText("y", "2")
	b := bib.NewEntry("misc", "k2").SetText("y", "2").SetText("x", "1")
	if EntryDigest(a) != EntryDigest(b) {
		t.Error("field order should not affect the digest")
	}
}

func TestEntryDigestSensitivity(t *testing.T) {
	base := entry("k", "Title")
	changedTitle := entry("k", "Other Title")
	if EntryDigest(base) == EntryDigest(changedTitle) {
		t.Error("different content should produce different digests")
	}

	otherType := bib.NewEntry("book", "k").
		SetText("author", "A").
		SetText("title", "Title").
		SetText("journal", "J").
		SetText("year", "2001")
	if EntryDigest(base) == EntryDigest(otherType) {
		t.Error("entry type is part of the content")
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	if a != b {
		t.Error("Hash must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a == Hash([]byte("world")) {
		t.Error("different inputs should not collide")
	}
}

func TestDuplicates(t *testing.T) {
	b := bib.New()
	d1 := entry("a", "Dup")
	d2 := entry("b", "Dup")
	unique := entry("c", "Unique")
	if err := b.Add(d1, unique, d2); err != nil {
		t.Fatal(err)
	}

	groups := Duplicates(b)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("group size = %d, want 2", len(groups[0]))
	}
	if groups[0][0] != d1 || groups[0][1] != d2 {
		t.Error("group should preserve insertion order")
	}
}

func TestDuplicatesNone(t *testing.T) {
	b := bib.New()
	if err := b.Add(entry("a", "One"), entry("b", "Two")); err != nil {
		t.Fatal(err)
	}
	if groups := Duplicates(b); len(groups) != 0 {
		t.Errorf("expected no duplicate groups, got %v", groups)
	}
}
