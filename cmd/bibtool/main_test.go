package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

func newParser(t *testing.T) *kong.Kong {
	t.Helper()
	parser, err := kong.New(&CLI, kong.Name("bibtool"))
	if err != nil {
		t.Fatalf("CLI grammar: %v", err)
	}
	return parser
}

func bibFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, []byte("@misc{k, title = {T}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommands(t *testing.T) {
	path := bibFile(t)
	argv := [][]string{
		{"version"},
		{"convert", path, "--to", "yaml", "--resolve", "--escape"},
		{"validate", path},
		{"query", path, "--key", "k"},
		{"resolve", path},
		{"dedupe", path},
		{"db", "export", path, "--db", filepath.Join(t.TempDir(), "refs.db")},
	}
	for _, args := range argv {
		if _, err := newParser(t).Parse(args); err != nil {
			t.Errorf("Parse(%v): %v", args, err)
		}
	}
}

func TestParseRejectsUnknownFormat(t *testing.T) {
	if _, err := newParser(t).Parse([]string{"convert", bibFile(t), "--to", "toml"}); err == nil {
		t.Error("unknown --to value should be rejected")
	}
}

func TestQueryFlagsAreExclusive(t *testing.T) {
	args := []string{"query", bibFile(t), "--key", "k", "--xpath", "//entry"}
	if _, err := newParser(t).Parse(args); err == nil {
		t.Error("--key and --xpath together should be rejected")
	}
}
