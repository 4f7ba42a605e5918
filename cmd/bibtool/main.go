// Command bibtool is the CLI for working with BibTeX bibliographies:
// converting between formats, validating entries, resolving string
// constants, finding duplicates and moving data in and out of SQLite.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/a-fent/bibtex/core/bibtex"
	"github.com/a-fent/bibtex/core/digest"
	"github.com/a-fent/bibtex/core/encoding"
	"github.com/a-fent/bibtex/core/xml"
	"github.com/a-fent/bibtex/internal/fileutil"
	"github.com/a-fent/bibtex/internal/logging"
	"github.com/a-fent/bibtex/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for bibtool.
var CLI struct {
	// Global flags
	LogLevel    string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat   string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`
	IncludeMeta bool   `name:"include-meta" help:"Retain free text found between declarations"`

	Convert  ConvertCmd  `cmd:"" help:"Convert a bibliography to another format"`
	Validate ValidateCmd `cmd:"" help:"Check bibliographies for parse errors and missing fields"`
	Query    QueryCmd    `cmd:"" help:"Look up entries by key or XPath expression"`
	Resolve  ResolveCmd  `cmd:"" help:"Expand string constants and rewrite in place"`
	Dedupe   DedupeCmd   `cmd:"" help:"Report entries with identical content"`
	DB       DBGroup     `cmd:"" help:"SQLite database operations"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// DBGroup contains SQLite import and export operations.
type DBGroup struct {
	Export DBExportCmd `cmd:"" help:"Write a bibliography into a SQLite database"`
	Import DBImportCmd `cmd:"" help:"Read a bibliography out of a SQLite database"`
}

func parseOptions() bibtex.Options {
	return bibtex.Options{IncludeMeta: CLI.IncludeMeta}
}

// emit writes data to the --out path, or stdout when none is given.
func emit(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return fileutil.WriteFileAtomic(out, data)
}

// ConvertCmd converts a bibliography file to another representation.
type ConvertCmd struct {
	Path    string `arg:"" help:"Bibliography file (.bib, optionally .gz or .xz)" type:"existingfile"`
	To      string `default:"bib" enum:"bib,hash,json,yaml,xml" help:"Target format"`
	Out     string `help:"Output path (default: stdout)" type:"path"`
	Resolve bool   `help:"Expand string constants before converting"`
	Escape  bool   `help:"Escape LaTeX special characters in field text"`
}

func (c *ConvertCmd) Run() error {
	b, err := bibtex.Open(c.Path, parseOptions())
	if err != nil {
		return err
	}
	if c.Resolve {
		b.ReplaceStrings()
		b.JoinStrings()
	}
	if c.Escape {
		b.EscapeFieldText(encoding.EscapeLaTeX)
	}

	var data []byte
	switch c.To {
	case "bib":
		data = []byte(b.String())
	case "hash":
		var sb strings.Builder
		for _, h := range b.ToHash() {
			fmt.Fprintf(&sb, "%s (%s)\n", h["bibtex_key"], h["bibtex_type"])
			for name, value := range h {
				if name == "bibtex_key" || name == "bibtex_type" {
					continue
				}
				fmt.Fprintf(&sb, "  %s: %s\n", name, value)
			}
		}
		data = []byte(sb.String())
	case "json":
		data, err = b.ToJSON()
		if err != nil {
			return err
		}
		data = append(data, '\n')
	case "yaml":
		data, err = b.ToYAML()
		if err != nil {
			return err
		}
	case "xml":
		data, err = xml.Format(b.ToXML(), "  ")
		if err != nil {
			return err
		}
	}
	return emit(c.Out, data)
}

// ValidateCmd reports parse errors and missing required fields.
type ValidateCmd struct {
	Paths []string `arg:"" help:"Bibliography files to check" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	failed := 0
	for _, path := range c.Paths {
		b, err := bibtex.Open(path, parseOptions())
		if err != nil {
			return err
		}

		problems := 0
		for _, frag := range b.ParseErrors() {
			fmt.Printf("%s:%d: unparsable fragment: %v\n", path, frag.Line, frag.Err)
			problems++
		}
		for _, e := range b.Entries() {
			if !e.Valid() {
				fmt.Printf("%s: entry %q (%s) is missing required fields\n", path, e.Key, e.Type)
				problems++
			}
		}

		if problems == 0 {
			fmt.Printf("%s: OK (%d elements)\n", path, b.Len())
		} else {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

// QueryCmd looks up entries by citation key or by XPath against the
// XML rendering.
type QueryCmd struct {
	Path  string `arg:"" help:"Bibliography file" type:"existingfile"`
	Key   string `help:"Citation key to look up" xor:"query"`
	XPath string `name:"xpath" help:"XPath expression over the XML rendering" xor:"query"`
}

func (c *QueryCmd) Run() error {
	b, err := bibtex.Open(c.Path, parseOptions())
	if err != nil {
		return err
	}

	switch {
	case c.Key != "":
		e := b.Entry(c.Key)
		if e == nil {
			return fmt.Errorf("no entry with key %q", c.Key)
		}
		fmt.Println(e.String())
	case c.XPath != "":
		doc, err := xml.Parse(b.ToXML())
		if err != nil {
			return err
		}
		nodes, err := doc.XPath(c.XPath)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			fmt.Println(n.Text())
		}
	default:
		return fmt.Errorf("either --key or --xpath is required")
	}
	return nil
}

// ResolveCmd expands string constants and writes the result back.
type ResolveCmd struct {
	Path string `arg:"" help:"Bibliography file" type:"existingfile"`
	Out  string `help:"Output path (default: overwrite input)" type:"path"`
}

func (c *ResolveCmd) Run() error {
	b, err := bibtex.Open(c.Path, parseOptions())
	if err != nil {
		return err
	}
	b.ReplaceStrings()
	b.JoinStrings()

	out := c.Out
	if out == "" {
		out = c.Path
	}
	if err := b.SaveTo(out); err != nil {
		return err
	}
	fmt.Printf("Resolved: %s\n", out)
	return nil
}

// DedupeCmd reports groups of entries sharing a content digest.
type DedupeCmd struct {
	Path string `arg:"" help:"Bibliography file" type:"existingfile"`
}

func (c *DedupeCmd) Run() error {
	b, err := bibtex.Open(c.Path, parseOptions())
	if err != nil {
		return err
	}

	groups := digest.Duplicates(b)
	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}
	for i, group := range groups {
		fmt.Printf("Group %d (%s):\n", i+1, digest.EntryDigest(group[0])[:16])
		for _, e := range group {
			fmt.Printf("  %s (%s)\n", e.Key, e.Type)
		}
	}
	return fmt.Errorf("%d duplicate group(s) found", len(groups))
}

// DBExportCmd writes a bibliography into a SQLite database.
type DBExportCmd struct {
	Path string `arg:"" help:"Bibliography file" type:"existingfile"`
	DB   string `required:"" help:"SQLite database path" type:"path"`
}

func (c *DBExportCmd) Run() error {
	b, err := bibtex.Open(c.Path, parseOptions())
	if err != nil {
		return err
	}
	if err := store.Save(c.DB, b); err != nil {
		return err
	}
	fmt.Printf("Exported %d elements to %s\n", b.Len(), c.DB)
	return nil
}

// DBImportCmd reads a bibliography from a SQLite database.
type DBImportCmd struct {
	DB  string `arg:"" help:"SQLite database path" type:"existingfile"`
	Out string `help:"Output path (default: stdout)" type:"path"`
}

func (c *DBImportCmd) Run() error {
	b, err := store.Load(c.DB)
	if err != nil {
		return err
	}
	return emit(c.Out, []byte(b.String()))
}

// VersionCmd prints version and driver information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("bibtool %s\n", version)
	info := store.GetInfo()
	fmt.Printf("  sqlite driver: %s (%s)\n", info.DriverName, info.DriverType)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bibtool"),
		kong.Description("BibTeX bibliography toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
