package xml

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<bibliography>
  <entry key="pickaxe" type="article">
    <title>Programming Ruby</title>
    <year>2009</year>
  </entry>
  <entry key="texbook" type="book">
    <title>The TeXbook</title>
  </entry>
</bibliography>
`

func TestParseAndRoot(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root := doc.Root()
	if root == nil {
		t.Fatal("Root returned nil")
	}
	if root.Name() != "bibliography" {
		t.Errorf("root name = %q, want bibliography", root.Name())
	}
	if len(root.Children()) != 2 {
		t.Errorf("children = %d, want 2", len(root.Children()))
	}
}

func TestXPath(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	nodes, err := doc.XPath("//entry")
	if err != nil {
		t.Fatalf("XPath failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("matched %d nodes, want 2", len(nodes))
	}
	if nodes[0].Attr("key") != "pickaxe" {
		t.Errorf("first key = %q", nodes[0].Attr("key"))
	}

	titles, err := doc.XPath(`//entry[@type="book"]/title`)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 1 || titles[0].Text() != "The TeXbook" {
		t.Errorf("book title query = %v", titles)
	}
}

func TestXPathFirst(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	n, err := doc.XPathFirst(`//entry[@key="texbook"]`)
	if err != nil {
		t.Fatal(err)
	}
	if n == nil || n.Attr("type") != "book" {
		t.Errorf("XPathFirst = %v", n)
	}

	missing, err := doc.XPathFirst(`//entry[@key="absent"]`)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Error("expected nil for no match")
	}
}

func TestXPathInvalidExpression(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.XPath("//entry["); err == nil {
		t.Error("expected error for invalid xpath")
	}
}

func TestValidate(t *testing.T) {
	if res := Validate([]byte(sampleDoc)); !res.Valid {
		t.Errorf("well-formed document flagged invalid: %v", res.Errors)
	}

	res := Validate([]byte("<bibliography><entry></bibliography>"))
	if res.Valid {
		t.Error("malformed document should be invalid")
	}
	if len(res.Errors) == 0 {
		t.Error("expected at least one validation error")
	}
}

func TestFormat(t *testing.T) {
	ugly := `<?xml version="1.0" encoding="UTF-8"?><bibliography><entry key="k" type="misc"><title>T</title></entry></bibliography>`
	pretty, err := Format([]byte(ugly), "  ")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := string(pretty)
	if !strings.Contains(out, "\n  <entry") {
		t.Errorf("entry not indented:\n%s", out)
	}
	if !strings.Contains(out, "<title>T</title>") {
		t.Errorf("text content lost:\n%s", out)
	}
}

func TestSerialize(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	out := doc.Serialize()
	if !strings.Contains(string(out), `key="pickaxe"`) {
		t.Errorf("serialized output lost attributes: %s", out)
	}
}
