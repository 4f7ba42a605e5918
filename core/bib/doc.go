// Package bib implements the in-memory bibliographic document
// container: an ordered collection of typed elements (entries, macro
// definitions, preambles and comments) with derived lookup indexes,
// order-sensitive macro resolution, and rendering to BibTeX source,
// flat hashes, JSON, YAML and XML.
//
// Parsing lives in core/bibtex; this package only requires that a
// parser populates a Bibliography through Add or Append.
package bib
