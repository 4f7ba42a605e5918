package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/a-fent/bibtex/core/bib"
	"github.com/a-fent/bibtex/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	position INTEGER PRIMARY KEY,
	key      TEXT NOT NULL,
	type     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fields (
	position INTEGER NOT NULL,
	ord      INTEGER NOT NULL,
	name     TEXT NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (position, ord)
);
CREATE TABLE IF NOT EXISTS macros (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	value    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS preambles (
	position INTEGER PRIMARY KEY,
	value    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comments (
	position INTEGER PRIMARY KEY,
	kind     TEXT NOT NULL,
	text     TEXT NOT NULL
);
`

// valueToken is the storable form of a single value token. Exactly one
// of Lit or Sym is set.
type valueToken struct {
	Lit *string `json:"lit,omitempty"`
	Sym *string `json:"sym,omitempty"`
}

func encodeValue(v bib.Value) (string, error) {
	tokens := make([]valueToken, 0, len(v))
	for _, tok := range v {
		switch t := tok.(type) {
		case bib.Literal:
			s := string(t)
			tokens = append(tokens, valueToken{Lit: &s})
		case bib.Symbol:
			s := string(t)
			tokens = append(tokens, valueToken{Sym: &s})
		default:
			return "", errors.NewArgument("encode value", fmt.Sprintf("unknown token type %T", tok))
		}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", errors.Wrap(err, "encode value")
	}
	return string(data), nil
}

func decodeValue(data string) (bib.Value, error) {
	var tokens []valueToken
	if err := json.Unmarshal([]byte(data), &tokens); err != nil {
		return nil, errors.Wrap(err, "decode value")
	}
	v := make(bib.Value, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case tok.Lit != nil:
			v = append(v, bib.Literal(*tok.Lit))
		case tok.Sym != nil:
			v = append(v, bib.Symbol(*tok.Sym))
		default:
			return nil, errors.NewArgument("decode value", "token has neither literal nor symbol")
		}
	}
	return v, nil
}

// Save writes a bibliography to the SQLite database at path, replacing
// any bibliography already stored there. Element order is preserved via
// a global position column shared across the element tables.
func Save(path string, b *bib.Bibliography) error {
	db, err := OpenDB(path)
	if err != nil {
		return errors.NewIO("open database", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return errors.NewIO("create schema", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewIO("begin transaction", path, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "fields", "macros", "preambles", "comments"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errors.NewIO("clear table", path, err)
		}
	}

	for pos, el := range b.Elements() {
		if err := saveElement(tx, pos, el); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", path, err)
	}
	return nil
}

func saveElement(tx *sql.Tx, pos int, el bib.Element) error {
	switch e := el.(type) {
	case *bib.Entry:
		if _, err := tx.Exec("INSERT INTO entries (position, key, type) VALUES (?, ?, ?)", pos, e.Key, e.Type); err != nil {
			return errors.Wrap(err, "save entry")
		}
		for ord, f := range e.Fields {
			val, err := encodeValue(f.Value)
			if err != nil {
				return err
			}
			if _, err := tx.Exec("INSERT INTO fields (position, ord, name, value) VALUES (?, ?, ?, ?)",
				pos, ord, f.Name, val); err != nil {
				return errors.Wrap(err, "save field")
			}
		}
	case *bib.Macro:
		val, err := encodeValue(e.Value)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO macros (position, name, value) VALUES (?, ?, ?)", pos, e.Name, val); err != nil {
			return errors.Wrap(err, "save macro")
		}
	case *bib.Preamble:
		val, err := encodeValue(e.Value)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO preambles (position, value) VALUES (?, ?)", pos, val); err != nil {
			return errors.Wrap(err, "save preamble")
		}
	case *bib.Comment:
		if _, err := tx.Exec("INSERT INTO comments (position, kind, text) VALUES (?, 'comment', ?)", pos, e.Text); err != nil {
			return errors.Wrap(err, "save comment")
		}
	case *bib.MetaComment:
		if _, err := tx.Exec("INSERT INTO comments (position, kind, text) VALUES (?, 'meta', ?)", pos, e.Text); err != nil {
			return errors.Wrap(err, "save meta comment")
		}
	default:
		return errors.NewArgument("save element", fmt.Sprintf("unsupported element type %T", el))
	}
	return nil
}

// Load reads a bibliography from the SQLite database at path. Elements
// are rebuilt in their stored position order, so derived indexes come
// out identical to the saved bibliography's.
func Load(path string) (*bib.Bibliography, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, errors.NewIO("open database", path, err)
	}
	defer db.Close()

	byPos := make(map[int]bib.Element)
	var positions []int

	record := func(pos int, el bib.Element) {
		byPos[pos] = el
		positions = append(positions, pos)
	}

	if err := loadEntries(db, record); err != nil {
		return nil, err
	}
	if err := loadMacros(db, record); err != nil {
		return nil, err
	}
	if err := loadPreambles(db, record); err != nil {
		return nil, err
	}
	if err := loadComments(db, record); err != nil {
		return nil, err
	}

	sort.Ints(positions)

	b := bib.New()
	for _, pos := range positions {
		if err := b.Add(byPos[pos]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func loadEntries(db *sql.DB, record func(int, bib.Element)) error {
	rows, err := db.Query("SELECT position, key, type FROM entries ORDER BY position")
	if err != nil {
		return errors.Wrap(err, "load entries")
	}
	defer rows.Close()

	entries := make(map[int]*bib.Entry)
	for rows.Next() {
		var pos int
		var key, typ string
		if err := rows.Scan(&pos, &key, &typ); err != nil {
			return errors.Wrap(err, "scan entry")
		}
		e := bib.NewEntry(typ, key)
		entries[pos] = e
		record(pos, e)
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "load entries")
	}

	frows, err := db.Query("SELECT position, name, value FROM fields ORDER BY position, ord")
	if err != nil {
		return errors.Wrap(err, "load fields")
	}
	defer frows.Close()

	for frows.Next() {
		var pos int
		var name, raw string
		if err := frows.Scan(&pos, &name, &raw); err != nil {
			return errors.Wrap(err, "scan field")
		}
		e, ok := entries[pos]
		if !ok {
			return errors.NewArgument("load fields", fmt.Sprintf("field at position %d has no entry", pos))
		}
		val, err := decodeValue(raw)
		if err != nil {
			return err
		}
		e.Set(name, val)
	}
	return frows.Err()
}

func loadMacros(db *sql.DB, record func(int, bib.Element)) error {
	rows, err := db.Query("SELECT position, name, value FROM macros ORDER BY position")
	if err != nil {
		return errors.Wrap(err, "load macros")
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var name, raw string
		if err := rows.Scan(&pos, &name, &raw); err != nil {
			return errors.Wrap(err, "scan macro")
		}
		val, err := decodeValue(raw)
		if err != nil {
			return err
		}
		record(pos, &bib.Macro{Name: name, Value: val})
	}
	return rows.Err()
}

func loadPreambles(db *sql.DB, record func(int, bib.Element)) error {
	rows, err := db.Query("SELECT position, value FROM preambles ORDER BY position")
	if err != nil {
		return errors.Wrap(err, "load preambles")
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var raw string
		if err := rows.Scan(&pos, &raw); err != nil {
			return errors.Wrap(err, "scan preamble")
		}
		val, err := decodeValue(raw)
		if err != nil {
			return err
		}
		record(pos, &bib.Preamble{Value: val})
	}
	return rows.Err()
}

func loadComments(db *sql.DB, record func(int, bib.Element)) error {
	rows, err := db.Query("SELECT position, kind, text FROM comments ORDER BY position")
	if err != nil {
		return errors.Wrap(err, "load comments")
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var kind, text string
		if err := rows.Scan(&pos, &kind, &text); err != nil {
			return errors.Wrap(err, "scan comment")
		}
		if kind == "meta" {
			record(pos, bib.NewMetaComment(text))
		} else {
			record(pos, bib.NewComment(text))
		}
	}
	return rows.Err()
}
