// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The database is a read-only alternative to the delimited text file. It
// must contain an "alumni" table with the same six columns, in the same
// order, as the text format:
//
//	CREATE TABLE alumni (
//		name                   TEXT,
//		university             TEXT,
//		major                  TEXT,
//		field_after_graduation TEXT,
//		year_of_graduation     TEXT,  -- or INTEGER
//		notable_achievements   TEXT
//	)
//
// Rows go through parser.ParseRow exactly like text lines, so a NULL column
// or a year that is not an integer drops the row.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/aanand-mishra/alumni-api/internal/parser"
	"github.com/aanand-mishra/alumni-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// selectAlumni reads the six columns as text, in insertion order.
const selectAlumni = `
	SELECT name,
	       university,
	       major,
	       field_after_graduation,
	       CAST(year_of_graduation AS TEXT),
	       notable_achievements
	FROM alumni
	ORDER BY rowid
`

// SQLite reads alumni from the database file at Path.
//
// No *sql.DB is held between calls: every ListAlumni opens the file
// read-only and closes it again, so each request is an independent
// parse pass.
type SQLite struct {
	Path string
}

// New returns a SQLite source for path. The file is not opened until
// ListAlumni.
func New(path string) *SQLite {
	return &SQLite{Path: path}
}

// dsn builds a read-only URI for Path. mode=ro makes a missing file an
// error instead of silently creating an empty database.
//
// The path is made absolute and percent-encoded so that '?', '#' and '%'
// in a file name stay part of the name and are not read as URI syntax.
func (s *SQLite) dsn() (string, error) {
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: url.Values{"mode": {"ro"}}.Encode(),
	}
	return u.String(), nil
}

// ListAlumni opens the database, reads every row of the alumni table,
// and closes the database on every exit path.
func (s *SQLite) ListAlumni(ctx context.Context) ([]types.Alumni, parser.Report, error) {
	dsn, err := s.dsn()
	if err != nil {
		return []types.Alumni{}, parser.Report{}, fmt.Errorf("sqlite.ListAlumni: resolve path: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return []types.Alumni{}, parser.Report{}, fmt.Errorf("sqlite.ListAlumni: open db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectAlumni)
	if err != nil {
		return []types.Alumni{}, parser.Report{}, fmt.Errorf("sqlite.ListAlumni: query: %w", err)
	}
	defer rows.Close()

	acc := parser.NewAccumulator()
	for rows.Next() {
		var cols [parser.FieldCount]sql.NullString
		if err := rows.Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5]); err != nil {
			return []types.Alumni{}, acc.Report(), fmt.Errorf("sqlite.ListAlumni: scan: %w", err)
		}
		acc.Add(fields(cols[:]))
	}

	// rows.Err() reports errors that ended the iteration early.
	if err := rows.Err(); err != nil {
		return []types.Alumni{}, acc.Report(), fmt.Errorf("sqlite.ListAlumni: iterate rows: %w", err)
	}

	return acc.Records(), acc.Report(), nil
}

// fields turns scanned columns into a row for parser.ParseRow. The slice
// stops at the first NULL so a NULL column counts as a missing field.
func fields(cols []sql.NullString) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if !c.Valid {
			break
		}
		out = append(out, c.String)
	}
	return out
}
