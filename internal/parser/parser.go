// Package parser turns the comma-delimited alumni source into a slice of
// types.Alumni.
//
// SOURCE FORMAT:
//
//	name,university,major,fieldAfterGraduation,yearOfGraduation,notableAchievements
//	Alice,MIT,CS,Software,2020,Award
//	Bob,MIT,EE,Hardware,2019,
//
// The first line is always treated as a header and skipped. Each following
// line is split on "," with no quote handling, so a quoted value that
// contains a comma changes the field count and the row is dropped.
//
// ROW POLICY:
// ───────────
// A row becomes a record only when it has exactly six fields AND the year
// column parses as a base-10 integer. Every other row is dropped silently:
// no partial record, no error to the caller. The drop is a data value
// (ParseRow returns a sentinel error) that Parse counts in its Report.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aanand-mishra/alumni-api/internal/types"
)

const (
	// FieldCount is the number of columns every accepted row must have.
	FieldCount = 6

	// Delimiter separates the columns of a row.
	Delimiter = ","
)

// Column positions inside a row.
const (
	colName = iota
	colUniversity
	colMajor
	colFieldAfterGraduation
	colYearOfGraduation
	colNotableAchievements
)

var (
	// ErrFieldCount marks a row that does not have exactly FieldCount fields.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrGraduationYear marks a row whose year column is not an integer.
	ErrGraduationYear = errors.New("graduation year is not an integer")
)

// Report counts what happened to the rows of one parse pass.
type Report struct {
	Accepted       int
	RejectedFields int
	RejectedYear   int
}

// Rejected returns the total number of dropped rows.
func (r Report) Rejected() int {
	return r.RejectedFields + r.RejectedYear
}

// record notes the outcome of one row.
func (r *Report) record(err error) {
	switch {
	case err == nil:
		r.Accepted++
	case errors.Is(err, ErrFieldCount):
		r.RejectedFields++
	case errors.Is(err, ErrGraduationYear):
		r.RejectedYear++
	}
}

// ParseRow validates one already-split row and converts it into a record.
//
// The returned record has ID 0. The caller owns numbering because the id
// depends on how many rows were accepted before this one in the same pass.
func ParseRow(fields []string) (types.Alumni, error) {
	if len(fields) != FieldCount {
		return types.Alumni{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), FieldCount)
	}

	year, err := strconv.Atoi(strings.TrimSpace(fields[colYearOfGraduation]))
	if err != nil {
		return types.Alumni{}, fmt.Errorf("%w: %q", ErrGraduationYear, fields[colYearOfGraduation])
	}

	return types.Alumni{
		Name:                 strings.TrimSpace(fields[colName]),
		University:           strings.TrimSpace(fields[colUniversity]),
		Major:                strings.TrimSpace(fields[colMajor]),
		FieldAfterGraduation: strings.TrimSpace(fields[colFieldAfterGraduation]),
		YearOfGraduation:     year,
		NotableAchievements:  strings.TrimSpace(fields[colNotableAchievements]),
	}, nil
}

// Accumulator numbers accepted rows for a single parse pass.
//
// It is the only place ids are assigned: the id of a record is its
// position in the accepted output, so every new Accumulator starts
// again at 1 and no counter outlives the pass.
type Accumulator struct {
	records []types.Alumni
	report  Report
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{records: []types.Alumni{}}
}

// Add runs fields through ParseRow and keeps the row if it is accepted.
func (a *Accumulator) Add(fields []string) {
	rec, err := ParseRow(fields)
	a.report.record(err)
	if err != nil {
		return
	}
	rec.ID = len(a.records) + 1
	a.records = append(a.records, rec)
}

// Records returns the accepted records in source order.
func (a *Accumulator) Records() []types.Alumni {
	return a.records
}

// Report returns the row counts gathered so far.
func (a *Accumulator) Report() Report {
	return a.report
}

// lineReader splits a source into lines ending in "\n", "\r\n" or a bare
// "\r". Lines have no length limit; the source size is the only bound.
type lineReader struct {
	br *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

// next returns the following line without its terminator, or io.EOF once
// the source is exhausted. A final line with no terminator is still
// returned.
func (l *lineReader) next() (string, error) {
	var sb strings.Builder
	for {
		b, err := l.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if peek, err := l.br.Peek(1); err == nil && peek[0] == '\n' {
				_, _ = l.br.ReadByte()
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// Parse reads a whole source from r.
//
// On a read error the pass is abandoned: the returned slice is empty
// (never nil, so it encodes as []) and the error is returned for the
// caller to log.
func Parse(r io.Reader) ([]types.Alumni, Report, error) {
	lines := newLineReader(r)
	acc := NewAccumulator()

	// Skip the header. On an empty source this is a no-op.
	if _, err := lines.next(); err != nil && !errors.Is(err, io.EOF) {
		return []types.Alumni{}, acc.Report(), fmt.Errorf("parser.Parse: read source: %w", err)
	}

	for {
		line, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []types.Alumni{}, acc.Report(), fmt.Errorf("parser.Parse: read source: %w", err)
		}
		acc.Add(strings.Split(line, Delimiter))
	}

	return acc.Records(), acc.Report(), nil
}

// ParseFile opens path, parses it, and closes it again before returning.
//
// A missing or unreadable file is reported as an error alongside an empty
// slice; the caller decides whether that is fatal (for the HTTP layer it
// is not).
func ParseFile(path string) ([]types.Alumni, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return []types.Alumni{}, Report{}, fmt.Errorf("parser.ParseFile: open source: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
