// Package csvfile implements storage.Storage on top of the comma-delimited
// alumni file.
package csvfile

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/alumni-api/internal/parser"
	"github.com/aanand-mishra/alumni-api/internal/types"
)

// CSVFile reads alumni from a delimited text file at Path.
// It holds no open handle between calls.
type CSVFile struct {
	Path string
}

// New returns a CSVFile for path. The file is not opened until ListAlumni.
func New(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// ListAlumni opens the file, parses it, and closes it.
func (c *CSVFile) ListAlumni(ctx context.Context) ([]types.Alumni, parser.Report, error) {
	if err := ctx.Err(); err != nil {
		return []types.Alumni{}, parser.Report{}, fmt.Errorf("csvfile.ListAlumni: %w", err)
	}

	records, report, err := parser.ParseFile(c.Path)
	if err != nil {
		return records, report, fmt.Errorf("csvfile.ListAlumni: %w", err)
	}
	return records, report, nil
}
