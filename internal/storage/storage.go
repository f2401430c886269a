// Package storage defines the contract every alumni data source must
// satisfy.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers should not know whether records come from a flat text file or
// from a SQLite database. By depending only on this interface:
//
//   - Switching sources = pick another backend in main.go. Zero handler
//     changes.
//
//   - Writing tests = pass a fake that satisfies the interface. No files
//     on disk needed for handler tests.
package storage

import (
	"context"

	"github.com/aanand-mishra/alumni-api/internal/parser"
	"github.com/aanand-mishra/alumni-api/internal/types"
)

// Storage is the read-only data source contract.
//
// Implementations must not cache: each call is one fresh parse pass that
// acquires its own handle on the source and releases it before returning.
type Storage interface {
	// ListAlumni returns every accepted record in source order with ids
	// numbered from 1, plus the row counts of the pass.
	//
	// When the source cannot be read the slice is empty (not nil) and the
	// error explains why. Callers may treat that as "no data".
	ListAlumni(ctx context.Context) ([]types.Alumni, parser.Report, error)
}
