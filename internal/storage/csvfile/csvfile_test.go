package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/alumni-api/internal/storage"
)

var _ storage.Storage = (*CSVFile)(nil)

func TestCSVFile_ListAlumni(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alumni.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"name,university,major,field,year,achievements\n"+
			"Alice,MIT,CS,Software,2020,Award\n"+
			"Bob,MIT,EE,Hardware,2019\n"+
			"Cara,Yale,CS,Software,2018,\n"), 0o644))

	src := New(path)

	records, report, err := src.ListAlumni(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "Cara", records[1].Name)
	assert.Equal(t, 2, records[1].ID)
	assert.Equal(t, 1, report.Rejected())

	t.Run("every call is a fresh pass", func(t *testing.T) {
		again, _, err := src.ListAlumni(context.Background())
		require.NoError(t, err)
		assert.Equal(t, records, again)
	})

	t.Run("file changes are picked up", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("header\nDan,Duke,Law,Law,1990,\n"), 0o644))

		got, _, err := src.ListAlumni(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Dan", got[0].Name)
		assert.Equal(t, 1, got[0].ID)
	})
}

func TestCSVFile_MissingFile(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "missing.csv"))

	records, _, err := src.ListAlumni(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCSVFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, _, err := New("unused.csv").ListAlumni(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
}
