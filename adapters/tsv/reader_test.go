package tsv

import (
	"os"
	"path/filepath"
	"testing"

	"digsite/domain/records"
	"digsite/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLocationNotes(t *testing.T) {
	path := writeFile(t, "Name\tLocation\tDepth\nUrn\tChamberA\t1.2\n")

	rs, err := LoadLocationNotes(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Location", "Depth"}, rs.Headers)
	require.Equal(t, 1, rs.Len())
	row := rs.Rows[0]
	assert.Equal(t, "Urn", row.Get("Name").String())
	assert.Equal(t, "ChamberA", row.Get("Location").String())
	assert.Equal(t, "1.2", row.Get("Depth").String())
	assert.Equal(t, records.NewNumber(1.2), row.Get("Depth"))
}

func TestLoadLocationNotesShortRowsArePadded(t *testing.T) {
	path := writeFile(t, "Name\tLocation\tDepth\r\nIdol\tChamberB\r\n\r\nMask\r\n")

	rs, err := LoadLocationNotes(path)
	require.NoError(t, err)
	require.Equal(t, 2, rs.Len())

	assert.Equal(t, records.NewString("ChamberB"), rs.Rows[0].Get("Location"))
	assert.True(t, rs.Rows[0].Get("Depth").IsMissing())
	assert.Equal(t, 1, rs.Rows[1].Index)
	assert.True(t, rs.Rows[1].Get("Location").IsMissing())
}

func TestLoadLocationNotesNoQuoting(t *testing.T) {
	path := writeFile(t, "\xEF\xBB\xBFName\tNote\n\"Urn\t\"sealed, \"\"intact\"\"\"\n")

	rs, err := LoadLocationNotes(path)
	require.NoError(t, err)

	assert.Equal(t, "Name", rs.Headers[0], "BOM is stripped")
	assert.Equal(t, records.NewString(`"Urn`), rs.Rows[0].Get("Name"))
	assert.Equal(t, records.NewString(`"sealed, ""intact"""`), rs.Rows[0].Get("Note"))
}

func TestLoadLocationNotesEmptyFields(t *testing.T) {
	path := writeFile(t, "Name\tLocation\tDepth\n\tChamberC\tNA\n")

	rs, err := LoadLocationNotes(path)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.True(t, rs.Rows[0].Get("Name").IsMissing())
	assert.True(t, rs.Rows[0].Get("Depth").IsMissing())
}

func TestLoadLocationNotesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLocationNotes(filepath.Join(t.TempDir(), "nope.tsv"))
		assert.True(t, errors.IsFileNotFound(err))
	})

	t.Run("too many fields", func(t *testing.T) {
		_, err := LoadLocationNotes(writeFile(t, "Name\tLocation\nUrn\tA\textra\n"))
		require.Error(t, err)
		assert.True(t, errors.IsFormatError(err))
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := LoadLocationNotes(writeFile(t, "\n\n"))
		assert.True(t, errors.IsFormatError(err))
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := LoadLocationNotes(writeFile(t, "Name\n\xff\xfe\n"))
		assert.True(t, errors.IsFormatError(err))
	})
}
