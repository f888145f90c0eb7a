package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.xlsx")
	headers := []string{"UAN", "Name", "Joining Date", "Exit Date"}
	rows := [][]string{
		{"1001", "A. Kumar", "01-01-2020", ""},
		{"1002", "B. Singh", "15-06-2021", "30-09-2023"},
	}

	require.NoError(t, WriteTable(path, headers, rows))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, 3, sheet.MaxRow)

	headerRow, err := sheet.Row(0)
	require.NoError(t, err)
	for i, h := range headers {
		assert.Equal(t, h, headerRow.GetCell(i).Value)
	}

	dataRow, err := sheet.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "1001", dataRow.GetCell(0).Value)
	assert.Equal(t, "", dataRow.GetCell(3).Value)
}

func TestWriteTableCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.xlsx")

	require.NoError(t, WriteTable(path, []string{"A"}, [][]string{{"1"}}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteTableRejectsArityMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	err := WriteTable(path, []string{"A", "B"}, [][]string{{"only one"}})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written on arity error")
}

func TestWriteTableRejectsEmptyHeaders(t *testing.T) {
	err := WriteTable(filepath.Join(t.TempDir(), "x.xlsx"), nil, nil)
	assert.Error(t, err)
}

func writeTempFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("content of "+name), 0600))
		paths = append(paths, p)
	}
	return paths
}

func TestArchiveFiles(t *testing.T) {
	dir := t.TempDir()
	files := writeTempFiles(t, dir, "TRRN1_Feb-2024.pdf", "TRRN2_Mar-2024.pdf")
	zipPath := filepath.Join(dir, "statements.zip")

	require.NoError(t, ArchiveFiles(zipPath, files))

	names, err := ArchiveNames(zipPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"TRRN1_Feb-2024.pdf", "TRRN2_Mar-2024.pdf"}, names)

	// Sources stay in place until the caller deletes them.
	for _, f := range files {
		_, statErr := os.Stat(f)
		assert.NoError(t, statErr)
	}
}

func TestArchiveFilesIsIdempotentOnMembership(t *testing.T) {
	dir := t.TempDir()
	files := writeTempFiles(t, dir, "a.xlsx", "b.xlsx")

	first := filepath.Join(dir, "first.zip")
	second := filepath.Join(dir, "second.zip")
	require.NoError(t, ArchiveFiles(first, files))
	require.NoError(t, ArchiveFiles(second, files))

	firstNames, err := ArchiveNames(first)
	require.NoError(t, err)
	secondNames, err := ArchiveNames(second)
	require.NoError(t, err)
	assert.Equal(t, firstNames, secondNames)
}

func TestArchiveFilesRejectsEmptySet(t *testing.T) {
	err := ArchiveFiles(filepath.Join(t.TempDir(), "empty.zip"), nil)
	assert.Error(t, err)
}

func TestArchiveFilesMissingSource(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "broken.zip")

	err := ArchiveFiles(zipPath, []string{filepath.Join(dir, "missing.pdf")})
	require.Error(t, err)

	_, statErr := os.Stat(zipPath)
	assert.True(t, os.IsNotExist(statErr), "partial archive should be removed")
}
